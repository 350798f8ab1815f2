/*
Copyright © 2026 Stefan Wendler
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wendlers/sermon/internal/serial"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available serial ports",
	Long: `List all available serial ports on the system.

This command scans for communication-capable serial devices including:
- USB serial adapters (ttyUSB*)
- USB CDC/ACM devices (ttyACM*)
- Standard serial ports (ttyS*)
- ARM/Raspberry Pi ports (ttyAMA*)
- And other platform-specific serial devices

Virtual terminals and pseudo-terminals are excluded from the listing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := serial.ListPorts()
		if err != nil {
			return fmt.Errorf("failed to list ports: %w", err)
		}

		jsonFormat, _ := cmd.Flags().GetBool("json")
		tableFormat, _ := cmd.Flags().GetBool("table")

		if jsonFormat {
			return renderJSON(ports)
		}

		if len(ports) == 0 {
			fmt.Println("No serial ports found")
			return nil
		}

		if tableFormat {
			renderTable(ports)
		} else {
			for _, port := range ports {
				fmt.Println(port)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
	listCmd.Flags().BoolP("json", "j", false, "Display output as JSON")
}

// portListing is the JSON shape emitted by list --json.
type portListing struct {
	Ports []portEntry `json:"ports"`
}

type portEntry struct {
	Device      string `json:"device"`
	Description string `json:"description"`
}

func renderJSON(ports []string) error {
	listing := portListing{Ports: []portEntry{}}
	for _, port := range ports {
		info, err := serial.GetPortInfo(port)
		if err != nil {
			continue
		}
		listing.Ports = append(listing.Ports, portEntry{
			Device:      info.Path,
			Description: info.Description,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(listing)
}

// renderTable renders the port list in a styled static table format
func renderTable(ports []string) {
	fmt.Printf("Found %d serial port(s):\n\n", len(ports))

	portWidth := 15
	descWidth := 30

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("240")).
		PaddingBottom(1)

	cellStyle := lipgloss.NewStyle().
		PaddingRight(2)

	header := fmt.Sprintf("%-*s %-*s",
		portWidth, "Port",
		descWidth, "Description")
	fmt.Println(headerStyle.Render(header))

	for _, port := range ports {
		info, err := serial.GetPortInfo(port)
		if err != nil {
			row := fmt.Sprintf("%-*s %-*s",
				portWidth, port,
				descWidth, fmt.Sprintf("Error: %v", err))
			fmt.Println(cellStyle.Render(row))
			continue
		}

		row := fmt.Sprintf("%-*s %-*s",
			portWidth, info.Name,
			descWidth, info.Description)
		fmt.Println(cellStyle.Render(row))
	}
}
