/*
Copyright © 2026 Stefan Wendler
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wendlers/sermon/internal/format"
	"github.com/wendlers/sermon/internal/monitor"
	"github.com/wendlers/sermon/internal/serial"
	"github.com/wendlers/sermon/internal/sink"
)

const version = "0.1.0"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "sermon",
	Version: version,
	Short:   "Monitor the output of a serial line",
	Long: `Print or log the output from a serial line (e.g. from an embedded device).

Received bytes can be passed through raw, assembled into timestamped
lines, or rendered as a hex dump with an ASCII sidebar. Output can be
colorized on the terminal and teed to a log file (the file is always
written without color).

Example usage:
  sermon
  sermon -p /dev/ttyUSB0 -b 115200
  sermon -p /dev/ttyUSB0 -b 115200 -f line -t -c
  sermon -p /dev/ttyUSB0 -b 115200 -f line -t -c -l output.log
  sermon -p /dev/ttyUSB0 -b 115200 -f hex -a -t -c
  sermon -p /dev/ttyUSB0 -b 115200 -w
  sermon -p /dev/ttyUSB0 -b 115200 -w --persist

Press Ctrl+C to stop monitoring.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMonitor,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", renderError(err.Error()))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().StringP("port", "p", "/dev/ttyACM0", "Serial port to monitor")
	rootCmd.Flags().IntP("baud", "b", 9600, "Baud rate")
	rootCmd.Flags().StringP("format", "f", "raw", "Output format: raw, line, hex")
	rootCmd.Flags().BoolP("timestamp", "t", false, "Add a timestamp to each line")
	rootCmd.Flags().BoolP("color", "c", false, "Colorize terminal output")
	rootCmd.Flags().BoolP("ascii", "a", false, "Add ASCII representation to hex output")
	rootCmd.Flags().StringP("log", "l", "", "Also append the received data to this file")
	rootCmd.Flags().BoolP("wait", "w", false, "Wait for the serial port to show up before connecting")
	rootCmd.Flags().Bool("persist", false, "Reconnect automatically if the serial connection drops")
	rootCmd.Flags().BoolP("quiet", "q", false, "Print nothing but the serial output (no status messages)")
	rootCmd.Flags().Int("hex-bytes", format.DefaultHexBytes, "Number of bytes per row in hex format")

	viper.BindPFlags(rootCmd.Flags())
}

// initConfig reads in the config file and ENV variables if set. Flags
// are bound through viper, so a config file or SERMON_* variable can
// change a default while explicit flags still win.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sermon")
	}

	viper.SetEnvPrefix("sermon")
	viper.AutomaticEnv()

	// A missing config file is fine; only explicit settings matter.
	_ = viper.ReadInConfig()
}

func runMonitor(cmd *cobra.Command, args []string) error {
	device := viper.GetString("port")
	quiet := viper.GetBool("quiet")
	colorize := viper.GetBool("color") && isatty.IsTerminal(os.Stdout.Fd())

	kind, err := format.ParseKind(viper.GetString("format"))
	if err != nil {
		return err
	}
	fmtr := format.New(kind, format.Options{
		Timestamp: viper.GetBool("timestamp"),
		ASCII:     viper.GetBool("ascii"),
		HexBytes:  viper.GetInt("hex-bytes"),
	})

	var styles *sink.Styles
	if colorize {
		styles = sink.DefaultStyles()
	}
	out := sink.New(os.Stdout, styles)
	if path := viper.GetString("log"); path != "" {
		if err := out.OpenLog(path); err != nil {
			return err
		}
	}
	defer out.Close()

	// Validate the baud rate up front so a bad value fails before the
	// first acquire pass instead of inside the wait loop.
	baudOpt := serial.WithBaudRate(viper.GetInt("baud"))
	probe := serial.DefaultConfig()
	if err := baudOpt(&probe); err != nil {
		return fmt.Errorf("%w: %d", err, viper.GetInt("baud"))
	}

	// Setup signal handling for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	sup := monitor.New(
		monitor.Config{
			Wait:    viper.GetBool("wait"),
			Persist: viper.GetBool("persist"),
		},
		func() (serial.Port, error) {
			return serial.Open(device, baudOpt)
		},
		fmtr,
		out,
		newConsoleStatus(device, quiet, colorize),
	)

	return sup.Run(ctx)
}
