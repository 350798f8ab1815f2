/*
Copyright © 2026 Stefan Wendler
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

func renderError(msg string) string {
	return errorStyle.Render(msg)
}

// consoleStatus prints connection lifecycle messages to stderr so they
// never mix with the serial output stream on stdout.
type consoleStatus struct {
	device  string
	quiet   bool
	color   bool
	waiting bool
}

func newConsoleStatus(device string, quiet, color bool) *consoleStatus {
	return &consoleStatus{device: device, quiet: quiet, color: color}
}

func (c *consoleStatus) Connecting() {
	c.infof("Trying to connect to %s", c.device)
}

func (c *consoleStatus) Waiting() {
	if c.quiet {
		return
	}
	fmt.Fprint(os.Stderr, ".")
	c.waiting = true
}

func (c *consoleStatus) Connected() {
	c.endDots()
	c.infof("Successfully connected")
}

func (c *consoleStatus) Lost(err error) {
	c.endDots()
	c.errorf("*** He's dead, Jim! (%v) ***", err)
}

// endDots terminates a run of wait-poll dots with a newline.
func (c *consoleStatus) endDots() {
	if !c.waiting {
		return
	}
	c.waiting = false
	if !c.quiet {
		fmt.Fprintln(os.Stderr)
	}
}

func (c *consoleStatus) infof(format string, args ...any) {
	if c.quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if c.color {
		msg = infoStyle.Render(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}

func (c *consoleStatus) errorf(format string, args ...any) {
	if c.quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if c.color {
		msg = errorStyle.Render(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}
