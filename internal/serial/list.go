package serial

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// portClass ties a device-name pattern to a human-readable description
type portClass struct {
	pattern     *regexp.Regexp
	description string
}

// Known communication-capable serial device families under /dev
var portClasses = []portClass{
	{regexp.MustCompile(`^ttyUSB\d+$`), "USB Serial Port"},
	{regexp.MustCompile(`^ttyACM\d+$`), "USB CDC/ACM Device"},
	{regexp.MustCompile(`^ttyS\d+$`), "Standard Serial Port"},
	{regexp.MustCompile(`^ttyAMA\d+$`), "ARM Serial Port"},
	{regexp.MustCompile(`^ttymxc\d+$`), "i.MX Serial Port"},
	{regexp.MustCompile(`^ttyO\d+$`), "OMAP Serial Port"},
	{regexp.MustCompile(`^ttySAC\d+$`), "Samsung Serial Port"},
	{regexp.MustCompile(`^ttyTHS\d+$`), "Tegra Serial Port"},
}

// classify returns the description for a known serial device name.
// Virtual terminals (tty1, ...), consoles and pseudo-terminals never
// match any class, so they are excluded implicitly.
func classify(name string) (string, bool) {
	for _, class := range portClasses {
		if class.pattern.MatchString(name) {
			return class.description, true
		}
	}
	return "", false
}

// ListPorts returns the available serial ports on the system, sorted.
// Only communication-capable character devices are included.
func ListPorts() ([]string, error) {
	entries, err := os.ReadDir("/dev")
	if err != nil {
		return nil, err
	}

	var ports []string
	for _, entry := range entries {
		name := entry.Name()
		if _, ok := classify(name); !ok {
			continue
		}

		fullPath := filepath.Join("/dev", name)
		if isCharacterDevice(fullPath) {
			ports = append(ports, fullPath)
		}
	}

	sort.Strings(ports)
	return ports, nil
}

// isCharacterDevice checks if the given path is a character device
func isCharacterDevice(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}

// PortInfo describes a serial port found on the system
type PortInfo struct {
	Name        string
	Path        string
	Description string
}

// GetPortInfo returns detailed information about a specific port
func GetPortInfo(portPath string) (*PortInfo, error) {
	if !isCharacterDevice(portPath) {
		return nil, ErrDeviceNotFound
	}

	name := filepath.Base(portPath)
	description, ok := classify(name)
	if !ok {
		description = "Serial Port"
	}

	return &PortInfo{
		Name:        name,
		Path:        portPath,
		Description: description,
	}, nil
}
