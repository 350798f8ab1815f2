package serial

import (
	"strings"
	"testing"
)

func TestListPorts(t *testing.T) {
	ports, err := ListPorts()
	if err != nil {
		t.Fatalf("ListPorts failed: %v", err)
	}

	// Check that all returned ports are valid paths
	for _, port := range ports {
		if !strings.HasPrefix(port, "/dev/") {
			t.Errorf("Port path doesn't start with /dev/: %s", port)
		}

		// Verify it's a character device
		if !isCharacterDevice(port) {
			t.Errorf("Port is not a character device: %s", port)
		}
	}

	// Check that ports are sorted
	for i := 1; i < len(ports); i++ {
		if ports[i-1] > ports[i] {
			t.Errorf("Ports are not sorted: %s > %s", ports[i-1], ports[i])
		}
	}
}

func TestIsCharacterDevice(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/dev/null", true},
		{"/dev/zero", true},
		{"/tmp", false},
		{"/nonexistent", false},
	}

	for _, test := range tests {
		result := isCharacterDevice(test.path)
		if result != test.expected {
			t.Errorf("isCharacterDevice(%s) = %v, expected %v", test.path, result, test.expected)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		description string
		matched     bool
	}{
		{"ttyUSB0", "USB Serial Port", true},
		{"ttyACM3", "USB CDC/ACM Device", true},
		{"ttyS0", "Standard Serial Port", true},
		{"ttyAMA0", "ARM Serial Port", true},
		{"ttymxc1", "i.MX Serial Port", true},
		{"ttyO2", "OMAP Serial Port", true},
		{"ttySAC0", "Samsung Serial Port", true},
		{"ttyTHS1", "Tegra Serial Port", true},
		{"tty1", "", false},     // virtual terminal
		{"console", "", false},  // console
		{"ptmx", "", false},     // pseudo-terminal multiplexer
		{"ttyUSB", "", false},   // missing index
		{"xttyUSB0", "", false}, // no prefix match
	}

	for _, test := range tests {
		description, matched := classify(test.name)
		if matched != test.matched {
			t.Errorf("classify(%s) matched = %v, expected %v", test.name, matched, test.matched)
		}
		if description != test.description {
			t.Errorf("classify(%s) = %q, expected %q", test.name, description, test.description)
		}
	}
}

func TestGetPortInfoNonExistent(t *testing.T) {
	_, err := GetPortInfo("/dev/nonexistent")
	if err != ErrDeviceNotFound {
		t.Errorf("Expected ErrDeviceNotFound, got %v", err)
	}
}

func TestGetPortInfoUnknownCharDevice(t *testing.T) {
	// /dev/null is a character device but not a serial port family;
	// it still gets the generic description.
	info, err := GetPortInfo("/dev/null")
	if err != nil {
		t.Fatalf("GetPortInfo failed: %v", err)
	}
	if info.Name != "null" {
		t.Errorf("Expected name null, got %s", info.Name)
	}
	if info.Path != "/dev/null" {
		t.Errorf("Expected path /dev/null, got %s", info.Path)
	}
	if info.Description != "Serial Port" {
		t.Errorf("Expected generic description, got %s", info.Description)
	}
}
