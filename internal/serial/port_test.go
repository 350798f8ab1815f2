package serial

import (
	"errors"
	"testing"

	"golang.org/x/sys/unix"
)

func TestOpenNonExistentDevice(t *testing.T) {
	_, err := Open("/dev/nonexistent")
	if err == nil {
		t.Fatal("Expected error when opening non-existent device")
	}
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("Expected ErrDeviceNotFound, got %v", err)
	}
	if !IsUnavailable(err) {
		t.Errorf("Expected an unavailable classification for %v", err)
	}
}

func TestOpenWithInvalidBaudRate(t *testing.T) {
	_, err := Open("/dev/null", WithBaudRate(123456))
	if err == nil {
		t.Fatal("Expected error for invalid baud rate")
	}
	if !errors.Is(err, ErrInvalidBaudRate) {
		t.Errorf("Expected ErrInvalidBaudRate, got %v", err)
	}
}

func TestClassifyOpenError(t *testing.T) {
	tests := []struct {
		name        string
		errno       error
		expected    error
		unavailable bool
	}{
		{"missing device", unix.ENOENT, ErrDeviceNotFound, true},
		{"unplugged device node", unix.ENODEV, ErrDeviceNotFound, true},
		{"no such device or address", unix.ENXIO, ErrDeviceNotFound, true},
		{"permission denied", unix.EACCES, ErrPermissionDenied, true},
		{"operation not permitted", unix.EPERM, ErrPermissionDenied, true},
		{"device busy", unix.EBUSY, ErrDeviceInUse, true},
		{"io error", unix.EIO, nil, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := classifyOpenError("/dev/ttyUSB0", test.errno)
			if err == nil {
				t.Fatal("Expected a non-nil error")
			}
			if test.expected != nil && !errors.Is(err, test.expected) {
				t.Errorf("classifyOpenError(%v) = %v, expected %v", test.errno, err, test.expected)
			}
			if IsUnavailable(err) != test.unavailable {
				t.Errorf("IsUnavailable(%v) = %v, expected %v", err, IsUnavailable(err), test.unavailable)
			}
		})
	}
}

func TestClassifyRead(t *testing.T) {
	// A healthy read passes through untouched.
	n, err := classifyRead(5, nil)
	if err != nil || n != 5 {
		t.Errorf("classifyRead(5, nil) = (%d, %v), expected (5, nil)", n, err)
	}

	// Read errors surface as a connection loss.
	_, err = classifyRead(0, unix.EIO)
	if !errors.Is(err, ErrConnectionLost) {
		t.Errorf("Expected ErrConnectionLost for read error, got %v", err)
	}

	// An empty read from a VMIN=1 port means the device is gone.
	_, err = classifyRead(0, nil)
	if !errors.Is(err, ErrConnectionLost) {
		t.Errorf("Expected ErrConnectionLost for empty read, got %v", err)
	}
}

func TestReadOnClosedPort(t *testing.T) {
	p := &port{closed: true}

	buf := make([]byte, 16)
	if _, err := p.Read(buf); err != ErrPortClosed {
		t.Errorf("Expected ErrPortClosed, got %v", err)
	}
	if err := p.Close(); err != ErrPortClosed {
		t.Errorf("Expected ErrPortClosed on second close, got %v", err)
	}
}
