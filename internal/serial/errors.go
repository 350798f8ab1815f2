package serial

import "errors"

// Predefined error types for robust error handling
var (
	ErrDeviceNotFound   = errors.New("serial device not found")
	ErrPermissionDenied = errors.New("permission denied accessing serial device")
	ErrDeviceInUse      = errors.New("serial device already in use")
	ErrInvalidBaudRate  = errors.New("invalid baud rate")
	ErrInvalidConfig    = errors.New("invalid serial configuration")
	ErrPortClosed       = errors.New("serial port is closed")
	ErrConnectionLost   = errors.New("serial connection lost")
)

// IsUnavailable reports whether err is an open-time failure of the
// "device unavailable" kind: missing, inaccessible, or busy. These
// are the failures worth retrying when waiting for a device to show up.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrDeviceNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrDeviceInUse)
}
