package format

import (
	"fmt"
	"strings"
	"time"
)

// hexFormatter renders each byte as a two-digit hex token, grouped in
// fixed-width rows, optionally with a printable-ASCII sidebar aligned
// alongside. A partial row stays buffered until it fills up or Flush
// pads it out.
type hexFormatter struct {
	opts Options
	row  []byte
	now  func() time.Time
}

func (f *hexFormatter) Consume(chunk []byte) []Unit {
	var units []Unit
	for _, b := range chunk {
		f.row = append(f.row, b)
		if len(f.row) == f.opts.HexBytes {
			units = append(units, f.emit())
		}
	}
	return units
}

// Flush emits any partial trailing row.
func (f *hexFormatter) Flush() []Unit {
	if len(f.row) == 0 {
		return nil
	}
	return []Unit{f.emit()}
}

func (f *hexFormatter) emit() Unit {
	var sb strings.Builder
	for _, b := range f.row {
		fmt.Fprintf(&sb, "%02X ", b)
	}

	u := Unit{}
	if f.opts.ASCII {
		// Pad short rows so the sidebar stays column-aligned.
		for i := len(f.row); i < f.opts.HexBytes; i++ {
			sb.WriteString("   ")
		}
		u.Aside = printable(f.row)
	}
	u.Text = sb.String()

	if f.opts.Timestamp {
		u.Stamp = f.now()
	}

	f.row = f.row[:0]
	return u
}

// printable maps bytes to their printable ASCII form, with dots
// standing in for control and non-ASCII bytes.
func printable(data []byte) string {
	var sb strings.Builder
	for _, b := range data {
		if b >= 32 && b <= 126 {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
