// Package format turns chunks of received serial bytes into renderable
// output units. Three variants exist: raw passthrough, line-oriented
// with optional timestamps, and hex dump with optional ASCII sidebar.
//
// Formatters are the only stateful part of the output pipeline: the
// line variant buffers a partial line across chunks, the hex variant a
// partial row. Flush drains that state on shutdown.
package format

import (
	"fmt"
	"time"
)

// DefaultHexBytes is the number of bytes rendered per hex row.
const DefaultHexBytes = 16

// Kind selects one of the formatter variants.
type Kind int

const (
	Raw Kind = iota
	Line
	Hex
)

// ParseKind maps a format name from the CLI to its variant.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "raw":
		return Raw, nil
	case "line":
		return Line, nil
	case "hex":
		return Hex, nil
	default:
		return 0, fmt.Errorf("unknown format %q (valid: raw, line, hex)", name)
	}
}

// Unit is one renderable output item: a raw chunk, a completed line,
// or a hex row. Units are immutable once produced; color is applied by
// the sink at render time, never stored here.
type Unit struct {
	Text  string    // payload: raw bytes, one line, or hex tokens
	Aside string    // ASCII sidebar for hex rows, empty otherwise
	Stamp time.Time // capture time; zero when timestamps are off
	Raw   bool      // emit verbatim, no newline or decoration
}

// Options configures a formatter.
type Options struct {
	Timestamp bool // stamp each line or hex row
	ASCII     bool // add the ASCII sidebar (hex only)
	HexBytes  int  // bytes per hex row; 0 means DefaultHexBytes
}

// Formatter consumes byte chunks and produces zero or more output
// units per chunk. Flush drains any buffered partial state.
type Formatter interface {
	Consume(chunk []byte) []Unit
	Flush() []Unit
}

// New dispatches the format selection to a variant once at startup.
func New(kind Kind, opts Options) Formatter {
	switch kind {
	case Line:
		return &lineFormatter{opts: opts, now: time.Now}
	case Hex:
		if opts.HexBytes <= 0 {
			opts.HexBytes = DefaultHexBytes
		}
		return &hexFormatter{opts: opts, now: time.Now}
	default:
		return rawFormatter{}
	}
}
