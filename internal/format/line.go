package format

import "time"

// lineFormatter accumulates bytes until a line terminator and emits
// one unit per completed line. Partial trailing content stays buffered
// across chunk boundaries, so the emitted lines are independent of how
// the input was split into chunks.
type lineFormatter struct {
	opts Options
	buf  []byte
	now  func() time.Time
}

func (f *lineFormatter) Consume(chunk []byte) []Unit {
	var units []Unit
	for _, b := range chunk {
		if b == '\n' {
			units = append(units, f.emit())
			continue
		}
		f.buf = append(f.buf, b)
	}
	return units
}

// Flush emits any trailing partial line.
func (f *lineFormatter) Flush() []Unit {
	if len(f.buf) == 0 {
		return nil
	}
	return []Unit{f.emit()}
}

// emit produces a unit from the buffered line and resets the buffer.
// The timestamp is captured here, at terminator time, not when the
// chunk arrived. One trailing CR is stripped for CRLF devices.
func (f *lineFormatter) emit() Unit {
	line := f.buf
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}

	u := Unit{Text: string(line)}
	if f.opts.Timestamp {
		u.Stamp = f.now()
	}

	f.buf = f.buf[:0]
	return u
}
