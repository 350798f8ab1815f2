// Package sink renders output units to the terminal and, optionally,
// to an append-only log file. Both targets receive every unit; the log
// file always gets the style-free rendering, so its content is
// byte-for-byte what the terminal would show with color disabled.
package sink

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wendlers/sermon/internal/format"
)

// Styles holds the terminal color styles. A nil *Styles renders plain
// text; color is a presentation attribute, never part of the unit.
type Styles struct {
	Stamp lipgloss.Style // timestamp column
	Sep   lipgloss.Style // column separators
	Aside lipgloss.Style // ASCII sidebar
}

// DefaultStyles mirrors the classic serial-monitor palette: magenta
// timestamps, blue separators, green sidebar text.
func DefaultStyles() *Styles {
	return &Styles{
		Stamp: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		Sep:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		Aside: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

// Sink fans output units out to the terminal and an optional log file.
// All writes happen from the single monitor flow, so no locking is
// needed; writes to the two targets are not atomic with each other.
type Sink struct {
	term   io.Writer
	log    *os.File
	styles *Styles
}

// New creates a sink writing to term, styled when styles is non-nil.
func New(term io.Writer, styles *Styles) *Sink {
	return &Sink{term: term, styles: styles}
}

// OpenLog attaches an append-mode log file, created if absent.
func (s *Sink) OpenLog(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	s.log = f
	return nil
}

// Emit renders one unit to every active target.
func (s *Sink) Emit(u format.Unit) error {
	if _, err := io.WriteString(s.term, render(u, s.styles)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if s.log != nil {
		if _, err := io.WriteString(s.log, render(u, nil)); err != nil {
			return fmt.Errorf("failed to write log file: %w", err)
		}
	}
	return nil
}

// Close releases the log file if one is attached. The terminal writer
// is not owned by the sink and stays open. Safe to call twice.
func (s *Sink) Close() error {
	if s.log == nil {
		return nil
	}
	err := s.log.Close()
	s.log = nil
	return err
}

// render produces the textual form of a unit. With nil styles the
// result is exactly the colorless rendering persisted to the log.
func render(u format.Unit, st *Styles) string {
	if u.Raw {
		return u.Text
	}

	var sb strings.Builder
	if !u.Stamp.IsZero() {
		stamp := fmt.Sprintf("%18.7f", float64(u.Stamp.UnixNano())/1e9)
		if st != nil {
			sb.WriteString(st.Stamp.Render(stamp))
			sb.WriteString(st.Sep.Render(" | "))
		} else {
			sb.WriteString(stamp)
			sb.WriteString(" | ")
		}
	}

	sb.WriteString(u.Text)

	if u.Aside != "" {
		if st != nil {
			sb.WriteString(st.Sep.Render("| "))
			sb.WriteString(st.Aside.Render(u.Aside))
		} else {
			sb.WriteString("| ")
			sb.WriteString(u.Aside)
		}
	}

	sb.WriteByte('\n')
	return sb.String()
}
