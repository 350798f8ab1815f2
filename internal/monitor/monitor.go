// Package monitor drives the serial session lifecycle: the initial
// open (optionally waiting for the device to appear), the read loop
// feeding the formatter and sink, and automatic reopening after a
// connection loss when persist mode is on.
//
// The session state machine is Closed -> Open -> Lost, with Lost ->
// Open allowed only in persist mode. A lost session never silently
// resumes: every reopen goes back through acquire. Both retry loops
// are deliberately unbounded; a human watching the monitor interrupts
// it when done.
package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/wendlers/sermon/internal/format"
	"github.com/wendlers/sermon/internal/serial"
	"github.com/wendlers/sermon/internal/sink"
)

// State is the session state as owned by the supervisor.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateLost
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateLost:
		return "lost"
	default:
		return "closed"
	}
}

// Defaults for the acquire poll cadence and the read chunk buffer.
const (
	DefaultPollInterval = time.Second
	DefaultBufferSize   = 4096
)

// Config holds the two reconnection knobs plus tunables.
type Config struct {
	Wait         bool          // poll for the device before the first connect
	Persist      bool          // reopen automatically after a connection loss
	PollInterval time.Duration // acquire poll cadence; 0 means DefaultPollInterval
	BufferSize   int           // read chunk buffer; 0 means DefaultBufferSize
}

// Opener acquires a serial port. Production code closes over
// serial.Open with the configured device and baud rate; tests
// substitute scripted ports.
type Opener func() (serial.Port, error)

// Status receives user-facing lifecycle notifications so the CLI owns
// presentation and tests can stay silent.
type Status interface {
	Connecting()    // an acquire pass is starting
	Waiting()       // device unavailable, will poll again
	Connected()     // session is open, streaming begins
	Lost(err error) // mid-stream connection loss
}

// NopStatus discards all notifications.
type NopStatus struct{}

func (NopStatus) Connecting() {}
func (NopStatus) Waiting()    {}
func (NopStatus) Connected()  {}
func (NopStatus) Lost(error)  {}

// Supervisor owns the session state machine and the single read loop.
type Supervisor struct {
	cfg    Config
	open   Opener
	fmtr   format.Formatter
	out    *sink.Sink
	status Status
	state  State
}

// New creates a supervisor. A nil status defaults to NopStatus.
func New(cfg Config, open Opener, fmtr format.Formatter, out *sink.Sink, status Status) *Supervisor {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if status == nil {
		status = NopStatus{}
	}
	return &Supervisor{
		cfg:    cfg,
		open:   open,
		fmtr:   fmtr,
		out:    out,
		status: status,
	}
}

// State returns the current session state.
func (s *Supervisor) State() State {
	return s.state
}

// Run drives acquire/stream/recover until the context is cancelled
// (clean shutdown, returns nil) or a fatal condition is hit (returns
// the open failure or connection loss). Buffered formatter state is
// flushed through the sink on every exit path.
func (s *Supervisor) Run(ctx context.Context) error {
	defer s.flush()

	for {
		port, err := s.acquire(ctx)
		if err != nil {
			s.state = StateClosed
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		s.state = StateOpen
		s.status.Connected()

		err = s.stream(ctx, port)
		port.Close()

		if ctx.Err() != nil {
			s.state = StateClosed
			return nil
		}

		s.state = StateLost
		s.status.Lost(err)

		// Only a plain connection loss is recoverable; sink failures
		// and other stream errors stay fatal even in persist mode.
		if !s.cfg.Persist || !errors.Is(err, serial.ErrConnectionLost) {
			return err
		}
	}
}

// acquire opens the device, polling on a fixed interval until it
// appears when wait mode is on. The sleep selects on the context so an
// interrupt lands mid-sleep, not only between poll attempts.
func (s *Supervisor) acquire(ctx context.Context) (serial.Port, error) {
	s.status.Connecting()

	for {
		port, err := s.open()
		if err == nil {
			return port, nil
		}
		if !s.cfg.Wait || !serial.IsUnavailable(err) {
			return nil, err
		}

		s.status.Waiting()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.cfg.PollInterval):
		}
	}
}

// stream reads chunks and hands them to the formatter/sink pipeline
// until the context ends or the connection is lost.
func (s *Supervisor) stream(ctx context.Context, port serial.Port) error {
	buf := make([]byte, s.cfg.BufferSize)
	for {
		n, err := port.ReadContext(ctx, buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		for _, u := range s.fmtr.Consume(buf[:n]) {
			if err := s.out.Emit(u); err != nil {
				return err
			}
		}
	}
}

// flush drains partial formatter state (a trailing line, a short hex
// row) through the sink.
func (s *Supervisor) flush() {
	for _, u := range s.fmtr.Flush() {
		if err := s.out.Emit(u); err != nil {
			return
		}
	}
}
