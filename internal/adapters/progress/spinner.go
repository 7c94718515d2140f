package progress

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bluetoken/bluedeploy/internal/usecase"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// SpinnerSink shows a spinner while transactions wait for confirmations.
// Without a terminal it prints one line per event instead.
type SpinnerSink struct {
	out         io.Writer
	interactive bool

	mu      sync.Mutex
	spinner *spinner.Spinner
	stage   string
	started time.Time
}

// NewSpinnerSink creates a progress sink writing to out
func NewSpinnerSink(out io.Writer, interactive bool) *SpinnerSink {
	return &SpinnerSink{
		out:         out,
		interactive: interactive,
	}
}

// OnProgress handles progress events
func (s *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.Stage != s.stage {
		s.stage = event.Stage
		s.started = time.Now()
	}

	if !s.interactive {
		if event.Message != "" {
			fmt.Fprintln(s.out, event.Message)
		}
		return
	}

	if !event.Spinner {
		s.stopLocked()
		return
	}
	if s.spinner == nil {
		s.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.spinner.Writer = s.out
		s.spinner.HideCursor = false
		_ = s.spinner.Color("cyan", "bold")
	}
	s.spinner.Suffix = " " + event.Message
	if !s.spinner.Active() {
		s.spinner.Start()
	}
}

// Info prints an info message
func (s *SpinnerSink) Info(message string) {
	s.print(color.New(color.FgCyan), message)
}

// Error prints an error message
func (s *SpinnerSink) Error(message string) {
	s.print(color.New(color.FgRed), message)
}

// print writes a line without tearing the spinner
func (s *SpinnerSink) print(c *color.Color, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasActive := s.spinner != nil && s.spinner.Active()
	if wasActive {
		s.spinner.Stop()
	}
	c.Fprintln(s.out, message)
	if wasActive {
		s.spinner.Start()
	}
}

// Stop clears the spinner and returns how long the last stage ran
func (s *SpinnerSink) Stop() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	if s.started.IsZero() {
		return 0
	}
	return time.Since(s.started).Round(time.Millisecond)
}

func (s *SpinnerSink) stopLocked() {
	if s.spinner != nil && s.spinner.Active() {
		s.spinner.Stop()
	}
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
