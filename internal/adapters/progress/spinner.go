package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/opsgov/internal/domain/config"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

// SpinnerSink shows progress events on a spinner
type SpinnerSink struct {
	spinner *spinner.Spinner
	out     io.Writer
}

// NewSpinnerSink creates a spinner writing to out
func NewSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false
	return &SpinnerSink{spinner: s, out: out}
}

// NewProgressSink picks the spinner for interactive text output and a no-op sink otherwise
func NewProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.JSON {
		return usecase.NopProgress{}
	}
	return NewSpinnerSink(os.Stderr)
}

// OnProgress implements usecase.ProgressSink
func (s *SpinnerSink) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	if !event.Spinner {
		if s.spinner.Active() {
			s.spinner.Stop()
		}
		fmt.Fprintln(s.out, color.New(color.FgCyan).Sprint(event.Message))
		return
	}

	s.spinner.Suffix = " " + stepLabel(event)
	if !s.spinner.Active() {
		s.spinner.Start()
	}
}

// Done implements usecase.ProgressSink
func (s *SpinnerSink) Done() {
	if s.spinner.Active() {
		s.spinner.Stop()
	}
}

func stepLabel(event usecase.ProgressEvent) string {
	if event.Total > 0 {
		return fmt.Sprintf("%s %s", color.New(color.Faint).Sprintf("[%d/%d]", event.Current, event.Total), event.Message)
	}
	return event.Message
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
