package selection

import (
	"fmt"
	"log/slog"

	"streamsift/internal/logging"
)

// Trace is an append-only log of human-readable rationale lines. Lines are
// mirrored to the attached logger at debug level. A nil *Trace discards
// everything.
type Trace struct {
	lines  []string
	logger *slog.Logger
}

// NewTrace returns an empty trace that mirrors lines to logger when non-nil.
func NewTrace(logger *slog.Logger) *Trace {
	return &Trace{logger: logger}
}

func (t *Trace) Add(line string) {
	if t == nil {
		return
	}
	t.lines = append(t.lines, line)
	if t.logger != nil {
		t.logger.Debug(line)
	}
}

func (t *Trace) Addf(format string, args ...any) {
	t.Add(fmt.Sprintf(format, args...))
}

// decision records a stream verdict and logs it with decision attributes.
func (t *Trace) decision(decisionType string, d Decision, line string) {
	if t == nil {
		return
	}
	t.lines = append(t.lines, line)
	if t.logger != nil {
		attrs := logging.DecisionAttrs(decisionType, string(d.Action), d.Reason)
		attrs = append(attrs, logging.Int("input_index", d.InputIndex), logging.String("language", d.Stream.Language))
		t.logger.Debug(line, logging.Args(attrs...)...)
	}
}

// Lines returns a copy of the recorded lines.
func (t *Trace) Lines() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.lines...)
}
