// Package warnings defines the advisory conditions a run can surface without
// failing. Fatal conditions are plain errors; everything here is report-and-
// continue.
package warnings

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Warning codes.
const (
	CodeMultipleStableEbuilds = "MULTIPLE_STABLE_EBUILDS"
	CodeMissingStableEbuild   = "MISSING_STABLE_EBUILD"
	CodeOverlaySkipped        = "OVERLAY_SKIPPED"
	CodeMissingOverlaysFlag   = "MISSING_OVERLAYS_FLAG"
	CodeUprevFailed           = "UPREV_FAILED"
	CodeStaleCleanupFailed    = "STALE_CLEANUP_FAILED"
	CodePushRetry             = "PUSH_RETRY"
)

// Warning represents one advisory condition.
type Warning struct {
	Code    string
	Subject string
	Message string
}

func (w Warning) String() string {
	if w.Subject == "" {
		return fmt.Sprintf("WARNING %s: %s", w.Code, w.Message)
	}
	return fmt.Sprintf("WARNING %s: %s: %s", w.Code, w.Subject, w.Message)
}

// New builds a warning from a code, subject, and formatted message.
func New(code, subject, format string, args ...any) Warning {
	return Warning{Code: code, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// Emitter writes warnings to a stream as they happen.
type Emitter struct {
	out io.Writer
}

// NewEmitter returns an emitter writing to out. A nil out discards warnings.
func NewEmitter(out io.Writer) *Emitter {
	if out == nil {
		out = io.Discard
	}
	return &Emitter{out: out}
}

// Emit prints one warning in yellow.
func (e *Emitter) Emit(w Warning) {
	warnColor := color.New(color.FgYellow)
	_, _ = warnColor.Fprintln(e.out, w.String())
}

// Emitf builds and prints a warning in one call.
func (e *Emitter) Emitf(code, subject, format string, args ...any) {
	e.Emit(New(code, subject, format, args...))
}
