package warnings

import (
	"bytes"
	"strings"
	"testing"
)

func TestWarningString(t *testing.T) {
	t.Parallel()
	w := New(CodeMultipleStableEbuilds, "chromeos-base/foo", "found %d stable ebuilds", 2)
	if got := w.String(); got != "WARNING MULTIPLE_STABLE_EBUILDS: chromeos-base/foo: found 2 stable ebuilds" {
		t.Fatalf("String() = %q", got)
	}
}

func TestWarningStringWithoutSubject(t *testing.T) {
	t.Parallel()
	w := New(CodeMissingOverlaysFlag, "", "using defaults")
	if got := w.String(); got != "WARNING MISSING_OVERLAYS_FLAG: using defaults" {
		t.Fatalf("String() = %q", got)
	}
}

func TestEmitterWritesToStream(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewEmitter(&buf).Emitf(CodePushRetry, "/overlay", "retry (%d/%d)", 1, 5)
	if !strings.Contains(buf.String(), "WARNING PUSH_RETRY: /overlay: retry (1/5)") {
		t.Fatalf("emitted = %q", buf.String())
	}
}

func TestNilEmitterDiscards(t *testing.T) {
	t.Parallel()
	// Must not panic.
	NewEmitter(nil).Emitf(CodeOverlaySkipped, "/overlay", "skipping")
}
