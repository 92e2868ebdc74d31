// Package testutil provides helpers shared by tests: a scripted fake command
// runner, shell stubs for exercising the real executor, and ebuild fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Call records one Runner invocation.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String renders the call as a command line, without the directory.
func (c Call) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// FakeRunner implements cmdrun.Runner with scripted outputs keyed by command
// line prefix. Every invocation is recorded for assertions.
type FakeRunner struct {
	// Calls holds every invocation in order.
	Calls []Call
	// Responses maps a command-line prefix to the stdout it returns.
	Responses map[string]string
	// Errors maps a command-line prefix to a permanent error.
	Errors map[string]error
	// FailTimes maps a command-line prefix to a number of failures before
	// the command starts succeeding. Used for retry-loop tests.
	FailTimes map[string]int
}

// Output records the call and returns the scripted response. The longest
// matching prefix wins; unmatched commands succeed with empty output.
func (f *FakeRunner) Output(_ context.Context, dir string, name string, args ...string) (string, error) {
	call := Call{Dir: dir, Name: name, Args: args}
	f.Calls = append(f.Calls, call)
	line := call.String()

	if prefix, ok := longestMatch(line, keysOfInt(f.FailTimes)); ok && f.FailTimes[prefix] > 0 {
		f.FailTimes[prefix]--
		return "", fmt.Errorf("scripted failure for %q", prefix)
	}
	if prefix, ok := longestMatch(line, keysOfErr(f.Errors)); ok {
		return "", f.Errors[prefix]
	}
	if prefix, ok := longestMatch(line, keysOfString(f.Responses)); ok {
		return f.Responses[prefix], nil
	}
	return "", nil
}

// CommandLines returns every recorded call as a command line.
func (f *FakeRunner) CommandLines() []string {
	lines := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		lines[i] = c.String()
	}
	return lines
}

func longestMatch(line string, prefixes []string) (string, bool) {
	best := ""
	for _, p := range prefixes {
		if strings.HasPrefix(line, p) && len(p) > len(best) {
			best = p
		}
	}
	return best, best != ""
}

func keysOfString(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func keysOfErr(m map[string]error) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func keysOfInt(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// WriteStub writes an executable shell stub that prints output and exits
// with the given code. t is the active test; dir should be on PATH.
func WriteStub(t *testing.T, dir string, name string, output string, exitCode int) {
	t.Helper()
	path := filepath.Join(dir, name)
	quoted := "'" + strings.ReplaceAll(output, "'", `'\''`) + "'"
	content := fmt.Sprintf("#!/bin/sh\nprintf '%%s' %s\nexit %d\n", quoted, exitCode)
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

// WriteEbuild writes an ebuild fixture and returns its path.
// t is the active test; dir is the package directory.
func WriteEbuild(t *testing.T, dir string, name string, lines ...string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, name)
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write ebuild: %v", err)
	}
	return path
}

// WorkonLines returns a minimal cros-workon ebuild body. stableKeywords
// controls whether the KEYWORDS line carries ~ markers.
func WorkonLines(stableKeywords bool, extra ...string) []string {
	keywords := `KEYWORDS="~amd64 ~arm ~x86"`
	if stableKeywords {
		keywords = `KEYWORDS="amd64 arm x86"`
	}
	lines := []string{
		`EAPI=2`,
		`inherit cros-workon`,
		`DESCRIPTION="test package"`,
		keywords,
	}
	return append(lines, extra...)
}
