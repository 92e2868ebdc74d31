// Package cmdrun runs external tools and captures their output.
//
// Every mutation of a git checkout and every package-manager call in this
// repository goes through a Runner, so tests can substitute a scripted fake
// and assert on the exact invocations.
package cmdrun

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/conn-castle/uprev/internal/logging"
)

var execCommandContext = exec.CommandContext

// Runner executes an external command in a working directory and returns its
// standard output.
type Runner interface {
	Output(ctx context.Context, dir string, name string, args ...string) (string, error)
}

// Exec is the Runner used outside of tests. It shells out synchronously and
// blocks until the command finishes.
type Exec struct{}

// Output runs name with args in dir and returns trimmed stdout.
// A non-zero exit wraps the command line and captured stderr into the error.
func (Exec) Output(ctx context.Context, dir string, name string, args ...string) (string, error) {
	logger := logging.GetLogger("cmdrun")
	logger.Debug().
		Str("dir", dir).
		Msg("+ " + name + " " + strings.Join(args, " "))

	cmd := execCommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg != "" {
			return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return strings.TrimRight(stdout.String(), "\n"), nil
}
