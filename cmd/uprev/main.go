// Command uprev promotes cros-workon 9999 ebuilds to pinned stable
// revisions and publishes the result to the tracking branch.
package main

import (
	"fmt"
	"io"
	"os"
)

// Version, Commit, and BuildDate are overridden at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// runMain executes the CLI and exits non-zero on any fatal error.
func runMain(args []string, stdout io.Writer, stderr io.Writer, exit func(int)) {
	cmd := newRootCmd()
	cmd.Version = versionString()
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		exit(1)
	}
}

// versionString combines the build-time version metadata.
func versionString() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)
}
