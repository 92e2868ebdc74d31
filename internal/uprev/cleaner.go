package uprev

import (
	"context"
	"fmt"
	"io"

	"github.com/conn-castle/uprev/internal/cmdrun"
	"github.com/conn-castle/uprev/internal/messages"
)

// PackageCleaner removes stale build artifacts for promoted packages, for
// both the target board and the host.
type PackageCleaner interface {
	CleanStale(ctx context.Context, board string, packages []string) error
}

// emergeCleaner shells out to the portage tools.
type emergeCleaner struct {
	run cmdrun.Runner
	out io.Writer
}

// CleanStale unmerges the packages from the board and host roots and drops
// their binary packages from both caches.
func (c emergeCleaner) CleanStale(ctx context.Context, board string, packages []string) error {
	fmt.Fprintf(c.out, messages.InfoCleaningStaleFmt+"\n", packages)

	boardArgs := append([]string{"--unmerge"}, packages...)
	if _, err := c.run.Output(ctx, "", "emerge-"+board, boardArgs...); err != nil {
		return err
	}
	hostArgs := append([]string{"emerge", "--unmerge"}, packages...)
	if _, err := c.run.Output(ctx, "", "sudo", hostArgs...); err != nil {
		return err
	}
	if _, err := c.run.Output(ctx, "", "eclean-"+board, "-d", "packages"); err != nil {
		return err
	}
	if _, err := c.run.Output(ctx, "", "sudo", "eclean", "-d", "packages"); err != nil {
		return err
	}
	return nil
}
