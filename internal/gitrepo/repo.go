// Package gitrepo drives git as a subprocess against a path-bound checkout.
// It provides the branch lifecycle and publish protocol for promotion runs;
// it is not a general-purpose git library.
package gitrepo

import (
	"context"
	"strings"

	"github.com/conn-castle/uprev/internal/cmdrun"
)

// Repo is a handle to one git checkout. All operations run with the checkout
// as the working directory; nothing mutates the process-wide directory.
type Repo struct {
	dir string
	run cmdrun.Runner
}

// New returns a repo handle for dir.
func New(dir string, run cmdrun.Runner) *Repo {
	return &Repo{dir: dir, run: run}
}

// Dir returns the checkout path.
func (r *Repo) Dir() string {
	return r.dir
}

func (r *Repo) git(ctx context.Context, args ...string) (string, error) {
	return r.run.Output(ctx, r.dir, "git", args...)
}

// CurrentBranch returns the checked-out branch name, empty when detached.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.git(ctx, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Add stages a file addition.
func (r *Repo) Add(ctx context.Context, path string) error {
	_, err := r.git(ctx, "add", path)
	return err
}

// Remove stages a file removal.
func (r *Repo) Remove(ctx context.Context, path string) error {
	_, err := r.git(ctx, "rm", path)
	return err
}

// CommitAll commits all tracked changes with the given message.
func (r *Repo) CommitAll(ctx context.Context, message string) error {
	_, err := r.git(ctx, "commit", "-a", "-m", message)
	return err
}

// Commit commits staged changes with the given message.
func (r *Repo) Commit(ctx context.Context, message string) error {
	_, err := r.git(ctx, "commit", "-m", message)
	return err
}

// Checkout switches the checkout to ref.
func (r *Repo) Checkout(ctx context.Context, ref string) error {
	_, err := r.git(ctx, "checkout", ref)
	return err
}

// ResetHard discards all uncommitted changes.
func (r *Repo) ResetHard(ctx context.Context) error {
	_, err := r.git(ctx, "reset", "--hard", "HEAD")
	return err
}

// RemoteUpdate refreshes all remote-tracking refs.
func (r *Repo) RemoteUpdate(ctx context.Context) error {
	_, err := r.git(ctx, "remote", "update")
	return err
}

// SquashMerge merges branch into the current branch without committing.
func (r *Repo) SquashMerge(ctx context.Context, branch string) error {
	_, err := r.git(ctx, "merge", "--squash", branch)
	return err
}

// LogRange returns the subjects and bodies of the commits in since..HEAD.
func (r *Repo) LogRange(ctx context.Context, since string) (string, error) {
	return r.git(ctx, "log", "--format=format:%s%n%n%b", since+"..")
}

// Push publishes the current branch to its upstream. The push is rejected by
// the remote if it advanced since the last fetch; that atomicity is what the
// publish retry loop relies on.
func (r *Repo) Push(ctx context.Context, dryRun bool) error {
	if _, err := r.git(ctx, "config", "push.default", "tracking"); err != nil {
		return err
	}
	if dryRun {
		_, err := r.git(ctx, "push", "--dry-run")
		return err
	}
	_, err := r.git(ctx, "push")
	return err
}
