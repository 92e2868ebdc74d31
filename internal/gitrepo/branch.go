package gitrepo

import (
	"context"
	"strings"
)

// Branch is a named local branch cut from a tracking branch. The on-disk
// state is always probed, never assumed.
type Branch struct {
	repo *Repo
	// Name is the local branch name.
	Name string
	// Tracking is the base reference the branch is created from.
	Tracking string
}

// NewBranch returns a branch handle; it does not create anything.
func NewBranch(repo *Repo, name, tracking string) *Branch {
	return &Branch{repo: repo, Name: name, Tracking: tracking}
}

// Create makes the branch from its tracking base, replacing any stale branch
// of the same name, and leaves it checked out.
func (b *Branch) Create(ctx context.Context) error {
	exists, err := b.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		if err := b.Delete(ctx); err != nil {
			return err
		}
	}
	_, err = b.repo.git(ctx, "checkout", "-b", b.Name, b.Tracking)
	return err
}

// Exists reports whether the branch is in the local branch list.
func (b *Branch) Exists(ctx context.Context) (bool, error) {
	out, err := b.repo.git(ctx, "branch", "--list", b.Name)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// Delete force-deletes the branch, returning the checkout to the tracking
// branch first.
func (b *Branch) Delete(ctx context.Context) error {
	if err := b.repo.Checkout(ctx, b.Tracking); err != nil {
		return err
	}
	_, err := b.repo.git(ctx, "branch", "-D", b.Name)
	return err
}
