// Package uprev orchestrates promotion runs across overlay checkouts.
package uprev

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/conn-castle/uprev/internal/cmdrun"
	"github.com/conn-castle/uprev/internal/config"
	"github.com/conn-castle/uprev/internal/ebuild"
	"github.com/conn-castle/uprev/internal/gitrepo"
	"github.com/conn-castle/uprev/internal/logging"
	"github.com/conn-castle/uprev/internal/messages"
	"github.com/conn-castle/uprev/internal/overlay"
	"github.com/conn-castle/uprev/internal/warnings"
)

// recoverableError marks a failure confined to one overlay directory. The
// directory's remaining work is abandoned, other overlays still run, and the
// process exits non-zero at the end.
type recoverableError struct {
	overlay string
	err     error
}

func (e *recoverableError) Error() string {
	return fmt.Sprintf("overlay %s: %v", e.overlay, e.err)
}

func (e *recoverableError) Unwrap() error {
	return e.err
}

// Runner executes one command (clean, commit, or push) over the configured
// overlays, one overlay at a time. A per-package failure abandons that
// overlay's remaining work; other overlays still run.
type Runner struct {
	cfg     *config.Config
	run     cmdrun.Runner
	cleaner PackageCleaner
	out     io.Writer
	warn    *warnings.Emitter
}

// New builds a runner. out receives user-facing progress; errOut receives
// warnings.
func New(cfg *config.Config, run cmdrun.Runner, out, errOut io.Writer) *Runner {
	return &Runner{
		cfg:     cfg,
		run:     run,
		cleaner: emergeCleaner{run: run, out: out},
		out:     out,
		warn:    warnings.NewEmitter(errOut),
	}
}

// Clean discards local changes in every overlay and returns each checkout to
// the tracking branch.
func (u *Runner) Clean(ctx context.Context) error {
	return u.eachOverlay(func(root string) error {
		repo := gitrepo.New(root, u.run)
		if err := repo.ResetHard(ctx); err != nil {
			return err
		}
		return repo.Checkout(ctx, u.cfg.TrackingBranch)
	})
}

// Push publishes previously committed promotions from each overlay's
// stabilizing branch. Exhausting the publish retries is fatal.
func (u *Runner) Push(ctx context.Context) error {
	return u.eachOverlay(func(root string) error {
		publisher := &gitrepo.Publisher{
			Repo:   gitrepo.New(root, u.run),
			DryRun: u.cfg.DryRun,
			Out:    u.out,
			Warn:   u.warn,
		}
		return publisher.Publish(ctx, gitrepo.StableBranchName, u.cfg.TrackingBranch)
	})
}

// Commit resolves candidates and promotes them, one local commit per package
// on a fresh stabilizing branch per overlay. When nothing changed in an
// overlay the branch is deleted again.
func (u *Runner) Commit(ctx context.Context) error {
	candidates, err := overlay.Build(u.cfg, u.warn)
	if err != nil {
		return err
	}
	return u.eachOverlay(func(root string) error {
		ebuilds := candidates[root]
		if len(ebuilds) == 0 {
			return nil
		}
		return u.commitOverlay(ctx, root, ebuilds)
	})
}

func (u *Runner) commitOverlay(ctx context.Context, root string, ebuilds []*ebuild.Ebuild) error {
	repo := gitrepo.New(root, u.run)
	branch := gitrepo.NewBranch(repo, gitrepo.StableBranchName, u.cfg.TrackingBranch)
	if err := branch.Create(ctx); err != nil {
		return fmt.Errorf(messages.ErrCreateBranchFmt+": %w", root, err)
	}
	exists, err := branch.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf(messages.ErrCreateBranchFmt, root)
	}

	log := logging.GetLogger("uprev")
	var revved []string
	for _, e := range ebuilds {
		log.Debug().Msgf("working on %s", e.Package)
		changed, err := u.promote(ctx, repo, e)
		if err != nil {
			// Manual recovery needed: the branch keeps whatever was already
			// committed, and the index may hold a half-staged promotion.
			u.warn.Emitf(warnings.CodeUprevFailed, e.Package,
				messages.WarnCannotUprevFmt, e.Package, root)
			return &recoverableError{overlay: root, err: err}
		}
		if changed {
			revved = append(revved, e.Package)
		}
	}

	if len(revved) > 0 {
		if err := u.cleaner.CleanStale(ctx, u.cfg.Board, revved); err != nil {
			u.warn.Emitf(warnings.CodeStaleCleanupFailed, root,
				messages.WarnCleanStaleFailedFmt, err)
		}
		return nil
	}
	return branch.Delete(ctx)
}

// promote revs one ebuild against its current upstream head and commits the
// result locally when it produced a real change.
func (u *Runner) promote(ctx context.Context, repo *gitrepo.Repo, e *ebuild.Ebuild) (bool, error) {
	commitID, err := e.CommitID(ctx, u.run, u.cfg.SrcRoot, u.cfg.Exemptions.ProjectNameAccepted)
	if err != nil {
		return false, err
	}
	changed, err := ebuild.NewMarker(e, repo).Rev(ctx, commitID)
	if err != nil || !changed {
		return false, err
	}
	message := fmt.Sprintf(messages.CommitMessageFmt, e.Package, commitID)
	if err := repo.CommitAll(ctx, message); err != nil {
		return false, err
	}
	return true, nil
}

// eachOverlay runs fn per overlay root, skipping roots that do not exist
// with a warning. Recoverable failures are confined to their overlay and the
// first one is returned after all overlays were attempted; any other failure
// is fatal and aborts the run immediately.
func (u *Runner) eachOverlay(fn func(root string) error) error {
	var firstRecoverable error
	for _, root := range u.cfg.Overlays {
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			u.warn.Emitf(warnings.CodeOverlaySkipped, root, messages.WarnSkippingOverlayFmt, root)
			continue
		}
		if err := fn(root); err != nil {
			var rerr *recoverableError
			if !errors.As(err, &rerr) {
				return err
			}
			if firstRecoverable == nil {
				firstRecoverable = err
			}
		}
	}
	return firstRecoverable
}
