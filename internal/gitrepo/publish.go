package gitrepo

import (
	"context"
	"fmt"
	"io"

	"github.com/conn-castle/uprev/internal/logging"
	"github.com/conn-castle/uprev/internal/messages"
	"github.com/conn-castle/uprev/internal/warnings"
)

const (
	// StableBranchName collects one batch of promotion commits.
	StableBranchName = "stabilizing_branch"
	// mergeBranchName is the disposable branch each publish attempt uses.
	mergeBranchName = "merge_branch"
	// pushRetries is the number of retries after the first attempt.
	pushRetries = 5
)

// Publisher folds a finished stabilizing branch into the tracking branch and
// pushes it. Concurrent pushers may race on the remote; every attempt starts
// from a fresh merge branch after refreshing remote state so a rejected push
// never contaminates the next try.
type Publisher struct {
	Repo   *Repo
	DryRun bool
	// Out receives user-facing progress messages.
	Out io.Writer
	// Warn receives the per-attempt retry warnings.
	Warn *warnings.Emitter
}

// Publish squashes stableBranch onto trackingBranch and pushes. When the
// checkout is not on stableBranch there is nothing to publish and the call
// succeeds as a no-op without contacting the remote.
func (p *Publisher) Publish(ctx context.Context, stableBranch, trackingBranch string) error {
	current, err := p.Repo.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if current != stableBranch {
		fmt.Fprintf(p.Out, messages.InfoNotOnBranchFmt+"\n", stableBranch)
		return nil
	}

	body, err := p.Repo.LogRange(ctx, trackingBranch)
	if err != nil {
		return err
	}
	description := messages.PushBanner + "\n\n" + body
	logger := logging.GetLogger("publish")
	logger.Debug().Msgf("using description %s", description)

	for attempt := 0; attempt <= pushRetries; attempt++ {
		err = p.attempt(ctx, stableBranch, trackingBranch, description)
		if err == nil {
			return nil
		}
		if attempt < pushRetries {
			p.Warn.Emitf(warnings.CodePushRetry, p.Repo.Dir(),
				messages.WarnPushRetryFmt, attempt+1, pushRetries)
		}
	}
	return err
}

// attempt is one fully isolated publish cycle on a fresh merge branch.
func (p *Publisher) attempt(ctx context.Context, stableBranch, trackingBranch, description string) error {
	if err := p.Repo.RemoteUpdate(ctx); err != nil {
		return err
	}
	merge := NewBranch(p.Repo, mergeBranchName, trackingBranch)
	if err := merge.Create(ctx); err != nil {
		return err
	}
	exists, err := merge.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf(messages.ErrCreateMergeBranch)
	}
	if err := p.Repo.SquashMerge(ctx, stableBranch); err != nil {
		return err
	}
	if err := p.Repo.Commit(ctx, description); err != nil {
		return err
	}
	return p.Repo.Push(ctx, p.DryRun)
}
