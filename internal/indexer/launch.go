package indexer

import (
	"context"
	"fmt"

	"github.com/synternet/launchpad-indexer/pkg/repository"
	"github.com/synternet/launchpad-indexer/pkg/types"
)

func loadLaunch(ctx context.Context, tx repository.Repository, ev *types.Event, id string) (repository.Launch, error) {
	res, err := tx.Launch(ctx, id)
	if err != nil {
		return repository.Launch{}, err
	}
	launch, ok := res.Get()
	if !ok {
		return launch, fmt.Errorf("%w: launch %s for %s at %s", ErrEntityMissing, id, ev.Kind, ev.Position())
	}
	return launch, nil
}

// createLaunch saves a new launch and counts it in the platform and daily stats.
func createLaunch(ctx context.Context, tx repository.Repository, ev *types.Event, launch repository.Launch) error {
	res, err := tx.Launch(ctx, launch.ID)
	if err != nil {
		return err
	}
	if res.Exists() {
		return fmt.Errorf("%w: launch %s already created", ErrDuplicateEvent, launch.ID)
	}

	launch.CreatedAt = ev.Timestamp
	if err := tx.SaveLaunch(ctx, launch); err != nil {
		return err
	}

	stats, err := platformStats(ctx, tx, ev.Timestamp)
	if err != nil {
		return err
	}
	stats.TotalLaunches++
	switch launch.LaunchType {
	case repository.LaunchProjectRaise:
		stats.TotalProjectRaises++
	case repository.LaunchInstantLaunch:
		stats.TotalInstantLaunches++
	}
	if err := tx.SavePlatformStats(ctx, stats); err != nil {
		return err
	}
	return updateDailyStats(ctx, tx, ev.Timestamp, dailyDelta{launches: 1})
}

func handleLaunchCreated(ctx context.Context, tx repository.Repository, ev *types.Event, p *types.LaunchCreated) error {
	deadline := types.Int(p.RaiseDeadline)
	if !deadline.IsUint64() {
		return fmt.Errorf("%w: raise deadline %s out of range", ErrInvariantViolation, deadline)
	}

	launch := repository.NewLaunch(p.Token, p.Founder, repository.LaunchProjectRaise)
	launch.TotalSupply = types.Int(p.TotalSupply)
	launch.RaiseTarget = types.Int(p.RaiseTarget)
	launch.RaiseMax = types.Int(p.RaiseMax)
	launch.RaiseDeadline = deadline.Uint64()
	launch.FounderTokens = types.Int(p.FounderTokens)
	return createLaunch(ctx, tx, ev, launch)
}

// An instant launch has no raise phase and starts with liquidity added.
func handleInstantLaunchCreated(ctx context.Context, tx repository.Repository, ev *types.Event, p *types.InstantLaunchCreated) error {
	launch := repository.NewLaunch(p.Token, p.Founder, repository.LaunchInstantLaunch)
	launch.TotalSupply = types.Int(p.TotalSupply)
	launch.FounderTokens = types.Int(p.FounderTokens)
	launch.LiquidityBNB = types.Int(p.LiquidityBNB)
	launch.LiquidityTokens = types.Int(p.LiquidityTokens)
	launch.RaiseCompleted = true
	launch.LiquidityAdded = true
	return createLaunch(ctx, tx, ev, launch)
}

func handleContributionMade(ctx context.Context, tx repository.Repository, ev *types.Event, p *types.ContributionMade) error {
	launch, err := loadLaunch(ctx, tx, ev, types.LaunchID(p.Token))
	if err != nil {
		return err
	}
	if !launch.Raising() {
		return fmt.Errorf("%w: contribution to %s launch %s that is not raising", ErrInvalidTransition, launch.LaunchType, launch.ID)
	}

	create := func() repository.Contribution {
		return repository.NewContribution(p.Token, p.Contributor)
	}
	contribution, created, err := repository.GetOrCreate[repository.Contribution](ctx, tx.Contribution, types.ContributionID(p.Token, p.Contributor), create)
	if err != nil {
		return err
	}
	if contribution.Claimed() {
		return fmt.Errorf("%w: contribution %s is %s", ErrTerminalState, contribution.ID, contribution.Status)
	}

	amount := types.Int(p.Amount)
	contribution.Amount = types.Add(contribution.Amount, amount)
	contribution.ContributionCount++
	contribution.Timestamp = ev.Timestamp
	contribution.TxHash = ev.TxHash
	if err := tx.SaveContribution(ctx, contribution); err != nil {
		return err
	}

	if created {
		launch.ContributorCount++
	}
	launch.TotalRaised = types.Add(launch.TotalRaised, amount)
	return tx.SaveLaunch(ctx, launch)
}

func handleRaiseCompleted(ctx context.Context, tx repository.Repository, ev *types.Event, p *types.RaiseCompleted) error {
	launch, err := loadLaunch(ctx, tx, ev, types.LaunchID(p.Token))
	if err != nil {
		return err
	}
	if !launch.Raising() {
		return fmt.Errorf("%w: raise of %s launch %s cannot complete", ErrInvalidTransition, launch.LaunchType, launch.ID)
	}

	total := types.Int(p.TotalRaised)
	launch.RaiseCompleted = true
	launch.TotalRaised = total
	launch.RaisedFundsVesting = types.Copy(total)
	launch.VestingStartTime = ev.Timestamp
	if err := tx.SaveLaunch(ctx, launch); err != nil {
		return err
	}

	stats, err := platformStats(ctx, tx, ev.Timestamp)
	if err != nil {
		return err
	}
	stats.TotalRaised = types.Add(stats.TotalRaised, total)
	return tx.SavePlatformStats(ctx, stats)
}

// Contributions stay pending after a failed raise and are resolved by refunds.
func handleRaiseFailed(ctx context.Context, tx repository.Repository, ev *types.Event, p *types.RaiseFailed) error {
	launch, err := loadLaunch(ctx, tx, ev, types.LaunchID(p.Token))
	if err != nil {
		return err
	}
	if !launch.Raising() {
		return fmt.Errorf("%w: raise of %s launch %s cannot fail", ErrInvalidTransition, launch.LaunchType, launch.ID)
	}

	launch.RaiseCompleted = false
	launch.RaiseFailed = true
	return tx.SaveLaunch(ctx, launch)
}

// resolveContribution moves a pending contribution into one of its terminal states.
// A token claim needs a completed raise and a refund needs a failed one.
func resolveContribution(status repository.ContributionStatus) func(context.Context, repository.Repository, *types.Event, *types.ContributionClaim) error {
	return func(ctx context.Context, tx repository.Repository, ev *types.Event, p *types.ContributionClaim) error {
		launch, err := loadLaunch(ctx, tx, ev, types.LaunchID(p.Token))
		if err != nil {
			return err
		}

		id := types.ContributionID(p.Token, p.Contributor)
		res, err := tx.Contribution(ctx, id)
		if err != nil {
			return err
		}
		contribution, ok := res.Get()
		if !ok {
			return fmt.Errorf("%w: contribution %s for %s at %s", ErrEntityMissing, id, ev.Kind, ev.Position())
		}
		if contribution.Claimed() {
			return fmt.Errorf("%w: contribution %s is already %s, got %s", ErrTerminalState, id, contribution.Status, ev.Kind)
		}

		switch {
		case status == repository.ContributionClaimedTokens && !launch.RaiseCompleted:
			return fmt.Errorf("%w: token claim on launch %s without a completed raise", ErrInvalidTransition, launch.ID)
		case status == repository.ContributionRefunded && !launch.RaiseFailed:
			return fmt.Errorf("%w: refund on launch %s without a failed raise", ErrInvalidTransition, launch.ID)
		}

		contribution.Status = status
		if p.Amount != nil {
			contribution.ResolvedAmount = types.Int(p.Amount)
		} else {
			contribution.ResolvedAmount = types.Copy(contribution.Amount)
		}
		return tx.SaveContribution(ctx, contribution)
	}
}

func handleFounderTokensClaimed(ctx context.Context, tx repository.Repository, ev *types.Event, p *types.FounderClaim) error {
	launch, err := loadLaunch(ctx, tx, ev, types.LaunchID(p.Token))
	if err != nil {
		return err
	}
	launch.FounderTokensClaimed = types.Add(launch.FounderTokensClaimed, types.Int(p.Amount))
	return tx.SaveLaunch(ctx, launch)
}

func handleRaisedFundsClaimed(ctx context.Context, tx repository.Repository, ev *types.Event, p *types.FounderClaim) error {
	launch, err := loadLaunch(ctx, tx, ev, types.LaunchID(p.Token))
	if err != nil {
		return err
	}
	launch.RaisedFundsClaimed = types.Add(launch.RaisedFundsClaimed, types.Int(p.Amount))
	return tx.SaveLaunch(ctx, launch)
}

func handleGraduatedToPancakeSwap(ctx context.Context, tx repository.Repository, ev *types.Event, p *types.GraduatedToPancakeSwap) error {
	launch, err := loadLaunch(ctx, tx, ev, types.LaunchID(p.Token))
	if err != nil {
		return err
	}
	if launch.GraduatedToPancakeSwap {
		return fmt.Errorf("%w: launch %s already graduated at %d", ErrTerminalState, launch.ID, launch.GraduatedAt)
	}
	if !launch.RaiseCompleted {
		return fmt.Errorf("%w: launch %s graduates without a completed raise", ErrInvalidTransition, launch.ID)
	}

	launch.GraduatedToPancakeSwap = true
	launch.LiquidityAdded = true
	launch.LiquidityBNB = types.Int(p.LiquidityBNB)
	launch.LiquidityTokens = types.Int(p.LiquidityTokens)
	launch.GraduatedAt = ev.Timestamp
	if err := tx.SaveLaunch(ctx, launch); err != nil {
		return err
	}

	stats, err := platformStats(ctx, tx, ev.Timestamp)
	if err != nil {
		return err
	}
	stats.TotalGraduated++
	return tx.SavePlatformStats(ctx, stats)
}

func handleTransfersEnabled(ctx context.Context, tx repository.Repository, ev *types.Event, p *types.TransfersEnabled) error {
	launch, err := loadLaunch(ctx, tx, ev, types.LaunchID(p.Token))
	if err != nil {
		return err
	}
	if launch.TransfersEnabled {
		return nil
	}
	launch.TransfersEnabled = true
	launch.TransfersEnabledAt = ev.Timestamp
	return tx.SaveLaunch(ctx, launch)
}
