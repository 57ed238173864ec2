package indexer

import (
	"context"
	"fmt"

	"github.com/synternet/launchpad-indexer/pkg/repository"
	"github.com/synternet/launchpad-indexer/pkg/types"
)

type handleFunc func(ctx context.Context, tx repository.Repository, ev *types.Event, payload any) error

type registry map[types.EventKind]handleFunc

// register binds fn to kind and checks that the decoded payload has the type fn expects.
func register[P any](r registry, kind types.EventKind, fn func(ctx context.Context, tx repository.Repository, ev *types.Event, p *P) error) {
	r[kind] = func(ctx context.Context, tx repository.Repository, ev *types.Event, payload any) error {
		p, ok := payload.(*P)
		if !ok {
			return fmt.Errorf("%w: %s payload has type %T", ErrDecode, kind, payload)
		}
		return fn(ctx, tx, ev, p)
	}
}

func newRegistry() registry {
	r := make(registry)

	register(r, types.EventPoolCreated, handlePoolCreated)
	register(r, types.EventTokensBought, handleTokensBought)
	register(r, types.EventTokensSold, handleTokensSold)
	register(r, types.EventPoolGraduated, handlePoolGraduated)
	register(r, types.EventCreatorFeesClaimed, handleCreatorFeesClaimed)

	register(r, types.EventLaunchCreated, handleLaunchCreated)
	register(r, types.EventInstantLaunchCreated, handleInstantLaunchCreated)
	register(r, types.EventContributionMade, handleContributionMade)
	register(r, types.EventRaiseCompleted, handleRaiseCompleted)
	register(r, types.EventRaiseFailed, handleRaiseFailed)
	register(r, types.EventContributorTokensClaimed, resolveContribution(repository.ContributionClaimedTokens))
	register(r, types.EventRefundClaimed, resolveContribution(repository.ContributionRefunded))
	register(r, types.EventFounderTokensClaimed, handleFounderTokensClaimed)
	register(r, types.EventRaisedFundsClaimed, handleRaisedFundsClaimed)
	register(r, types.EventGraduatedToPancakeSwap, handleGraduatedToPancakeSwap)
	register(r, types.EventTransfersEnabled, handleTransfersEnabled)

	return r
}
