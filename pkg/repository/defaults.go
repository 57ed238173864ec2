package repository

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/synternet/launchpad-indexer/pkg/types"
)

// The constructors below define the zero state of every lazily created entity.
// Numeric fields are never nil.

func NewPool(token, creator common.Address) Pool {
	return Pool{
		ID:                  types.PoolID(token),
		Token:               token,
		Creator:             creator,
		BnbReserve:          types.Zero(),
		TokenReserve:        types.Zero(),
		ReservedTokens:      types.Zero(),
		VirtualBnbReserve:   types.Zero(),
		CurrentPrice:        types.Zero(),
		MarketCap:           types.Zero(),
		GraduationMarketCap: types.Zero(),
		GraduationThreshold: types.Zero(),
		GraduationBnb:       types.Zero(),
		LaunchBlock:         types.Zero(),
		TotalVolume:         types.Zero(),
		TotalFees:           types.Zero(),
	}
}

func NewTokenHolder(token, holder common.Address) TokenHolder {
	return TokenHolder{
		ID:          types.HolderID(token, holder),
		Token:       token,
		Holder:      holder,
		Balance:     types.Zero(),
		TotalBought: types.Zero(),
		TotalSold:   types.Zero(),
	}
}

func NewCreatorFees(token, creator common.Address) CreatorFees {
	return CreatorFees{
		ID:              types.CreatorFeesID(token, creator),
		Token:           token,
		Creator:         creator,
		AccumulatedFees: types.Zero(),
		TotalClaimed:    types.Zero(),
	}
}

func NewLaunch(token, founder common.Address, launchType LaunchType) Launch {
	return Launch{
		ID:                   types.LaunchID(token),
		Token:                token,
		Founder:              founder,
		LaunchType:           launchType,
		TotalSupply:          types.Zero(),
		RaiseTarget:          types.Zero(),
		RaiseMax:             types.Zero(),
		TotalRaised:          types.Zero(),
		FounderTokens:        types.Zero(),
		FounderTokensClaimed: types.Zero(),
		LiquidityBNB:         types.Zero(),
		LiquidityTokens:      types.Zero(),
		RaisedFundsVesting:   types.Zero(),
		RaisedFundsClaimed:   types.Zero(),
	}
}

func NewContribution(launch, contributor common.Address) Contribution {
	return Contribution{
		ID:             types.ContributionID(launch, contributor),
		Launch:         types.LaunchID(launch),
		Contributor:    contributor,
		Amount:         types.Zero(),
		Status:         ContributionPending,
		ResolvedAmount: types.Zero(),
	}
}

func NewPlatformStats() PlatformStats {
	return PlatformStats{
		ID:          types.PlatformStatsID,
		TotalVolume: types.Zero(),
		TotalFees:   types.Zero(),
		TotalRaised: types.Zero(),
	}
}

func NewDailyStats(timestamp uint64) DailyStats {
	day := types.DayBucket(timestamp)
	return DailyStats{
		ID:     types.DayID(timestamp),
		Day:    day,
		Date:   uint64(day) * types.SecondsPerDay,
		Volume: types.Zero(),
		Fees:   types.Zero(),
	}
}
