package repository

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/synternet/launchpad-indexer/pkg/repository"
	"github.com/synternet/launchpad-indexer/pkg/types"
)

func dec(v *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(types.Copy(v), 0)
}

func bigInt(d decimal.Decimal) *big.Int {
	return d.BigInt()
}

func addr(a common.Address) string {
	return types.Address(a)
}

func toPoolRow(p repository.Pool) Pool {
	return Pool{
		ID:                  p.ID,
		Token:               addr(p.Token),
		Creator:             addr(p.Creator),
		BnbReserve:          dec(p.BnbReserve),
		TokenReserve:        dec(p.TokenReserve),
		ReservedTokens:      dec(p.ReservedTokens),
		VirtualBnbReserve:   dec(p.VirtualBnbReserve),
		CurrentPrice:        dec(p.CurrentPrice),
		MarketCap:           dec(p.MarketCap),
		GraduationMarketCap: dec(p.GraduationMarketCap),
		GraduationThreshold: dec(p.GraduationThreshold),
		GraduationBnb:       dec(p.GraduationBnb),
		LaunchBlock:         dec(p.LaunchBlock),
		Active:              p.Active,
		Graduated:           p.Graduated,
		TotalVolume:         dec(p.TotalVolume),
		TotalFees:           dec(p.TotalFees),
		TotalBuys:           p.TotalBuys,
		TotalSells:          p.TotalSells,
		CreatedAt:           p.CreatedAt,
		GraduatedAt:         p.GraduatedAt,
		UpdatedBlock:        p.UpdatedBlock,
	}
}

func (p Pool) entity() repository.Pool {
	return repository.Pool{
		ID:                  p.ID,
		Token:               common.HexToAddress(p.Token),
		Creator:             common.HexToAddress(p.Creator),
		BnbReserve:          bigInt(p.BnbReserve),
		TokenReserve:        bigInt(p.TokenReserve),
		ReservedTokens:      bigInt(p.ReservedTokens),
		VirtualBnbReserve:   bigInt(p.VirtualBnbReserve),
		CurrentPrice:        bigInt(p.CurrentPrice),
		MarketCap:           bigInt(p.MarketCap),
		GraduationMarketCap: bigInt(p.GraduationMarketCap),
		GraduationThreshold: bigInt(p.GraduationThreshold),
		GraduationBnb:       bigInt(p.GraduationBnb),
		LaunchBlock:         bigInt(p.LaunchBlock),
		Active:              p.Active,
		Graduated:           p.Graduated,
		TotalVolume:         bigInt(p.TotalVolume),
		TotalFees:           bigInt(p.TotalFees),
		TotalBuys:           p.TotalBuys,
		TotalSells:          p.TotalSells,
		CreatedAt:           p.CreatedAt,
		GraduatedAt:         p.GraduatedAt,
		UpdatedBlock:        p.UpdatedBlock,
	}
}

func toTradeRow(t repository.Trade) Trade {
	return Trade{
		ID:          t.ID,
		Pool:        t.Pool,
		Trader:      addr(t.Trader),
		IsBuy:       t.IsBuy,
		BnbAmount:   dec(t.BnbAmount),
		TokenAmount: dec(t.TokenAmount),
		Price:       dec(t.Price),
		FeeRate:     dec(t.FeeRate),
		TotalFee:    dec(t.TotalFee),
		Timestamp:   t.Timestamp,
		Block:       t.Block,
		TxHash:      t.TxHash.Hex(),
		LogIndex:    t.LogIndex,
	}
}

func (t Trade) entity() repository.Trade {
	return repository.Trade{
		ID:          t.ID,
		Pool:        t.Pool,
		Trader:      common.HexToAddress(t.Trader),
		IsBuy:       t.IsBuy,
		BnbAmount:   bigInt(t.BnbAmount),
		TokenAmount: bigInt(t.TokenAmount),
		Price:       bigInt(t.Price),
		FeeRate:     bigInt(t.FeeRate),
		TotalFee:    bigInt(t.TotalFee),
		Timestamp:   t.Timestamp,
		Block:       t.Block,
		TxHash:      common.HexToHash(t.TxHash),
		LogIndex:    t.LogIndex,
	}
}

func toTokenHolderRow(h repository.TokenHolder) TokenHolder {
	return TokenHolder{
		ID:                    h.ID,
		Token:                 addr(h.Token),
		Holder:                addr(h.Holder),
		Balance:               dec(h.Balance),
		TotalBought:           dec(h.TotalBought),
		TotalSold:             dec(h.TotalSold),
		BuyCount:              h.BuyCount,
		SellCount:             h.SellCount,
		FirstBuyTimestamp:     h.FirstBuyTimestamp,
		LastActivityTimestamp: h.LastActivityTimestamp,
	}
}

func (h TokenHolder) entity() repository.TokenHolder {
	return repository.TokenHolder{
		ID:                    h.ID,
		Token:                 common.HexToAddress(h.Token),
		Holder:                common.HexToAddress(h.Holder),
		Balance:               bigInt(h.Balance),
		TotalBought:           bigInt(h.TotalBought),
		TotalSold:             bigInt(h.TotalSold),
		BuyCount:              h.BuyCount,
		SellCount:             h.SellCount,
		FirstBuyTimestamp:     h.FirstBuyTimestamp,
		LastActivityTimestamp: h.LastActivityTimestamp,
	}
}

func toCreatorFeesRow(f repository.CreatorFees) CreatorFees {
	return CreatorFees{
		ID:              f.ID,
		Token:           addr(f.Token),
		Creator:         addr(f.Creator),
		AccumulatedFees: dec(f.AccumulatedFees),
		TotalClaimed:    dec(f.TotalClaimed),
		LastClaimTime:   f.LastClaimTime,
		ClaimCount:      f.ClaimCount,
	}
}

func (f CreatorFees) entity() repository.CreatorFees {
	return repository.CreatorFees{
		ID:              f.ID,
		Token:           common.HexToAddress(f.Token),
		Creator:         common.HexToAddress(f.Creator),
		AccumulatedFees: bigInt(f.AccumulatedFees),
		TotalClaimed:    bigInt(f.TotalClaimed),
		LastClaimTime:   f.LastClaimTime,
		ClaimCount:      f.ClaimCount,
	}
}

func toLaunchRow(l repository.Launch) Launch {
	return Launch{
		ID:                     l.ID,
		Token:                  addr(l.Token),
		Founder:                addr(l.Founder),
		LaunchType:             string(l.LaunchType),
		TotalSupply:            dec(l.TotalSupply),
		RaiseTarget:            dec(l.RaiseTarget),
		RaiseMax:               dec(l.RaiseMax),
		RaiseDeadline:          l.RaiseDeadline,
		TotalRaised:            dec(l.TotalRaised),
		FounderTokens:          dec(l.FounderTokens),
		ContributorCount:       l.ContributorCount,
		RaiseCompleted:         l.RaiseCompleted,
		RaiseFailed:            l.RaiseFailed,
		LiquidityAdded:         l.LiquidityAdded,
		GraduatedToPancakeSwap: l.GraduatedToPancakeSwap,
		BurnLP:                 l.BurnLP,
		TransfersEnabled:       l.TransfersEnabled,
		FounderTokensClaimed:   dec(l.FounderTokensClaimed),
		LiquidityBNB:           dec(l.LiquidityBNB),
		LiquidityTokens:        dec(l.LiquidityTokens),
		RaisedFundsVesting:     dec(l.RaisedFundsVesting),
		RaisedFundsClaimed:     dec(l.RaisedFundsClaimed),
		VestingStartTime:       l.VestingStartTime,
		TransfersEnabledAt:     l.TransfersEnabledAt,
		GraduatedAt:            l.GraduatedAt,
		CreatedAt:              l.CreatedAt,
	}
}

func (l Launch) entity() repository.Launch {
	return repository.Launch{
		ID:                     l.ID,
		Token:                  common.HexToAddress(l.Token),
		Founder:                common.HexToAddress(l.Founder),
		LaunchType:             repository.LaunchType(l.LaunchType),
		TotalSupply:            bigInt(l.TotalSupply),
		RaiseTarget:            bigInt(l.RaiseTarget),
		RaiseMax:               bigInt(l.RaiseMax),
		RaiseDeadline:          l.RaiseDeadline,
		TotalRaised:            bigInt(l.TotalRaised),
		FounderTokens:          bigInt(l.FounderTokens),
		ContributorCount:       l.ContributorCount,
		RaiseCompleted:         l.RaiseCompleted,
		RaiseFailed:            l.RaiseFailed,
		LiquidityAdded:         l.LiquidityAdded,
		GraduatedToPancakeSwap: l.GraduatedToPancakeSwap,
		BurnLP:                 l.BurnLP,
		TransfersEnabled:       l.TransfersEnabled,
		FounderTokensClaimed:   bigInt(l.FounderTokensClaimed),
		LiquidityBNB:           bigInt(l.LiquidityBNB),
		LiquidityTokens:        bigInt(l.LiquidityTokens),
		RaisedFundsVesting:     bigInt(l.RaisedFundsVesting),
		RaisedFundsClaimed:     bigInt(l.RaisedFundsClaimed),
		VestingStartTime:       l.VestingStartTime,
		TransfersEnabledAt:     l.TransfersEnabledAt,
		GraduatedAt:            l.GraduatedAt,
		CreatedAt:              l.CreatedAt,
	}
}

func toContributionRow(c repository.Contribution) Contribution {
	return Contribution{
		ID:                c.ID,
		Launch:            c.Launch,
		Contributor:       addr(c.Contributor),
		Amount:            dec(c.Amount),
		ContributionCount: c.ContributionCount,
		Status:            string(c.Status),
		ResolvedAmount:    dec(c.ResolvedAmount),
		Timestamp:         c.Timestamp,
		TxHash:            c.TxHash.Hex(),
	}
}

func (c Contribution) entity() repository.Contribution {
	return repository.Contribution{
		ID:                c.ID,
		Launch:            c.Launch,
		Contributor:       common.HexToAddress(c.Contributor),
		Amount:            bigInt(c.Amount),
		ContributionCount: c.ContributionCount,
		Status:            repository.ContributionStatus(c.Status),
		ResolvedAmount:    bigInt(c.ResolvedAmount),
		Timestamp:         c.Timestamp,
		TxHash:            common.HexToHash(c.TxHash),
	}
}

func toPlatformStatsRow(s repository.PlatformStats) PlatformStats {
	return PlatformStats{
		ID:                   s.ID,
		TotalVolume:          dec(s.TotalVolume),
		TotalFees:            dec(s.TotalFees),
		TotalTrades:          s.TotalTrades,
		TotalLaunches:        s.TotalLaunches,
		TotalProjectRaises:   s.TotalProjectRaises,
		TotalInstantLaunches: s.TotalInstantLaunches,
		TotalGraduated:       s.TotalGraduated,
		TotalRaised:          dec(s.TotalRaised),
		UpdatedAt:            s.UpdatedAt,
	}
}

func (s PlatformStats) entity() repository.PlatformStats {
	return repository.PlatformStats{
		ID:                   s.ID,
		TotalVolume:          bigInt(s.TotalVolume),
		TotalFees:            bigInt(s.TotalFees),
		TotalTrades:          s.TotalTrades,
		TotalLaunches:        s.TotalLaunches,
		TotalProjectRaises:   s.TotalProjectRaises,
		TotalInstantLaunches: s.TotalInstantLaunches,
		TotalGraduated:       s.TotalGraduated,
		TotalRaised:          bigInt(s.TotalRaised),
		UpdatedAt:            s.UpdatedAt,
	}
}

func toDailyStatsRow(s repository.DailyStats) DailyStats {
	return DailyStats{
		ID:         s.ID,
		Day:        s.Day,
		Date:       s.Date,
		Volume:     dec(s.Volume),
		Fees:       dec(s.Fees),
		TradeCount: s.TradeCount,
		Launches:   s.Launches,
	}
}

func (s DailyStats) entity() repository.DailyStats {
	return repository.DailyStats{
		ID:         s.ID,
		Day:        s.Day,
		Date:       s.Date,
		Volume:     bigInt(s.Volume),
		Fees:       bigInt(s.Fees),
		TradeCount: s.TradeCount,
		Launches:   s.Launches,
	}
}
