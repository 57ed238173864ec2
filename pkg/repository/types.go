package repository

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type LaunchType string

const (
	LaunchProjectRaise  LaunchType = "PROJECT_RAISE"
	LaunchInstantLaunch LaunchType = "INSTANT_LAUNCH"
)

type ContributionStatus string

const (
	ContributionPending       ContributionStatus = "PENDING"
	ContributionClaimedTokens ContributionStatus = "CLAIMED_TOKENS"
	ContributionRefunded      ContributionStatus = "REFUNDED"
)

type EntityKind string

const (
	KindPool          EntityKind = "pool"
	KindTrade         EntityKind = "trade"
	KindTokenHolder   EntityKind = "holder"
	KindCreatorFees   EntityKind = "creator_fees"
	KindLaunch        EntityKind = "launch"
	KindContribution  EntityKind = "contribution"
	KindPlatformStats EntityKind = "platform_stats"
	KindDailyStats    EntityKind = "daily_stats"
)

var EntityKinds = []EntityKind{
	KindPool, KindTrade, KindTokenHolder, KindCreatorFees,
	KindLaunch, KindContribution, KindPlatformStats, KindDailyStats,
}

// Pool is the bonding-curve state of a single token. Graduated pools are never active.
type Pool struct {
	ID                  string         `json:"id"`
	Token               common.Address `json:"token"`
	Creator             common.Address `json:"creator"`
	BnbReserve          *big.Int       `json:"bnbReserve"`
	TokenReserve        *big.Int       `json:"tokenReserve"`
	ReservedTokens      *big.Int       `json:"reservedTokens"`
	VirtualBnbReserve   *big.Int       `json:"virtualBnbReserve"`
	CurrentPrice        *big.Int       `json:"currentPrice"`
	MarketCap           *big.Int       `json:"marketCap"`
	GraduationMarketCap *big.Int       `json:"graduationMarketCap"`
	GraduationThreshold *big.Int       `json:"graduationThreshold"`
	GraduationBnb       *big.Int       `json:"graduationBnb"`
	LaunchBlock         *big.Int       `json:"launchBlock"`
	Active              bool           `json:"active"`
	Graduated           bool           `json:"graduated"`
	TotalVolume         *big.Int       `json:"totalVolume"`
	TotalFees           *big.Int       `json:"totalFees"`
	TotalBuys           uint64         `json:"totalBuys"`
	TotalSells          uint64         `json:"totalSells"`
	CreatedAt           uint64         `json:"createdAt"`
	GraduatedAt         uint64         `json:"graduatedAt"`
	UpdatedBlock        uint64         `json:"updatedBlock"`
}

// Trade is immutable once stored.
type Trade struct {
	ID          string         `json:"id"`
	Pool        string         `json:"pool"`
	Trader      common.Address `json:"trader"`
	IsBuy       bool           `json:"isBuy"`
	BnbAmount   *big.Int       `json:"bnbAmount"`
	TokenAmount *big.Int       `json:"tokenAmount"`
	Price       *big.Int       `json:"price"`
	FeeRate     *big.Int       `json:"feeRate"`
	TotalFee    *big.Int       `json:"totalFee"`
	Timestamp   uint64         `json:"timestamp"`
	Block       uint64         `json:"block"`
	TxHash      common.Hash    `json:"txHash"`
	LogIndex    uint64         `json:"logIndex"`
}

// TokenHolder keeps Balance == TotalBought - TotalSold.
type TokenHolder struct {
	ID                    string         `json:"id"`
	Token                 common.Address `json:"token"`
	Holder                common.Address `json:"holder"`
	Balance               *big.Int       `json:"balance"`
	TotalBought           *big.Int       `json:"totalBought"`
	TotalSold             *big.Int       `json:"totalSold"`
	BuyCount              uint64         `json:"buyCount"`
	SellCount             uint64         `json:"sellCount"`
	FirstBuyTimestamp     uint64         `json:"firstBuyTimestamp"`
	LastActivityTimestamp uint64         `json:"lastActivityTimestamp"`
}

type CreatorFees struct {
	ID              string         `json:"id"`
	Token           common.Address `json:"token"`
	Creator         common.Address `json:"creator"`
	AccumulatedFees *big.Int       `json:"accumulatedFees"`
	TotalClaimed    *big.Int       `json:"totalClaimed"`
	LastClaimTime   uint64         `json:"lastClaimTime"`
	ClaimCount      uint64         `json:"claimCount"`
}

type Launch struct {
	ID                     string         `json:"id"`
	Token                  common.Address `json:"token"`
	Founder                common.Address `json:"founder"`
	LaunchType             LaunchType     `json:"launchType"`
	TotalSupply            *big.Int       `json:"totalSupply"`
	RaiseTarget            *big.Int       `json:"raiseTarget"`
	RaiseMax               *big.Int       `json:"raiseMax"`
	RaiseDeadline          uint64         `json:"raiseDeadline"`
	TotalRaised            *big.Int       `json:"totalRaised"`
	FounderTokens          *big.Int       `json:"founderTokens"`
	ContributorCount       uint64         `json:"contributorCount"`
	RaiseCompleted         bool           `json:"raiseCompleted"`
	RaiseFailed            bool           `json:"raiseFailed"`
	LiquidityAdded         bool           `json:"liquidityAdded"`
	GraduatedToPancakeSwap bool           `json:"graduatedToPancakeSwap"`
	BurnLP                 bool           `json:"burnLP"`
	TransfersEnabled       bool           `json:"transfersEnabled"`
	FounderTokensClaimed   *big.Int       `json:"founderTokensClaimed"`
	LiquidityBNB           *big.Int       `json:"liquidityBNB"`
	LiquidityTokens        *big.Int       `json:"liquidityTokens"`
	RaisedFundsVesting     *big.Int       `json:"raisedFundsVesting"`
	RaisedFundsClaimed     *big.Int       `json:"raisedFundsClaimed"`
	VestingStartTime       uint64         `json:"vestingStartTime"`
	TransfersEnabledAt     uint64         `json:"transfersEnabledAt"`
	GraduatedAt            uint64         `json:"graduatedAt"`
	CreatedAt              uint64         `json:"createdAt"`
}

// Raising reports whether the launch still accepts contributions.
func (l Launch) Raising() bool {
	return l.LaunchType == LaunchProjectRaise && !l.RaiseCompleted && !l.RaiseFailed
}

type Contribution struct {
	ID                string             `json:"id"`
	Launch            string             `json:"launch"`
	Contributor       common.Address     `json:"contributor"`
	Amount            *big.Int           `json:"amount"`
	ContributionCount uint64             `json:"contributionCount"`
	Status            ContributionStatus `json:"status"`
	ResolvedAmount    *big.Int           `json:"resolvedAmount"`
	Timestamp         uint64             `json:"timestamp"`
	TxHash            common.Hash        `json:"txHash"`
}

// Claimed is true once the contribution was resolved by a token claim or a refund.
func (c Contribution) Claimed() bool {
	return c.Status != "" && c.Status != ContributionPending
}

type PlatformStats struct {
	ID                   string   `json:"id"`
	TotalVolume          *big.Int `json:"totalVolume"`
	TotalFees            *big.Int `json:"totalFees"`
	TotalTrades          uint64   `json:"totalTrades"`
	TotalLaunches        uint64   `json:"totalLaunches"`
	TotalProjectRaises   uint64   `json:"totalProjectRaises"`
	TotalInstantLaunches uint64   `json:"totalInstantLaunches"`
	TotalGraduated       uint64   `json:"totalGraduated"`
	TotalRaised          *big.Int `json:"totalRaised"`
	UpdatedAt            uint64   `json:"updatedAt"`
}

type DailyStats struct {
	ID         string   `json:"id"`
	Day        int64    `json:"day"`
	Date       uint64   `json:"date"`
	Volume     *big.Int `json:"volume"`
	Fees       *big.Int `json:"fees"`
	TradeCount uint64   `json:"tradeCount"`
	Launches   uint64   `json:"launches"`
}

// Checkpoint marks the last event whose writes were committed.
type Checkpoint struct {
	Block     uint64      `json:"block"`
	LogIndex  uint64      `json:"logIndex"`
	TxHash    common.Hash `json:"txHash"`
	UpdatedAt uint64      `json:"updatedAt"`
}

// Snapshot is the full derived state ordered by entity ID.
type Snapshot struct {
	Pools         []Pool          `json:"pools"`
	Trades        []Trade         `json:"trades"`
	TokenHolders  []TokenHolder   `json:"tokenHolders"`
	CreatorFees   []CreatorFees   `json:"creatorFees"`
	Launches      []Launch        `json:"launches"`
	Contributions []Contribution  `json:"contributions"`
	PlatformStats []PlatformStats `json:"platformStats"`
	DailyStats    []DailyStats    `json:"dailyStats"`
}
