package repository

import (
	"github.com/shopspring/decimal"
)

// Row types mirror pkg/repository entities. Quantities are stored as text decimals
// so no backend coerces them into floating point.

type Pool struct {
	ID                  string          `gorm:"primaryKey;size:42"`
	Token               string          `gorm:"size:42"`
	Creator             string          `gorm:"size:42;index:idx_pool_creator"`
	BnbReserve          decimal.Decimal `gorm:"type:text"`
	TokenReserve        decimal.Decimal `gorm:"type:text"`
	ReservedTokens      decimal.Decimal `gorm:"type:text"`
	VirtualBnbReserve   decimal.Decimal `gorm:"type:text"`
	CurrentPrice        decimal.Decimal `gorm:"type:text"`
	MarketCap           decimal.Decimal `gorm:"type:text"`
	GraduationMarketCap decimal.Decimal `gorm:"type:text"`
	GraduationThreshold decimal.Decimal `gorm:"type:text"`
	GraduationBnb       decimal.Decimal `gorm:"type:text"`
	LaunchBlock         decimal.Decimal `gorm:"type:text"`
	Active              bool
	Graduated           bool
	TotalVolume         decimal.Decimal `gorm:"type:text"`
	TotalFees           decimal.Decimal `gorm:"type:text"`
	TotalBuys           uint64
	TotalSells          uint64
	CreatedAt           uint64 `gorm:"autoCreateTime:false"`
	GraduatedAt         uint64
	UpdatedBlock        uint64
}

func (Pool) TableName() string { return "pools" }

type Trade struct {
	ID          string          `gorm:"primaryKey;size:90"`
	Pool        string          `gorm:"size:42;index:idx_trade_pool"`
	Trader      string          `gorm:"size:42;index:idx_trade_trader"`
	IsBuy       bool
	BnbAmount   decimal.Decimal `gorm:"type:text"`
	TokenAmount decimal.Decimal `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:text"`
	FeeRate     decimal.Decimal `gorm:"type:text"`
	TotalFee    decimal.Decimal `gorm:"type:text"`
	Timestamp   uint64
	Block       uint64 `gorm:"index:idx_trade_position"`
	TxHash      string `gorm:"size:66"`
	LogIndex    uint64 `gorm:"index:idx_trade_position"`
}

func (Trade) TableName() string { return "trades" }

type TokenHolder struct {
	ID                    string          `gorm:"primaryKey;size:90"`
	Token                 string          `gorm:"size:42;index:idx_holder_token"`
	Holder                string          `gorm:"size:42"`
	Balance               decimal.Decimal `gorm:"type:text"`
	TotalBought           decimal.Decimal `gorm:"type:text"`
	TotalSold             decimal.Decimal `gorm:"type:text"`
	BuyCount              uint64
	SellCount             uint64
	FirstBuyTimestamp     uint64
	LastActivityTimestamp uint64
}

func (TokenHolder) TableName() string { return "token_holders" }

type CreatorFees struct {
	ID              string          `gorm:"primaryKey;size:90"`
	Token           string          `gorm:"size:42"`
	Creator         string          `gorm:"size:42"`
	AccumulatedFees decimal.Decimal `gorm:"type:text"`
	TotalClaimed    decimal.Decimal `gorm:"type:text"`
	LastClaimTime   uint64
	ClaimCount      uint64
}

func (CreatorFees) TableName() string { return "creator_fees" }

type Launch struct {
	ID                     string          `gorm:"primaryKey;size:42"`
	Token                  string          `gorm:"size:42"`
	Founder                string          `gorm:"size:42;index:idx_launch_founder"`
	LaunchType             string          `gorm:"size:16"`
	TotalSupply            decimal.Decimal `gorm:"type:text"`
	RaiseTarget            decimal.Decimal `gorm:"type:text"`
	RaiseMax               decimal.Decimal `gorm:"type:text"`
	RaiseDeadline          uint64
	TotalRaised            decimal.Decimal `gorm:"type:text"`
	FounderTokens          decimal.Decimal `gorm:"type:text"`
	ContributorCount       uint64
	RaiseCompleted         bool
	RaiseFailed            bool
	LiquidityAdded         bool
	GraduatedToPancakeSwap bool
	BurnLP                 bool `gorm:"column:burn_lp"`
	TransfersEnabled       bool
	FounderTokensClaimed   decimal.Decimal `gorm:"type:text"`
	LiquidityBNB           decimal.Decimal `gorm:"type:text;column:liquidity_bnb"`
	LiquidityTokens        decimal.Decimal `gorm:"type:text"`
	RaisedFundsVesting     decimal.Decimal `gorm:"type:text"`
	RaisedFundsClaimed     decimal.Decimal `gorm:"type:text"`
	VestingStartTime       uint64
	TransfersEnabledAt     uint64
	GraduatedAt            uint64
	CreatedAt              uint64 `gorm:"autoCreateTime:false"`
}

func (Launch) TableName() string { return "launches" }

type Contribution struct {
	ID                string          `gorm:"primaryKey;size:90"`
	Launch            string          `gorm:"size:42;index:idx_contribution_launch"`
	Contributor       string          `gorm:"size:42"`
	Amount            decimal.Decimal `gorm:"type:text"`
	ContributionCount uint64
	Status            string          `gorm:"size:16"`
	ResolvedAmount    decimal.Decimal `gorm:"type:text"`
	Timestamp         uint64
	TxHash            string `gorm:"size:66"`
}

func (Contribution) TableName() string { return "contributions" }

type PlatformStats struct {
	ID                   string          `gorm:"primaryKey;size:16"`
	TotalVolume          decimal.Decimal `gorm:"type:text"`
	TotalFees            decimal.Decimal `gorm:"type:text"`
	TotalTrades          uint64
	TotalLaunches        uint64
	TotalProjectRaises   uint64
	TotalInstantLaunches uint64
	TotalGraduated       uint64
	TotalRaised          decimal.Decimal `gorm:"type:text"`
	UpdatedAt            uint64          `gorm:"autoUpdateTime:false"`
}

func (PlatformStats) TableName() string { return "platform_stats" }

type DailyStats struct {
	ID         string `gorm:"primaryKey;size:16"`
	Day        int64  `gorm:"index:idx_daily_day,unique"`
	Date       uint64
	Volume     decimal.Decimal `gorm:"type:text"`
	Fees       decimal.Decimal `gorm:"type:text"`
	TradeCount uint64
	Launches   uint64
}

func (DailyStats) TableName() string { return "daily_stats" }

type Checkpoint struct {
	ID        string `gorm:"primaryKey;size:16"`
	Block     uint64
	LogIndex  uint64
	TxHash    string `gorm:"size:66"`
	UpdatedAt uint64 `gorm:"autoUpdateTime:false"`
}

func (Checkpoint) TableName() string { return "checkpoints" }
