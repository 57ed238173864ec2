package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

var (
	ErrDecode       = errors.New("event decode failed")
	ErrUnknownEvent = errors.New("unknown event kind")
)

// Amount is an unsigned integer parameter encoded as a decimal or 0x-prefixed hex string.
type Amount = math.HexOrDecimal256

// Int returns a copy of a as *big.Int. A missing amount is zero.
func Int(a *Amount) *big.Int {
	if a == nil {
		return new(big.Int)
	}
	return new(big.Int).Set((*big.Int)(a))
}

// NewAmount is a convenience constructor mostly used by tests and fixtures.
func NewAmount(v int64) *Amount {
	return (*Amount)(big.NewInt(v))
}

type validator interface {
	validate() error
}

type PoolCreated struct {
	Token                  common.Address `json:"token"`
	Creator                common.Address `json:"creator"`
	InitialLiquidity       *Amount        `json:"initialLiquidity"`
	TradableTokens         *Amount        `json:"tradableTokens"`
	ReservedTokens         *Amount        `json:"reservedTokens"`
	VirtualBnbReserve      *Amount        `json:"virtualBnbReserve"`
	LaunchBlock            *Amount        `json:"launchBlock"`
	GraduationBnbThreshold *Amount        `json:"graduationBnbThreshold"`
}

func (p *PoolCreated) validate() error {
	return check(p.Token,
		requiredAddress("creator", p.Creator),
		required("initialLiquidity", p.InitialLiquidity),
		required("tradableTokens", p.TradableTokens),
		optional("reservedTokens", p.ReservedTokens),
		optional("virtualBnbReserve", p.VirtualBnbReserve),
		optional("launchBlock", p.LaunchBlock),
		optional("graduationBnbThreshold", p.GraduationBnbThreshold),
	)
}

type TokensBought struct {
	Token          common.Address `json:"token"`
	Buyer          common.Address `json:"buyer"`
	BnbAmount      *Amount        `json:"bnbAmount"`
	TokensReceived *Amount        `json:"tokensReceived"`
	CurrentPrice   *Amount        `json:"currentPrice"`
	FeeRate        *Amount        `json:"feeRate"`
}

func (p *TokensBought) validate() error {
	return check(p.Token,
		requiredAddress("buyer", p.Buyer),
		required("bnbAmount", p.BnbAmount),
		required("tokensReceived", p.TokensReceived),
		optional("currentPrice", p.CurrentPrice),
		optional("feeRate", p.FeeRate),
	)
}

type TokensSold struct {
	Token        common.Address `json:"token"`
	Seller       common.Address `json:"seller"`
	TokensAmount *Amount        `json:"tokensAmount"`
	BnbReceived  *Amount        `json:"bnbReceived"`
	CurrentPrice *Amount        `json:"currentPrice"`
	FeeRate      *Amount        `json:"feeRate"`
}

func (p *TokensSold) validate() error {
	return check(p.Token,
		requiredAddress("seller", p.Seller),
		required("tokensAmount", p.TokensAmount),
		required("bnbReceived", p.BnbReceived),
		optional("currentPrice", p.CurrentPrice),
		optional("feeRate", p.FeeRate),
	)
}

type PoolGraduated struct {
	Token             common.Address `json:"token"`
	FinalMarketCap    *Amount        `json:"finalMarketCap"`
	BnbForPancakeSwap *Amount        `json:"bnbForPancakeSwap"`
}

func (p *PoolGraduated) validate() error {
	return check(p.Token, required("finalMarketCap", p.FinalMarketCap), optional("bnbForPancakeSwap", p.BnbForPancakeSwap))
}

type CreatorFeesClaimed struct {
	Token   common.Address `json:"token"`
	Creator common.Address `json:"creator"`
	Amount  *Amount        `json:"amount"`
}

func (p *CreatorFeesClaimed) validate() error {
	return check(p.Token, requiredAddress("creator", p.Creator), required("amount", p.Amount))
}

type LaunchCreated struct {
	Token         common.Address `json:"token"`
	Founder       common.Address `json:"founder"`
	TotalSupply   *Amount        `json:"totalSupply"`
	RaiseTarget   *Amount        `json:"raiseTarget"`
	RaiseMax      *Amount        `json:"raiseMax"`
	RaiseDeadline *Amount        `json:"deadline"`
	FounderTokens *Amount        `json:"founderTokens"`
}

func (p *LaunchCreated) validate() error {
	return check(p.Token,
		requiredAddress("founder", p.Founder),
		required("totalSupply", p.TotalSupply),
		required("raiseTarget", p.RaiseTarget),
		optional("raiseMax", p.RaiseMax),
		optional("deadline", p.RaiseDeadline),
		optional("founderTokens", p.FounderTokens),
	)
}

type InstantLaunchCreated struct {
	Token           common.Address `json:"token"`
	Founder         common.Address `json:"founder"`
	TotalSupply     *Amount        `json:"totalSupply"`
	FounderTokens   *Amount        `json:"founderTokens"`
	LiquidityBNB    *Amount        `json:"liquidityBNB"`
	LiquidityTokens *Amount        `json:"liquidityTokens"`
}

func (p *InstantLaunchCreated) validate() error {
	return check(p.Token,
		requiredAddress("founder", p.Founder),
		required("totalSupply", p.TotalSupply),
		optional("founderTokens", p.FounderTokens),
		optional("liquidityBNB", p.LiquidityBNB),
		optional("liquidityTokens", p.LiquidityTokens),
	)
}

type ContributionMade struct {
	Token       common.Address `json:"token"`
	Contributor common.Address `json:"contributor"`
	Amount      *Amount        `json:"amount"`
}

func (p *ContributionMade) validate() error {
	return check(p.Token, requiredAddress("contributor", p.Contributor), required("amount", p.Amount))
}

type RaiseCompleted struct {
	Token       common.Address `json:"token"`
	TotalRaised *Amount        `json:"totalRaised"`
}

func (p *RaiseCompleted) validate() error {
	return check(p.Token, required("totalRaised", p.TotalRaised))
}

type RaiseFailed struct {
	Token       common.Address `json:"token"`
	TotalRaised *Amount        `json:"totalRaised"`
}

func (p *RaiseFailed) validate() error {
	return check(p.Token, optional("totalRaised", p.TotalRaised))
}

// ContributionClaim covers both ContributorTokensClaimed and RefundClaimed.
type ContributionClaim struct {
	Token       common.Address `json:"token"`
	Contributor common.Address `json:"contributor"`
	Amount      *Amount        `json:"amount"`
}

func (p *ContributionClaim) validate() error {
	return check(p.Token, requiredAddress("contributor", p.Contributor), optional("amount", p.Amount))
}

// FounderClaim covers both FounderTokensClaimed and RaisedFundsClaimed.
type FounderClaim struct {
	Token   common.Address `json:"token"`
	Founder common.Address `json:"founder"`
	Amount  *Amount        `json:"amount"`
}

func (p *FounderClaim) validate() error {
	return check(p.Token, requiredAddress("founder", p.Founder), required("amount", p.Amount))
}

type GraduatedToPancakeSwap struct {
	Token           common.Address `json:"token"`
	LiquidityBNB    *Amount        `json:"liquidityBNB"`
	LiquidityTokens *Amount        `json:"liquidityTokens"`
}

func (p *GraduatedToPancakeSwap) validate() error {
	return check(p.Token, required("liquidityBNB", p.LiquidityBNB), required("liquidityTokens", p.LiquidityTokens))
}

type TransfersEnabled struct {
	Token common.Address `json:"token"`
}

func (p *TransfersEnabled) validate() error {
	return check(p.Token)
}

var payloads = map[EventKind]func() validator{
	EventPoolCreated:              func() validator { return &PoolCreated{} },
	EventTokensBought:             func() validator { return &TokensBought{} },
	EventTokensSold:               func() validator { return &TokensSold{} },
	EventPoolGraduated:            func() validator { return &PoolGraduated{} },
	EventCreatorFeesClaimed:       func() validator { return &CreatorFeesClaimed{} },
	EventLaunchCreated:            func() validator { return &LaunchCreated{} },
	EventInstantLaunchCreated:     func() validator { return &InstantLaunchCreated{} },
	EventContributionMade:         func() validator { return &ContributionMade{} },
	EventRaiseCompleted:           func() validator { return &RaiseCompleted{} },
	EventRaiseFailed:              func() validator { return &RaiseFailed{} },
	EventContributorTokensClaimed: func() validator { return &ContributionClaim{} },
	EventRefundClaimed:            func() validator { return &ContributionClaim{} },
	EventFounderTokensClaimed:     func() validator { return &FounderClaim{} },
	EventRaisedFundsClaimed:       func() validator { return &FounderClaim{} },
	EventGraduatedToPancakeSwap:   func() validator { return &GraduatedToPancakeSwap{} },
	EventTransfersEnabled:         func() validator { return &TransfersEnabled{} },
}

// Known reports whether kind has a payload definition.
func Known(kind EventKind) bool {
	_, ok := payloads[kind]
	return ok
}

// Decode parses the event parameters into the typed payload for its kind.
// The returned value is always a pointer to one of the payload structs above.
func (e *Event) Decode() (any, error) {
	newPayload, ok := payloads[e.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q at %s", ErrUnknownEvent, e.Kind, e.Position())
	}
	payload := newPayload()
	if len(e.Params) == 0 {
		return nil, fmt.Errorf("%w: %s at %s has no params", ErrDecode, e.Kind, e.Position())
	}
	if err := json.Unmarshal(e.Params, payload); err != nil {
		return nil, fmt.Errorf("%w: %s at %s: %v", ErrDecode, e.Kind, e.Position(), err)
	}
	if err := payload.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s at %s: %v", ErrDecode, e.Kind, e.Position(), err)
	}
	return payload, nil
}

func required(name string, a *Amount) error {
	if a == nil {
		return fmt.Errorf("missing %s", name)
	}
	return optional(name, a)
}

// optional accepts a missing amount but never a negative one.
func optional(name string, a *Amount) error {
	if a != nil && (*big.Int)(a).Sign() < 0 {
		return fmt.Errorf("negative %s", name)
	}
	return nil
}

func requiredAddress(name string, addr common.Address) error {
	if addr == (common.Address{}) {
		return fmt.Errorf("missing %s", name)
	}
	return nil
}

func check(token common.Address, errs ...error) error {
	if token == (common.Address{}) {
		errs = append(errs, errors.New("missing token"))
	}
	return errors.Join(errs...)
}
