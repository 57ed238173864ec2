package types

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

type EventKind string

const (
	EventPoolCreated              EventKind = "PoolCreated"
	EventTokensBought             EventKind = "TokensBought"
	EventTokensSold               EventKind = "TokensSold"
	EventPoolGraduated            EventKind = "PoolGraduated"
	EventCreatorFeesClaimed       EventKind = "CreatorFeesClaimed"
	EventLaunchCreated            EventKind = "LaunchCreated"
	EventInstantLaunchCreated     EventKind = "InstantLaunchCreated"
	EventContributionMade         EventKind = "ContributionMade"
	EventRaiseCompleted           EventKind = "RaiseCompleted"
	EventRaiseFailed              EventKind = "RaiseFailed"
	EventContributorTokensClaimed EventKind = "ContributorTokensClaimed"
	EventRefundClaimed            EventKind = "RefundClaimed"
	EventFounderTokensClaimed     EventKind = "FounderTokensClaimed"
	EventRaisedFundsClaimed       EventKind = "RaisedFundsClaimed"
	EventGraduatedToPancakeSwap   EventKind = "GraduatedToPancakeSwap"
	EventTransfersEnabled         EventKind = "TransfersEnabled"
)

// Position identifies an event inside the canonical chain order.
type Position struct {
	Block    uint64 `json:"block_number"`
	LogIndex uint64 `json:"log_index"`
}

// Before reports whether p is strictly earlier than o.
func (p Position) Before(o Position) bool {
	if p.Block != o.Block {
		return p.Block < o.Block
	}
	return p.LogIndex < o.LogIndex
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Block, p.LogIndex)
}

// Event is a decoded on-chain log as delivered by an event source.
// Params stay raw until Decode is called by the apply stage.
type Event struct {
	Kind      EventKind       `json:"kind"`
	Contract  common.Address  `json:"contract"`
	TxHash    common.Hash     `json:"tx_hash"`
	LogIndex  uint64          `json:"log_index"`
	Block     uint64          `json:"block_number"`
	Timestamp uint64          `json:"block_timestamp"`
	Params    json.RawMessage `json:"params"`
}

func (e *Event) Position() Position {
	return Position{Block: e.Block, LogIndex: e.LogIndex}
}

// ParseEvent unmarshals a single JSON envelope.
func ParseEvent(data []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if ev.Kind == "" {
		return nil, fmt.Errorf("%w: missing event kind at %s", ErrDecode, ev.Position())
	}
	return &ev, nil
}
