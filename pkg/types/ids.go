package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// PlatformStatsID is the key of the PlatformStats singleton.
	PlatformStatsID = "platform"
	// CheckpointID is the key of the ingestion checkpoint row.
	CheckpointID = "checkpoint"

	SecondsPerDay = 86400
)

// Address renders addr as lowercase hex so IDs do not depend on checksum casing.
func Address(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}

func PoolID(token common.Address) string {
	return Address(token)
}

func LaunchID(token common.Address) string {
	return Address(token)
}

func TradeID(txHash common.Hash, logIndex uint64) string {
	return fmt.Sprintf("%s-%d", txHash.Hex(), logIndex)
}

func HolderID(token, holder common.Address) string {
	return pairID(token, holder)
}

func CreatorFeesID(token, creator common.Address) string {
	return pairID(token, creator)
}

func ContributionID(launch, contributor common.Address) string {
	return pairID(launch, contributor)
}

// DayBucket returns floor(timestamp / 86400).
func DayBucket(timestamp uint64) int64 {
	return int64(timestamp / SecondsPerDay)
}

func DayID(timestamp uint64) string {
	return strconv.FormatInt(DayBucket(timestamp), 10)
}

func pairID(a, b common.Address) string {
	return Address(a) + "-" + Address(b)
}
