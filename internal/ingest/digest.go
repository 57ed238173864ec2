package ingest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/synternet/launchpad-indexer/pkg/repository"
)

// StateDigest hashes the canonical JSON encoding of every stored entity.
// Replaying the same event log into an empty store always yields the same digest.
func StateDigest(ctx context.Context, repo repository.Reader) (common.Hash, error) {
	snap, err := repo.Snapshot(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed taking snapshot: %w", err)
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed encoding snapshot: %w", err)
	}
	return crypto.Keccak256Hash(data), nil
}
