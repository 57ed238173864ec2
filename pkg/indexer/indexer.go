package indexer

import (
	"context"

	"github.com/synternet/launchpad-indexer/pkg/repository"
	"github.com/synternet/launchpad-indexer/pkg/types"
)

// Outcome describes what happened to a single event in the apply stage.
type Outcome int

const (
	// Applied means the event's writes and the checkpoint were committed.
	Applied Outcome = iota
	// Skipped means the event was at or before the checkpoint and nothing was written.
	Skipped
	// Rejected means the event failed a data-quality check. The checkpoint still advanced.
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Skipped:
		return "skipped"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

type Indexer interface {
	// Apply runs the handler registered for the event kind and persists the
	// checkpoint in the same transaction. Events must be supplied in chain order.
	//
	// Skipped and Rejected come with the error describing why. With any other
	// error nothing was committed and the event may be retried.
	Apply(ctx context.Context, event *types.Event) (Outcome, error)

	// Checkpoint returns the position of the last committed event.
	Checkpoint(ctx context.Context) (repository.Lookup[types.Position], error)

	// GetStatus used for telemetry and will return a map of status variables
	GetStatus() map[string]any
}
