package repository

import (
	"context"
	"errors"
)

// ErrDuplicate is returned when an append-only entity already exists.
var ErrDuplicate = errors.New("entity already exists")

type Reader interface {
	Pool(ctx context.Context, id string) (Lookup[Pool], error)
	Trade(ctx context.Context, id string) (Lookup[Trade], error)
	TokenHolder(ctx context.Context, id string) (Lookup[TokenHolder], error)
	CreatorFees(ctx context.Context, id string) (Lookup[CreatorFees], error)
	Launch(ctx context.Context, id string) (Lookup[Launch], error)
	Contribution(ctx context.Context, id string) (Lookup[Contribution], error)
	PlatformStats(ctx context.Context, id string) (Lookup[PlatformStats], error)
	DailyStats(ctx context.Context, id string) (Lookup[DailyStats], error)
	Checkpoint(ctx context.Context) (Lookup[Checkpoint], error)

	// Entity loads any entity kind by ID for the generic query surface.
	Entity(ctx context.Context, kind EntityKind, id string) (Lookup[any], error)

	// Trades returns the most recent trades of a pool, newest first.
	Trades(ctx context.Context, pool string, limit int) ([]Trade, error)
	// TokenHolders returns holders of a token ordered by ID.
	TokenHolders(ctx context.Context, token string, limit int) ([]TokenHolder, error)
	// Contributions returns all contributions of a launch ordered by ID.
	Contributions(ctx context.Context, launch string) ([]Contribution, error)
	// DailyStatsRange returns day buckets in [fromDay, toDay] in ascending order.
	DailyStatsRange(ctx context.Context, fromDay, toDay int64) ([]DailyStats, error)

	// Snapshot returns every stored entity ordered by ID.
	Snapshot(ctx context.Context) (Snapshot, error)
}

// Writer saves full entity values. Save* calls replace the stored entity,
// except SaveTrade which only inserts and returns ErrDuplicate otherwise.
type Writer interface {
	SavePool(ctx context.Context, pool Pool) error
	SaveTrade(ctx context.Context, trade Trade) error
	SaveTokenHolder(ctx context.Context, holder TokenHolder) error
	SaveCreatorFees(ctx context.Context, fees CreatorFees) error
	SaveLaunch(ctx context.Context, launch Launch) error
	SaveContribution(ctx context.Context, contribution Contribution) error
	SavePlatformStats(ctx context.Context, stats PlatformStats) error
	SaveDailyStats(ctx context.Context, stats DailyStats) error
	SaveCheckpoint(ctx context.Context, checkpoint Checkpoint) error
}

type Repository interface {
	Reader
	Writer

	// Transaction runs fn with a repository bound to a single database transaction.
	// All writes made through it are committed together or not at all.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	Close() error
}
