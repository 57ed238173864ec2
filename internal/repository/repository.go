package repository

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/synternet/launchpad-indexer/pkg/repository"
)

var _ repository.Repository = (*Repository)(nil)

type Repository struct {
	logger *slog.Logger
	dbCon  *gorm.DB
}

func New(db *gorm.DB, logger *slog.Logger) (*Repository, error) {
	ret := &Repository{
		logger: logger,
		dbCon:  db,
	}

	// Create tables for data structures (if table already exists it will not be overwritten)
	tables := []struct {
		name  string
		model any
	}{
		{"Pool", &Pool{}},
		{"Trade", &Trade{}},
		{"TokenHolder", &TokenHolder{}},
		{"CreatorFees", &CreatorFees{}},
		{"Launch", &Launch{}},
		{"Contribution", &Contribution{}},
		{"PlatformStats", &PlatformStats{}},
		{"DailyStats", &DailyStats{}},
		{"Checkpoint", &Checkpoint{}},
	}
	for _, t := range tables {
		if err := db.AutoMigrate(t.model); err != nil {
			return nil, fmt.Errorf("%s table migrate error: %w", t.name, err)
		}
	}
	return ret, nil
}

// Transaction runs fn against a repository bound to a single gorm transaction.
// Returning an error from fn rolls back every write made through tx.
func (r *Repository) Transaction(ctx context.Context, fn func(tx repository.Repository) error) error {
	return r.dbCon.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{
			logger: r.logger,
			dbCon:  tx,
		})
	})
}

func (r *Repository) Close() error {
	db, err := r.dbCon.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
