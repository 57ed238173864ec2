package sqlite

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens an SQL database.
// In case in-memory DB is needed(e.g. testing), ":memory:" can be used instead of a database filename.
// The pool is limited to a single connection so an in-memory database is not split
// across connections and transactions never contend for the write lock.
func New(dbname string) (*gorm.DB, error) {
	dbCon, err := gorm.Open(sqlite.Open(dbname), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})

	if err != nil {
		return nil, err
	}

	db, err := dbCon.DB()
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	return dbCon, nil
}
