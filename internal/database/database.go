// Package database sets up/opens the program database.
package database

import (
	"database/sql"
	"fmt"
	"ytdeck/internal/domain/consts"
	"ytdeck/internal/domain/logger"

	// Package sqlite3 provides interface to SQLite3 databases.
	_ "github.com/mattn/go-sqlite3"
)

const (
	dbDriver = "sqlite3"
)

// Database holds the database instance for ytdeck.
type Database struct {
	DB *sql.DB
}

// InitDB opens (or creates) the database at path and ensures all tables exist.
func InitDB(path string) (d *Database, err error) {
	d = new(Database)

	// Pragmas go in the DSN so every pooled connection gets them.
	dsn := fmt.Sprintf(
		"file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		path, consts.DatabaseBusyTimeoutMS,
	)
	d.DB, err = sql.Open(dbDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at path %q: %w", path, err)
	}
	if err := d.DB.Ping(); err != nil {
		d.DB.Close()
		return nil, fmt.Errorf("failed to connect to database at path %q: %w", path, err)
	}

	if err := d.initTables(); err != nil {
		d.DB.Close()
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}
	return d, nil
}

// Close closes the underlying database handle.
func (d *Database) Close() error {
	return d.DB.Close()
}

// initTables initializes the SQL tables.
func (d *Database) initTables() (err error) {
	tx, err := d.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Pl.E("Panic rollback failed for table creation: %v", rbErr)
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Pl.E("transaction rollback failed after original error %v: %v", err, rbErr)
			}
		}
	}()

	for _, initFn := range []func(*sql.Tx) error{
		initSubscriptionsTable,
		initPlaylistsTable,
		initPlaylistItemsTable,
		initWatchHistoryTable,
		initSettingsTable,
		initHiddenChannelsTable,
		initHiddenKeywordsTable,
	} {
		if err = initFn(tx); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
