package main

import (
	"fmt"
	"time"
	"ytdeck/internal/cfg"
	"ytdeck/internal/database"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/domain/paths"
	"ytdeck/internal/metacache"
	"ytdeck/internal/repo"
)

// application holds what main opened and must close.
type application struct {
	db      *database.Database
	runtime *cfg.Runtime
}

// initializeApplication opens the database and metadata cache for this run.
func initializeApplication() (*application, error) {
	dbPath := cfg.DBPath(paths.DBFilePath)
	logger.Pl.D(1, "Database: %s, log file: %s", dbPath, paths.LogFilePath)

	db, err := database.InitDB(dbPath)
	if err != nil {
		return nil, err
	}

	cache, err := metacache.Open(paths.CacheFilePath, cfg.MetadataCacheTTL())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open metadata cache: %w", err)
	}

	return &application{
		db: db,
		runtime: &cfg.Runtime{
			Store: repo.InitStores(db.DB),
			Cache: cache,
		},
	}, nil
}

// cleanup closes resources and recovers a panic so it is logged.
func (a *application) cleanup(startTime time.Time) {
	if r := recover(); r != nil {
		logger.Pl.E("Panic occurred: %v", r)
	}
	if err := a.runtime.Cache.Close(); err != nil {
		logger.Pl.E("Failed to close metadata cache: %v", err)
	}
	if err := a.db.Close(); err != nil {
		logger.Pl.E("Failed to close database: %v", err)
	}
	logger.Pl.D(1, "Ran for %v", time.Since(startTime).Round(time.Millisecond))
}
