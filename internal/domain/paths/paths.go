// Package paths initializes ytdeck's filepaths and directories.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"ytdeck/internal/domain/consts"
)

const (
	dbFile    = "ytdeck.db"
	logFile   = "ytdeck.log"
	cacheFile = "cache.bolt"
)

// File and directory path strings.
var (
	HomeProgDir   string
	DBFilePath    string
	LogFilePath   string
	CacheFilePath string
)

// InitProgFilesDirs initializes necessary program directories and filepaths.
//
// An empty baseDir resolves to ~/.ytdeck.
func InitProgFilesDirs(baseDir string) error {
	if baseDir == "" {
		userHomeDir, err := os.UserHomeDir()
		if err != nil {
			return errors.New("failed to get home directory")
		}
		baseDir = filepath.Join(userHomeDir, consts.ProgramDirName)
	}

	if _, err := os.Stat(baseDir); os.IsNotExist(err) {
		if err := os.MkdirAll(baseDir, consts.PermsHomeProgDir); err != nil {
			return fmt.Errorf("failed to make directories: %w", err)
		}
	}

	HomeProgDir = baseDir
	DBFilePath = filepath.Join(baseDir, dbFile)
	LogFilePath = filepath.Join(baseDir, logFile)
	CacheFilePath = filepath.Join(baseDir, cacheFile)
	return nil
}
