package cfg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"ytdeck/internal/domain/consts"
	"ytdeck/internal/domain/keys"
	"ytdeck/internal/domain/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadEnvironment prepares viper before any command runs.
//
// An explicit YTDECK_CONFIG_FILE replaces the config lookup in baseDir.
//
// Order of precedence, highest first: flags, YTDECK_* environment (including
// .env files), config file in baseDir, defaults.
func LoadEnvironment(baseDir string) error {
	// .env files never override variables already set in the environment.
	for _, f := range []string{".env", filepath.Join(baseDir, ".env")} {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load env file %q: %w", f, err)
		}
	}

	viper.SetEnvPrefix(consts.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if f := viper.GetString(keys.ConfigFile); f != "" {
		viper.SetConfigFile(f)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(baseDir)
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		logger.Pl.D(1, "No config file in %q, using flags and environment", baseDir)
	} else {
		logger.Pl.I("Loaded config file %q", viper.ConfigFileUsed())
	}
	return nil
}

func setDefaults() {
	viper.SetDefault(keys.Host, consts.DefaultHost)
	viper.SetDefault(keys.Port, consts.DefaultPort)
	viper.SetDefault(keys.ServerURL, fmt.Sprintf("http://%s:%d", consts.DefaultHost, consts.DefaultPort))
	viper.SetDefault(keys.SourceTimeout, consts.DefaultSourceTimeout)
	viper.SetDefault(keys.FeedConcurrency, consts.DefaultFeedConcurrency)
	viper.SetDefault(keys.InnertubeRPS, consts.DefaultInnertubeRPS)
	viper.SetDefault(keys.Region, consts.DefaultRegion)
	viper.SetDefault(keys.Language, consts.DefaultLanguage)
	viper.SetDefault(keys.MetadataCacheTTL, consts.DefaultMetadataCacheTTL)
}

// DBPath returns the configured database path, or fallback.
//
// Read from the environment or config file only, since the database opens before flags are parsed.
func DBPath(fallback string) string {
	if p := strings.TrimSpace(viper.GetString(keys.DBPath)); p != "" {
		return p
	}
	return fallback
}

// MetadataCacheTTL returns the configured metadata cache lifetime.
func MetadataCacheTTL() time.Duration {
	return viper.GetDuration(keys.MetadataCacheTTL)
}
