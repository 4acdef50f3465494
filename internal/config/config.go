package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config collects every tunable of the prediction tools. Values come from a
// hooppickem.env file in the working directory or the environment, with
// environment taking precedence.
type Config struct {
	// Platform
	LeagueID string `mapstructure:"LEAGUE_ID"`
	TeamID   string `mapstructure:"TEAM_ID"`

	// Simulation
	DailyCap        int    `mapstructure:"DAILY_CAP"`
	Ordering        string `mapstructure:"ORDERING"` // "roster" or "starters"
	Timezone        string `mapstructure:"TIMEZONE"`
	Workers         int    `mapstructure:"WORKERS"`
	InjuryOverrides string `mapstructure:"INJURY_OVERRIDES"` // "Status=0.5,..."

	// Data sources
	GCPProject    string `mapstructure:"GCP_PROJECT"`
	SeasonStatsXL string `mapstructure:"SEASON_STATS_XLSX"`

	// Cache
	CacheBackend  string        `mapstructure:"CACHE_BACKEND"` // "memory", "redis", "firestore", "none"
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`

	// Background refresh
	RefreshInterval time.Duration `mapstructure:"REFRESH_INTERVAL"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
}

// Load reads configuration. A missing config file is not an error; every
// field has a default.
func Load() (*Config, error) {
	viper.SetConfigName("hooppickem")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/hooppickem")

	viper.SetDefault("LEAGUE_ID", "")
	viper.SetDefault("TEAM_ID", "")
	viper.SetDefault("DAILY_CAP", 10)
	viper.SetDefault("ORDERING", "roster")
	viper.SetDefault("TIMEZONE", "America/New_York")
	viper.SetDefault("WORKERS", 4)
	viper.SetDefault("INJURY_OVERRIDES", "")
	viper.SetDefault("GCP_PROJECT", "")
	viper.SetDefault("SEASON_STATS_XLSX", "")
	viper.SetDefault("CACHE_BACKEND", "memory")
	viper.SetDefault("CACHE_TTL", "15m")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REFRESH_INTERVAL", "30m")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("Load: error reading config file: %w", err)
		}
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("Load: unable to decode config: %w", err)
	}
	return &c, nil
}

// ParseInjuryOverrides decodes the INJURY_OVERRIDES string into status to
// play-probability pairs. The format is "Status=prob" entries separated by
// commas, e.g. "Questionable=0.5,DTD=0.7". Malformed entries are reported,
// not skipped.
func (c *Config) ParseInjuryOverrides() (map[string]float64, error) {
	if c.InjuryOverrides == "" {
		return nil, nil
	}
	out := make(map[string]float64)
	for _, entry := range strings.Split(c.InjuryOverrides, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("ParseInjuryOverrides: malformed entry %q", entry)
		}
		var prob float64
		if _, err := fmt.Sscanf(parts[1], "%f", &prob); err != nil {
			return nil, fmt.Errorf("ParseInjuryOverrides: bad probability in %q: %v", entry, err)
		}
		if prob < 0 || prob > 1 {
			return nil, fmt.Errorf("ParseInjuryOverrides: probability %f out of range in %q", prob, entry)
		}
		out[parts[0]] = prob
	}
	return out, nil
}
