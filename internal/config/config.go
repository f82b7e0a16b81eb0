// Package config handles configuration loading for Sinister Snare.
// It supports a YAML config file with SNARE_* environment overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Feed    FeedConfig    `mapstructure:"feed"    yaml:"feed"`
	Refresh RefreshConfig `mapstructure:"refresh" yaml:"refresh"`
	DB      DBConfig      `mapstructure:"db"      yaml:"db"`

	// TerminalFragments optionally overrides the built-in terminal→system
	// fragment lists (lowercased substrings keyed by system name). The
	// lists are data, not code: edits here take effect without a release.
	TerminalFragments map[string][]string `mapstructure:"terminal_fragments" yaml:"terminal_fragments"`
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// FeedConfig holds upstream commodity feed settings.
type FeedConfig struct {
	BaseURL        string `mapstructure:"base_url"        yaml:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	CacheTTL       int    `mapstructure:"cache_ttl"       yaml:"cache_ttl"` // seconds
}

// RefreshConfig holds scoring and background tracking thresholds.
type RefreshConfig struct {
	MinPiracyScore   float64 `mapstructure:"min_piracy_score"   yaml:"min_piracy_score"`   // priority target default threshold
	AlertRatingFloor float64 `mapstructure:"alert_rating_floor" yaml:"alert_rating_floor"` // background HIGH_VALUE rating floor
	AlertProfitFloor float64 `mapstructure:"alert_profit_floor" yaml:"alert_profit_floor"` // background HIGH_VALUE profit floor
	TrackingInterval int     `mapstructure:"tracking_interval"  yaml:"tracking_interval"`  // seconds between background passes
}

// DBConfig holds persistence settings.
type DBConfig struct {
	Path string `mapstructure:"path" yaml:"path"` // empty = ./snare.db
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        8400,
			CORSOrigins: []string{"*"},
		},
		Feed: FeedConfig{
			BaseURL:        "https://api.uexcorp.space/2.0",
			TimeoutSeconds: 30,
			CacheTTL:       60,
		},
		Refresh: RefreshConfig{
			MinPiracyScore:   60,
			AlertRatingFloor: 85,
			AlertProfitFloor: 3_000_000,
			TrackingInterval: 300,
		},
	}
}

// Load reads configuration from ./config.yaml (if present) with environment
// overrides. A missing file is not an error; defaults apply.
func Load() (*Config, error) {
	return load("")
}

// LoadFromFile reads configuration from an explicit path.
func LoadFromFile(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SNARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("api.host", d.API.Host)
	v.SetDefault("api.port", d.API.Port)
	v.SetDefault("api.cors_origins", d.API.CORSOrigins)
	v.SetDefault("feed.base_url", d.Feed.BaseURL)
	v.SetDefault("feed.timeout_seconds", d.Feed.TimeoutSeconds)
	v.SetDefault("feed.cache_ttl", d.Feed.CacheTTL)
	v.SetDefault("refresh.min_piracy_score", d.Refresh.MinPiracyScore)
	v.SetDefault("refresh.alert_rating_floor", d.Refresh.AlertRatingFloor)
	v.SetDefault("refresh.alert_profit_floor", d.Refresh.AlertProfitFloor)
	v.SetDefault("refresh.tracking_interval", d.Refresh.TrackingInterval)
	v.SetDefault("db.path", "")
}
