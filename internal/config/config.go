package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Database DatabaseConfig `mapstructure:"database"`
	Routing  RoutingConfig  `mapstructure:"routing"`
	Progress ProgressConfig `mapstructure:"progress"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// CatalogConfig selects where stops and tours come from: "file", "http" or
// "sqlite".
type CatalogConfig struct {
	Source string `mapstructure:"source"`
	Dir    string `mapstructure:"dir"`
	URL    string `mapstructure:"url"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// RoutingConfig holds path provider settings. Provider is "osrm", "straight"
// or "none".
type RoutingConfig struct {
	Provider      string        `mapstructure:"provider"`
	BaseURL       string        `mapstructure:"base_url"`
	Profile       string        `mapstructure:"profile"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	CacheSize     int           `mapstructure:"cache_size"`
}

type ProgressConfig struct {
	PointsPerVisit   int    `mapstructure:"points_per_visit"`
	AchievementsFile string `mapstructure:"achievements_file"`
}

// UIConfig holds the initial values of the settings screen.
type UIConfig struct {
	Language      string `mapstructure:"language"`
	Theme         string `mapstructure:"theme"`
	AutoPlayAudio bool   `mapstructure:"auto_play_audio"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. Env var overrides use prefix AUDIOGUIDE_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("AUDIOGUIDE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "audioguide"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("AUDIOGUIDE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit AUDIOGUIDE_CONFIG must exist and parse
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Defaults returns the built-in configuration, ignoring files and env.
func Defaults() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog.source", "file")
	v.SetDefault("catalog.dir", "data")
	v.SetDefault("catalog.url", "http://localhost:8000/api/v1")
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "audioguide", "audioguide.db"))
	v.SetDefault("routing.provider", "osrm")
	v.SetDefault("routing.base_url", "https://router.project-osrm.org")
	v.SetDefault("routing.profile", "foot")
	v.SetDefault("routing.timeout", "15s")
	v.SetDefault("routing.rate_per_second", 1.0)
	v.SetDefault("routing.cache_size", 64)
	v.SetDefault("progress.points_per_visit", 10)
	v.SetDefault("progress.achievements_file", "")
	v.SetDefault("ui.language", "ru")
	v.SetDefault("ui.theme", "auto")
	v.SetDefault("ui.auto_play_audio", false)
	v.SetDefault("log.file", "audioguide.log")
	v.SetDefault("log.level", "info")
}

// Validate rejects enumerated settings with unknown values.
func (c Config) Validate() error {
	switch c.Catalog.Source {
	case "file", "http", "sqlite":
	default:
		return fmt.Errorf("config: catalog.source %q: want file, http or sqlite", c.Catalog.Source)
	}
	switch c.Routing.Provider {
	case "osrm", "straight", "none":
	default:
		return fmt.Errorf("config: routing.provider %q: want osrm, straight or none", c.Routing.Provider)
	}
	switch c.UI.Language {
	case "ru", "en":
	default:
		return fmt.Errorf("config: ui.language %q: want ru or en", c.UI.Language)
	}
	switch c.UI.Theme {
	case "light", "dark", "auto":
	default:
		return fmt.Errorf("config: ui.theme %q: want light, dark or auto", c.UI.Theme)
	}
	if c.Routing.Timeout < 0 {
		return fmt.Errorf("config: routing.timeout must not be negative")
	}
	return nil
}

// Save writes cfg to the config path, creating the directory if needed.
// Used by `audioguide config init`.
func Save(cfg Config) (string, error) {
	path := os.Getenv("AUDIOGUIDE_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "audioguide", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("catalog.source", cfg.Catalog.Source)
	v.Set("catalog.dir", cfg.Catalog.Dir)
	v.Set("catalog.url", cfg.Catalog.URL)
	v.Set("database.path", cfg.Database.Path)
	v.Set("routing.provider", cfg.Routing.Provider)
	v.Set("routing.base_url", cfg.Routing.BaseURL)
	v.Set("routing.profile", cfg.Routing.Profile)
	v.Set("routing.timeout", cfg.Routing.Timeout.String())
	v.Set("routing.rate_per_second", cfg.Routing.RatePerSecond)
	v.Set("routing.cache_size", cfg.Routing.CacheSize)
	v.Set("progress.points_per_visit", cfg.Progress.PointsPerVisit)
	v.Set("progress.achievements_file", cfg.Progress.AchievementsFile)
	v.Set("ui.language", cfg.UI.Language)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.auto_play_audio", cfg.UI.AutoPlayAudio)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
