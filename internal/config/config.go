// Package config loads application configuration and wires the global
// logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/revenue-map/internal/allocate"
)

// Config holds the full application configuration.
type Config struct {
	Anchors   allocate.Anchors `yaml:"anchors" mapstructure:"anchors"`
	Sources   SourcesConfig    `yaml:"sources" mapstructure:"sources"`
	Overrides OverridesConfig  `yaml:"overrides" mapstructure:"overrides"`
	Fetch     FetchConfig      `yaml:"fetch" mapstructure:"fetch"`
	Store     StoreConfig      `yaml:"store" mapstructure:"store"`
	Server    ServerConfig     `yaml:"server" mapstructure:"server"`
	Geo       GeoConfig        `yaml:"geo" mapstructure:"geo"`
	Log       LogConfig        `yaml:"log" mapstructure:"log"`
}

// SourcesConfig points at the public data feeds.
type SourcesConfig struct {
	TaxonomyURL      string `yaml:"taxonomy_url" mapstructure:"taxonomy_url"`
	WorldBankBaseURL string `yaml:"worldbank_base_url" mapstructure:"worldbank_base_url"`
	LookbackYears    int    `yaml:"lookback_years" mapstructure:"lookback_years"`
}

// OverridesConfig locates the optional policy-table file. When Path is
// empty the compiled-in tables are used.
type OverridesConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// FetchConfig configures the HTTP fetcher.
type FetchConfig struct {
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
}

// StoreConfig configures the run-store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// ServerConfig configures the map server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// GeoConfig locates the map geometry assets.
type GeoConfig struct {
	ShapefilePath string `yaml:"shapefile_path" mapstructure:"shapefile_path"`
	GeoJSONPath   string `yaml:"geojson_path" mapstructure:"geojson_path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("REVMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Anchor totals are the disclosed segment revenues in USD
	// millions.
	v.SetDefault("anchors.americas_millions", 4500.0)
	v.SetDefault("anchors.emea_millions", 3200.0)
	v.SetDefault("anchors.apac_millions", 1800.0)
	v.SetDefault("sources.taxonomy_url", "")
	v.SetDefault("sources.worldbank_base_url", "")
	v.SetDefault("sources.lookback_years", 7)
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.user_agent", "revenue-map/1.0")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "revenue-map.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("geo.geojson_path", "countries.geojson")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
