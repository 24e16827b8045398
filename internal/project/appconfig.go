package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/piwi3910/DoorCraft/internal/model"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// DOORCRAFT_SERVER_ADDR or DOORCRAFT_PRICES_BASE_FEE.
const EnvPrefix = "DOORCRAFT"

// DefaultConfigDir returns the default directory for application files.
// On all platforms this is ~/.doorcraft/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".doorcraft")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.toml")
}

// DefaultArchivePath returns the SQLite quote archive used when no DSN is set.
func DefaultArchivePath() string {
	return filepath.Join(DefaultConfigDir(), "quotes.db")
}

// flatten lists every config key with its value, in viper's dotted form.
func flatten(cfg model.AppConfig) map[string]any {
	handles := make(map[string]any, len(cfg.Prices.Handles))
	for h, v := range cfg.Prices.Handles {
		handles[h] = v
	}
	return map[string]any{
		"defaults.door_mechanism":     cfg.Defaults.Mechanism,
		"defaults.leaf_count":         cfg.Defaults.LeafCount,
		"defaults.side_panels":        cfg.Defaults.SidePanels,
		"defaults.grid_layout":        cfg.Defaults.GridLayout,
		"defaults.finish":             cfg.Defaults.Finish,
		"defaults.handle_type":        cfg.Defaults.Handle,
		"defaults.glass_pattern":      cfg.Defaults.GlassPattern,
		"defaults.opening_width":      cfg.Defaults.OpeningWidth,
		"defaults.opening_height":     cfg.Defaults.OpeningHeight,
		"prices.currency":             cfg.Prices.Currency,
		"prices.steel_per_meter":      cfg.Prices.SteelPerMeter,
		"prices.glass_per_sqm":        cfg.Prices.GlassPerSqMeter,
		"prices.base_fee":             cfg.Prices.BaseFee,
		"prices.pivot_surcharge":      cfg.Prices.PivotSurcharge,
		"prices.double_surcharge":     cfg.Prices.DoubleSurcharge,
		"prices.side_panel_surcharge": cfg.Prices.SidePanelSurcharge,
		"prices.handles":              handles,
		"archive_driver":              cfg.ArchiveDriver,
		"archive_dsn":                 cfg.ArchiveDSN,
		"server_addr":                 cfg.ServerAddr,
		"log_level":                   cfg.LogLevel,
		"log_file":                    cfg.LogFile,
		"bar_length":                  cfg.BarLength,
		"kerf_width":                  cfg.KerfWidth,
		"company_name":                cfg.CompanyName,
	}
}

// LoadAppConfig reads the config in layers: built-in defaults, then the
// file at path (TOML; a missing file is not an error), then DOORCRAFT_*
// environment variables. An empty path uses DefaultConfigPath.
func LoadAppConfig(path string) (model.AppConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	v := viper.New()
	for key, value := range flatten(model.DefaultAppConfig()) {
		v.SetDefault(key, value)
	}

	v.SetConfigFile(path)
	v.SetConfigType(configType(path))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return model.AppConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg model.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return model.AppConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := cfg.Prices.PriceList(); err != nil {
		return model.AppConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveAppConfig writes cfg to path, creating the directory if needed.
func SaveAppConfig(path string, cfg model.AppConfig) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType(configType(path))
	for key, value := range flatten(cfg) {
		v.Set(key, value)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// configType picks the viper format from the file extension; TOML unless
// the file says otherwise.
func configType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	default:
		return "toml"
	}
}
