package model

import "github.com/shopspring/decimal"

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Starting configuration for new sessions and CLI commands
	Defaults ConfigDefaults `json:"defaults" mapstructure:"defaults"`

	// Prices as they appear in the config file
	Prices PriceSettings `json:"prices" mapstructure:"prices"`

	// Quote archive; an empty driver disables it
	ArchiveDriver string `json:"archive_driver" mapstructure:"archive_driver"` // "sqlite3" or "postgres"
	ArchiveDSN    string `json:"archive_dsn" mapstructure:"archive_dsn"`

	ServerAddr string `json:"server_addr" mapstructure:"server_addr"`

	LogLevel string `json:"log_level" mapstructure:"log_level"` // "debug", "info", "warn", "error"
	LogFile  string `json:"log_file" mapstructure:"log_file"`   // empty = stderr

	// Steel bar cutting
	BarLength float64 `json:"bar_length" mapstructure:"bar_length"` // mm
	KerfWidth float64 `json:"kerf_width" mapstructure:"kerf_width"` // mm

	// Company line printed on quote sheets and labels
	CompanyName string `json:"company_name" mapstructure:"company_name"`
}

// ConfigDefaults mirrors Configuration with plain strings so config files
// and environment variables can carry it.
type ConfigDefaults struct {
	Mechanism     string  `json:"door_mechanism" mapstructure:"door_mechanism"`
	LeafCount     string  `json:"leaf_count" mapstructure:"leaf_count"`
	SidePanels    string  `json:"side_panels" mapstructure:"side_panels"`
	GridLayout    string  `json:"grid_layout" mapstructure:"grid_layout"`
	Finish        string  `json:"finish" mapstructure:"finish"`
	Handle        string  `json:"handle_type" mapstructure:"handle_type"`
	GlassPattern  string  `json:"glass_pattern" mapstructure:"glass_pattern"`
	OpeningWidth  float64 `json:"opening_width" mapstructure:"opening_width"`   // mm
	OpeningHeight float64 `json:"opening_height" mapstructure:"opening_height"` // mm
}

// PriceSettings is the file form of a PriceList.
type PriceSettings struct {
	Currency           string           `json:"currency" mapstructure:"currency"`
	SteelPerMeter      float64          `json:"steel_per_meter" mapstructure:"steel_per_meter"`
	GlassPerSqMeter    float64          `json:"glass_per_sqm" mapstructure:"glass_per_sqm"`
	BaseFee            int64            `json:"base_fee" mapstructure:"base_fee"`
	PivotSurcharge     int64            `json:"pivot_surcharge" mapstructure:"pivot_surcharge"`
	DoubleSurcharge    int64            `json:"double_surcharge" mapstructure:"double_surcharge"`
	SidePanelSurcharge int64            `json:"side_panel_surcharge" mapstructure:"side_panel_surcharge"`
	Handles            map[string]int64 `json:"handles" mapstructure:"handles"`
}

// DefaultAppConfig returns an AppConfig populated with the shop defaults.
func DefaultAppConfig() AppConfig {
	cfg := DefaultConfiguration()
	prices := DefaultPriceList()

	handles := make(map[string]int64, len(prices.Handles))
	for h, v := range prices.Handles {
		handles[string(h)] = v
	}

	return AppConfig{
		Defaults: ConfigDefaults{
			Mechanism:     string(cfg.Mechanism),
			LeafCount:     string(cfg.LeafCount),
			SidePanels:    string(cfg.SidePanels),
			GridLayout:    string(cfg.GridLayout),
			Finish:        string(cfg.Finish),
			Handle:        string(cfg.Handle),
			GlassPattern:  string(cfg.GlassPattern),
			OpeningWidth:  cfg.OpeningWidth,
			OpeningHeight: cfg.OpeningHeight,
		},
		Prices: PriceSettings{
			Currency:           prices.Currency,
			SteelPerMeter:      prices.SteelPerMeter.InexactFloat64(),
			GlassPerSqMeter:    prices.GlassPerSqMeter.InexactFloat64(),
			BaseFee:            prices.BaseFee,
			PivotSurcharge:     prices.PivotSurcharge,
			DoubleSurcharge:    prices.DoubleSurcharge,
			SidePanelSurcharge: prices.SidePanelSurcharge,
			Handles:            handles,
		},
		ArchiveDriver: "sqlite3",
		ArchiveDSN:    "",
		ServerAddr:    "127.0.0.1:8080",
		LogLevel:      "info",
		BarLength:     6000,
		KerfWidth:     3,
		CompanyName:   "DoorCraft",
	}
}

// Configuration parses the defaults into a typed Configuration.
func (d ConfigDefaults) Configuration() (Configuration, error) {
	var (
		cfg Configuration
		err error
	)
	if cfg.Mechanism, err = ParseMechanism(d.Mechanism); err != nil {
		return cfg, err
	}
	if cfg.LeafCount, err = ParseLeafCount(d.LeafCount); err != nil {
		return cfg, err
	}
	if cfg.SidePanels, err = ParseSidePanels(d.SidePanels); err != nil {
		return cfg, err
	}
	if cfg.GridLayout, err = ParseGridLayout(d.GridLayout); err != nil {
		return cfg, err
	}
	if cfg.Finish, err = ParseFinish(d.Finish); err != nil {
		return cfg, err
	}
	if cfg.Handle, err = ParseHandle(d.Handle); err != nil {
		return cfg, err
	}
	if cfg.GlassPattern, err = ParseGlassPattern(d.GlassPattern); err != nil {
		return cfg, err
	}
	cfg.OpeningWidth = d.OpeningWidth
	cfg.OpeningHeight = d.OpeningHeight
	return cfg, nil
}

// PriceList converts the file form into a validated PriceList.
// Handles missing from the settings keep their default price.
func (s PriceSettings) PriceList() (PriceList, error) {
	pl := DefaultPriceList()
	if s.Currency != "" {
		pl.Currency = s.Currency
	}
	pl.SteelPerMeter = decimal.NewFromFloat(s.SteelPerMeter)
	pl.GlassPerSqMeter = decimal.NewFromFloat(s.GlassPerSqMeter)
	pl.BaseFee = s.BaseFee
	pl.PivotSurcharge = s.PivotSurcharge
	pl.DoubleSurcharge = s.DoubleSurcharge
	pl.SidePanelSurcharge = s.SidePanelSurcharge
	for name, v := range s.Handles {
		h, err := ParseHandle(name)
		if err != nil {
			return PriceList{}, err
		}
		pl.Handles[h] = v
	}
	if err := pl.Validate(); err != nil {
		return PriceList{}, err
	}
	return pl, nil
}
