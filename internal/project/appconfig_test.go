package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/DoorCraft/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := model.DefaultAppConfig()
	cfg.KerfWidth = 4.0
	cfg.BarLength = 6500
	cfg.CompanyName = "Staalwerk Noord"
	cfg.Defaults.Mechanism = "hinged"
	cfg.Prices.BaseFee = 700

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.KerfWidth != 4.0 {
		t.Errorf("expected KerfWidth=4.0, got %f", loaded.KerfWidth)
	}
	if loaded.BarLength != 6500 {
		t.Errorf("expected BarLength=6500, got %f", loaded.BarLength)
	}
	if loaded.CompanyName != "Staalwerk Noord" {
		t.Errorf("expected CompanyName=Staalwerk Noord, got %s", loaded.CompanyName)
	}
	if loaded.Defaults.Mechanism != "hinged" {
		t.Errorf("expected mechanism hinged, got %s", loaded.Defaults.Mechanism)
	}
	if loaded.Prices.BaseFee != 700 {
		t.Errorf("expected BaseFee=700, got %d", loaded.Prices.BaseFee)
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.toml")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.KerfWidth != defaults.KerfWidth {
		t.Errorf("expected default kerf width %f, got %f", defaults.KerfWidth, cfg.KerfWidth)
	}
	if cfg.ServerAddr != defaults.ServerAddr {
		t.Errorf("expected server addr %s, got %s", defaults.ServerAddr, cfg.ServerAddr)
	}
	if _, err := cfg.Defaults.Configuration(); err != nil {
		t.Errorf("default configuration should parse: %v", err)
	}
}

func TestLoadAppConfigEnvOverride(t *testing.T) {
	t.Setenv("DOORCRAFT_SERVER_ADDR", "0.0.0.0:9090")
	t.Setenv("DOORCRAFT_PRICES_BASE_FEE", "800")

	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.ServerAddr != "0.0.0.0:9090" {
		t.Errorf("expected env server addr, got %s", cfg.ServerAddr)
	}
	if cfg.Prices.BaseFee != 800 {
		t.Errorf("expected env base fee 800, got %d", cfg.Prices.BaseFee)
	}
}

func TestLoadAppConfigInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("this is [not toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadAppConfig(path); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestLoadAppConfigRejectsNegativePrice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "prices:\n  base_fee: -10\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadAppConfig(path); err == nil {
		t.Error("expected error for negative base fee")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "config.toml")

	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("expected config file to be created")
	}
}

func TestConfigType(t *testing.T) {
	cases := map[string]string{
		"a/config.toml": "toml",
		"a/config.yaml": "yaml",
		"a/config.YML":  "yaml",
		"a/config.json": "json",
		"a/config":      "toml",
	}
	for path, want := range cases {
		if got := configType(path); got != want {
			t.Errorf("configType(%q) = %q, want %q", path, got, want)
		}
	}
}
