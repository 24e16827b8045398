package project

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/DoorCraft/internal/model"
)

func TestSaveAndLoadPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")

	cfg := model.DefaultConfiguration()
	cfg.Mechanism = model.MechanismHinged
	cfg.OpeningWidth = 1100

	store := model.NewPresetStore()
	store.Add(model.NewPreset("Standard hinged", "most quoted", cfg))
	store.Add(model.NewPreset("Default", "", model.DefaultConfiguration()))

	if err := SavePresets(path, store); err != nil {
		t.Fatalf("SavePresets failed: %v", err)
	}

	loaded, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}
	if len(loaded.Presets) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(loaded.Presets))
	}
	p := loaded.FindByName("Standard hinged")
	if p == nil {
		t.Fatal("expected to find preset by name")
	}
	if p.Configuration != cfg {
		t.Errorf("configuration mismatch: %+v vs %+v", p.Configuration, cfg)
	}
	if p.Description != "most quoted" {
		t.Errorf("expected description, got %q", p.Description)
	}
}

func TestLoadPresetsNotFound(t *testing.T) {
	store, err := LoadPresets(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store.Presets == nil || len(store.Presets) != 0 {
		t.Errorf("expected empty non-nil store, got %+v", store.Presets)
	}
}

func TestFindPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	store := model.NewPresetStore()
	p := model.NewPreset("Wide", "", model.DefaultConfiguration())
	store.Add(p)
	if err := SavePresets(path, store); err != nil {
		t.Fatal(err)
	}

	byName, err := FindPreset(path, "Wide")
	if err != nil {
		t.Fatalf("FindPreset by name: %v", err)
	}
	if byName.ID != p.ID {
		t.Errorf("expected ID %s, got %s", p.ID, byName.ID)
	}

	byID, err := FindPreset(path, p.ID)
	if err != nil {
		t.Fatalf("FindPreset by ID: %v", err)
	}
	if byID.Name != "Wide" {
		t.Errorf("expected Wide, got %s", byID.Name)
	}

	if _, err := FindPreset(path, "Narrow"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
