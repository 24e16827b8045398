package model

import (
	"testing"
)

func TestNewPreset(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.LeafCount = LeafDouble

	p := NewPreset("Double pivot", "Standard double door", cfg)

	if p.ID == "" {
		t.Error("expected non-empty ID")
	}
	if p.CreatedAt == "" || p.UpdatedAt == "" {
		t.Error("expected timestamps")
	}
	if p.Configuration.LeafCount != LeafDouble {
		t.Errorf("expected double leaf, got %s", p.Configuration.LeafCount)
	}
}

func TestPresetStore_AddRemoveFind(t *testing.T) {
	store := NewPresetStore()

	p1 := NewPreset("P1", "", DefaultConfiguration())
	p2 := NewPreset("P2", "", DefaultConfiguration())
	store.Add(p1)
	store.Add(p2)

	if len(store.Presets) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(store.Presets))
	}

	if found := store.FindByID(p1.ID); found == nil || found.Name != "P1" {
		t.Errorf("FindByID returned %v", found)
	}
	if store.FindByName("P2") == nil {
		t.Error("FindByName returned nil for existing preset")
	}
	if names := store.Names(); len(names) != 2 || names[0] != "P1" {
		t.Errorf("unexpected names %v", names)
	}

	if !store.Remove("P2") {
		t.Error("Remove by name should succeed")
	}
	if !store.Remove(p1.ID) {
		t.Error("Remove by ID should succeed")
	}
	if store.Remove("nonexistent") {
		t.Error("Remove should return false for unknown preset")
	}
	if len(store.Presets) != 0 {
		t.Errorf("expected empty store, got %d", len(store.Presets))
	}
}

func TestPresetStore_Upsert(t *testing.T) {
	store := NewPresetStore()
	first := store.Upsert(NewPreset("Shop", "", DefaultConfiguration()))

	cfg := DefaultConfiguration()
	cfg.OpeningWidth = 1100
	second := store.Upsert(NewPreset("Shop", "wider", cfg))

	if len(store.Presets) != 1 {
		t.Fatalf("expected 1 preset after upsert, got %d", len(store.Presets))
	}
	if second.ID != first.ID {
		t.Error("upsert should keep the existing ID")
	}
	if store.Presets[0].Configuration.OpeningWidth != 1100 {
		t.Errorf("expected updated width 1100, got %.0f", store.Presets[0].Configuration.OpeningWidth)
	}
	if store.Presets[0].Description != "wider" {
		t.Errorf("expected description to update, got %q", store.Presets[0].Description)
	}
}
