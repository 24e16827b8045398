package project

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/DoorCraft/internal/model"
)

func TestDefaultInventoryPath(t *testing.T) {
	path := DefaultInventoryPath()
	if !strings.HasSuffix(path, filepath.Join(".doorcraft", "inventory.json")) {
		t.Errorf("unexpected inventory path %s", path)
	}
}

func TestSaveAndLoadInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	inv := model.DefaultInventory(6000)
	inv.Bars = append(inv.Bars, model.NewStockBar("Rest 40x40", model.Profile40x40, 1250))

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}
	loaded, err := LoadInventory(path, 6000)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(loaded.Bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(loaded.Bars))
	}
	if loaded.Bars[2].Length != 1250 || loaded.Bars[2].Profile != model.Profile40x40 {
		t.Errorf("unexpected remnant bar %+v", loaded.Bars[2])
	}
}

func TestLoadInventoryMissingFileUsesDefault(t *testing.T) {
	loaded, err := LoadInventory(filepath.Join(t.TempDir(), "none.json"), 6500)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(loaded.Bars) != 2 {
		t.Fatalf("expected default 2 bars, got %d", len(loaded.Bars))
	}
	for _, b := range loaded.Bars {
		if b.Length != 6500 {
			t.Errorf("expected 6500mm bars, got %.0f", b.Length)
		}
	}
}

func TestAddRemnants(t *testing.T) {
	inv := model.DefaultInventory(6000)
	remnants := []model.Remnant{
		{ID: "r1", Profile: model.Profile40x40, Length: 1800},
		{ID: "r2", Profile: model.Profile40x20, Length: 450},
	}

	inv = AddRemnants(inv, remnants)
	if len(inv.Bars) != 4 {
		t.Fatalf("expected 4 bars, got %d", len(inv.Bars))
	}
	if inv.FindByID("r1") == nil {
		t.Error("expected remnant r1 in inventory")
	}

	inv = AddRemnants(inv, remnants)
	if len(inv.Bars) != 4 {
		t.Errorf("expected re-adding to be a no-op, got %d bars", len(inv.Bars))
	}
}
