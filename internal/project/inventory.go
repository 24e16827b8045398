package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/DoorCraft/internal/model"
)

// DefaultInventoryPath returns the default file path for the stock bar
// inventory. This is located at ~/.doorcraft/inventory.json.
func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "inventory.json")
}

// SaveInventory writes the inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.Inventory) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory for the
// given bar length without writing anything.
func LoadInventory(path string, barLength float64) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultInventory(barLength), nil
		}
		return model.Inventory{}, err
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, err
	}
	return inv, nil
}

// AddRemnants puts reusable bar ends from a cut plan back into the
// inventory. Remnants already present by ID are skipped.
func AddRemnants(inv model.Inventory, remnants []model.Remnant) model.Inventory {
	ids := make(map[string]bool, len(inv.Bars))
	for _, b := range inv.Bars {
		ids[b.ID] = true
	}
	for _, r := range remnants {
		bar := r.ToStockBar()
		bar.ID = r.ID
		if ids[bar.ID] {
			continue
		}
		inv.Bars = append(inv.Bars, bar)
		ids[bar.ID] = true
	}
	return inv
}
