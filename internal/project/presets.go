package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/DoorCraft/internal/model"
)

// DefaultPresetPath returns the default file path for saved presets.
// This is located at ~/.doorcraft/presets.yaml.
func DefaultPresetPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.yaml")
}

// SavePresets writes the preset store to a YAML file.
func SavePresets(path string, store model.PresetStore) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(store)
	if err != nil {
		return fmt.Errorf("marshal presets: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadPresets reads a preset store from a YAML file.
// If the file does not exist, returns an empty store.
func LoadPresets(path string) (model.PresetStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewPresetStore(), nil
		}
		return model.PresetStore{}, err
	}
	var store model.PresetStore
	if err := yaml.Unmarshal(data, &store); err != nil {
		return model.PresetStore{}, fmt.Errorf("parse presets %s: %w", path, err)
	}
	if store.Presets == nil {
		store.Presets = []model.Preset{}
	}
	return store, nil
}

// FindPreset loads the store at path and returns the named preset.
func FindPreset(path, name string) (model.Preset, error) {
	store, err := LoadPresets(path)
	if err != nil {
		return model.Preset{}, err
	}
	p := store.FindByName(name)
	if p == nil {
		p = store.FindByID(name)
	}
	if p == nil {
		return model.Preset{}, fmt.Errorf("preset %q not found in %s", name, path)
	}
	return *p, nil
}
