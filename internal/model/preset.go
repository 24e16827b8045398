package model

import (
	"time"

	"github.com/google/uuid"
)

// Preset is a named configuration saved for reuse, e.g. a standard
// pivot door the shop quotes often.
type Preset struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Description   string        `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt     string        `json:"created_at" yaml:"created_at"`
	UpdatedAt     string        `json:"updated_at" yaml:"updated_at"`
	Configuration Configuration `json:"configuration" yaml:"configuration"`
}

// NewPreset creates a preset capturing the given configuration.
func NewPreset(name, description string, cfg Configuration) Preset {
	now := time.Now().UTC().Format(time.RFC3339)
	return Preset{
		ID:            uuid.New().String()[:8],
		Name:          name,
		Description:   description,
		CreatedAt:     now,
		UpdatedAt:     now,
		Configuration: cfg,
	}
}

// PresetStore holds a collection of presets.
type PresetStore struct {
	Presets []Preset `json:"presets" yaml:"presets"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{
		Presets: []Preset{},
	}
}

// Add adds a preset to the store.
func (ps *PresetStore) Add(p Preset) {
	ps.Presets = append(ps.Presets, p)
}

// Upsert replaces the configuration of the preset with the same name,
// or adds p when no such preset exists. It returns the stored preset.
func (ps *PresetStore) Upsert(p Preset) Preset {
	if existing := ps.FindByName(p.Name); existing != nil {
		existing.Configuration = p.Configuration
		if p.Description != "" {
			existing.Description = p.Description
		}
		existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		return *existing
	}
	ps.Add(p)
	return p
}

// Remove removes a preset by ID or name. Returns true if found and removed.
func (ps *PresetStore) Remove(idOrName string) bool {
	for i, p := range ps.Presets {
		if p.ID == idOrName || p.Name == idOrName {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (ps *PresetStore) FindByID(id string) *Preset {
	for i := range ps.Presets {
		if ps.Presets[i].ID == id {
			return &ps.Presets[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *Preset {
	for i := range ps.Presets {
		if ps.Presets[i].Name == name {
			return &ps.Presets[i]
		}
	}
	return nil
}

// Names returns the preset names in store order.
func (ps *PresetStore) Names() []string {
	names := make([]string, len(ps.Presets))
	for i, p := range ps.Presets {
		names[i] = p.Name
	}
	return names
}
