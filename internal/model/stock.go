package model

import "github.com/google/uuid"

// ProfileSection names the tube cross-section a steel part is cut from.
type ProfileSection string

const (
	Profile40x40 ProfileSection = "40x40" // Stiles, top/bottom rails, center divider
	Profile40x20 ProfileSection = "40x20" // Slim grid dividers
)

// Profile returns the tube section this part is cut from.
// Glass parts have no section.
func (p PhysicalPart) Profile() ProfileSection {
	if p.IsGlass {
		return ""
	}
	if p.Kind == PartDivider && p.Height == RailHeightSlim {
		return Profile40x20
	}
	return Profile40x40
}

// StockBar is a length of tube as delivered by the steel supplier.
type StockBar struct {
	ID      string         `json:"id" yaml:"id"`
	Name    string         `json:"name" yaml:"name"`
	Profile ProfileSection `json:"profile" yaml:"profile"`
	Length  float64        `json:"length" yaml:"length"` // mm
}

// NewStockBar creates a new StockBar with a generated ID.
func NewStockBar(name string, profile ProfileSection, length float64) StockBar {
	return StockBar{
		ID:      uuid.New().String()[:8],
		Name:    name,
		Profile: profile,
		Length:  length,
	}
}

// Inventory holds the stock bars the workshop keeps.
type Inventory struct {
	Bars []StockBar `json:"bars" yaml:"bars"`
}

// DefaultInventory returns an inventory with the standard supplier lengths.
func DefaultInventory(barLength float64) Inventory {
	if barLength <= 0 {
		barLength = 6000
	}
	return Inventory{
		Bars: []StockBar{
			NewStockBar("Koker 40x40x2", Profile40x40, barLength),
			NewStockBar("Koker 40x20x2", Profile40x20, barLength),
		},
	}
}

// BarFor returns the first stock bar of the given section, or nil.
func (inv *Inventory) BarFor(profile ProfileSection) *StockBar {
	for i := range inv.Bars {
		if inv.Bars[i].Profile == profile {
			return &inv.Bars[i]
		}
	}
	return nil
}

// BarsFor returns every stock bar of the given section.
func (inv *Inventory) BarsFor(profile ProfileSection) []StockBar {
	var out []StockBar
	for _, b := range inv.Bars {
		if b.Profile == profile {
			out = append(out, b)
		}
	}
	return out
}

// FindByID returns a pointer to the bar with the given ID, or nil.
func (inv *Inventory) FindByID(id string) *StockBar {
	for i := range inv.Bars {
		if inv.Bars[i].ID == id {
			return &inv.Bars[i]
		}
	}
	return nil
}
