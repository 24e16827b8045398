package model

import (
	"sort"

	"github.com/google/uuid"
)

// Remnant is a usable length of tube left over after cutting.
type Remnant struct {
	ID       string         `json:"id"`
	BarIndex int            `json:"bar_index"` // Index of the source bar in the plan
	Profile  ProfileSection `json:"profile"`
	Length   float64        `json:"length"` // mm
}

// MinRemnantLength is the shortest leftover (mm) worth putting back on the
// rack. Shorter ends are scrap.
const MinRemnantLength = 300.0

// ToStockBar converts a remnant into a stock bar for a later order.
func (r Remnant) ToStockBar() StockBar {
	return NewStockBar("Rest "+string(r.Profile), r.Profile, r.Length)
}

// DetectRemnants lists the bar ends in a plan long enough to reuse,
// longest first.
func DetectRemnants(plan CutPlan) []Remnant {
	var out []Remnant
	for i, b := range plan.Bars {
		rest := b.Remaining()
		if rest < MinRemnantLength {
			continue
		}
		out = append(out, Remnant{
			ID:       uuid.New().String()[:8],
			BarIndex: i,
			Profile:  b.Stock.Profile,
			Length:   rest,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Length > out[j].Length
	})
	return out
}

// TotalRemnantLength returns the combined length of all remnants in mm.
func TotalRemnantLength(remnants []Remnant) float64 {
	var total float64
	for _, r := range remnants {
		total += r.Length
	}
	return total
}
