package engine

import (
	"math"

	"github.com/piwi3910/DoorCraft/internal/model"
)

// Pricer turns leaf geometry and accessory choices into a price breakdown.
type Pricer struct {
	Prices model.PriceList
}

// NewPricer creates a pricer for the given price list.
func NewPricer(prices model.PriceList) *Pricer {
	return &Pricer{Prices: prices}
}

// Calculate prices one order. Steel and glass quantities are per leaf and
// multiplied by the leaf count in float64; costs are rounded to whole
// currency units with halves going up, and the quantities to hundredths.
func (p *Pricer) Calculate(
	leafWidth, height float64,
	mech model.Mechanism,
	grid model.GridLayout,
	leaves model.LeafCount,
	panels model.SidePanels,
	handle model.Handle,
) model.PriceBreakdown {
	n := float64(leaves.Leaves())
	steel := steelLength(leafWidth, height, grid, mech) * n
	glass := glassArea(leafWidth, height, grid) * n

	var mechanism int64
	if mech == model.MechanismPivot {
		mechanism += p.Prices.PivotSurcharge
	}
	if leaves == model.LeafDouble {
		mechanism += p.Prices.DoubleSurcharge
	}

	b := model.PriceBreakdown{
		Currency:           p.Prices.Currency,
		SteelCost:          int64(roundHalfUp(steel * p.Prices.SteelPerMeter.InexactFloat64())),
		GlassCost:          int64(roundHalfUp(glass * p.Prices.GlassPerSqMeter.InexactFloat64())),
		BaseFee:            p.Prices.BaseFee,
		MechanismSurcharge: mechanism,
		SidePanelSurcharge: int64(panels.Count()) * p.Prices.SidePanelSurcharge,
		HandleCost:         p.Prices.HandlePrice(handle),
		SteelLengthMeters:  roundHalfUp(steel*100) / 100,
		GlassAreaSqMeters:  roundHalfUp(glass*100) / 100,
	}
	b.TotalPrice = b.Sum()
	return b
}

// CalculatePrice prices an order with the default price list.
func CalculatePrice(
	leafWidth, height float64,
	mech model.Mechanism,
	grid model.GridLayout,
	leaves model.LeafCount,
	panels model.SidePanels,
	handle model.Handle,
) model.PriceBreakdown {
	return NewPricer(model.DefaultPriceList()).Calculate(leafWidth, height, mech, grid, leaves, panels, handle)
}

// steelLength returns the tube length of one leaf in meters: the frame
// perimeter, one inner width per grid divider and the fixed-panel
// center divider.
func steelLength(leafWidth, height float64, grid model.GridLayout, mech model.Mechanism) float64 {
	inner := leafWidth - model.ProfileWidth*2
	total := height*2 + inner*2
	if d := grid.Dividers(); d > 0 {
		total += inner * float64(d)
	}
	if mech.HasCenterDivider() {
		total += height - model.RailHeightRobust*2
	}
	return total / 1000
}

// glassArea returns the visible glass of one leaf in square meters, with
// the strips covered by grid dividers taken off.
func glassArea(leafWidth, height float64, grid model.GridLayout) float64 {
	w := leafWidth - model.ProfileWidth*2
	h := height - model.RailHeightRobust*2

	var covered float64
	if d := grid.Dividers(); d > 0 {
		covered = w * model.RailHeightSlim * float64(d)
	}
	return (w*h - covered) / 1_000_000
}

// roundHalfUp rounds to the nearest integer with ties going toward
// positive infinity. It avoids the x+0.5 carry error just below a half.
func roundHalfUp(x float64) float64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return r
}
