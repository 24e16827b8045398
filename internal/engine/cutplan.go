package engine

import (
	"sort"

	"github.com/piwi3910/DoorCraft/internal/model"
)

// CutPlanner assigns the steel parts of an order to stock bars.
type CutPlanner struct {
	Inventory model.Inventory
	Kerf      float64 // mm lost per saw cut
}

// NewCutPlanner creates a planner drawing bars from inv.
func NewCutPlanner(inv model.Inventory, kerf float64) *CutPlanner {
	return &CutPlanner{Inventory: inv, Kerf: kerf}
}

// Cuts lists every steel part of the order, once per leaf.
func Cuts(asm model.Assembly, leaves int) []model.Cut {
	var cuts []model.Cut
	for leaf := 1; leaf <= leaves; leaf++ {
		for _, p := range asm.SteelParts() {
			cuts = append(cuts, model.Cut{
				Label:   p.Label,
				Profile: p.Profile(),
				Length:  p.Length(),
				Leaf:    leaf,
			})
		}
	}
	return cuts
}

// Plan packs the cuts for an assembly built leaves times. See PlanCuts.
func (c *CutPlanner) Plan(asm model.Assembly, leaves int) model.CutPlan {
	return c.PlanCuts(Cuts(asm, leaves))
}

// PlanCuts packs each profile section separately, first-fit decreasing:
// longest cuts first, each into the first open bar with room. When no open
// bar has room, the shortest rack remnant that fits is opened before a
// full-length bar. Cuts with no matching stock, or longer than every bar,
// are unplaced.
func (c *CutPlanner) PlanCuts(cuts []model.Cut) model.CutPlan {
	groups := make(map[model.ProfileSection][]model.Cut)
	var order []model.ProfileSection
	for _, cut := range cuts {
		if _, seen := groups[cut.Profile]; !seen {
			order = append(order, cut.Profile)
		}
		groups[cut.Profile] = append(groups[cut.Profile], cut)
	}

	plan := model.CutPlan{Bars: []model.BarResult{}, Unplaced: []model.Cut{}}
	for _, profile := range order {
		stock := c.Inventory.BarsFor(profile)
		if len(stock) == 0 {
			plan.Unplaced = append(plan.Unplaced, groups[profile]...)
			continue
		}
		bars, unplaced := c.packGroup(stock, groups[profile])
		plan.Bars = append(plan.Bars, bars...)
		plan.Unplaced = append(plan.Unplaced, unplaced...)
	}
	return plan
}

// packGroup packs cuts of one section. The longest stock bar is the
// supplier length and may be opened any number of times; shorter bars are
// remnants, each usable once.
func (c *CutPlanner) packGroup(stock []model.StockBar, cuts []model.Cut) ([]model.BarResult, []model.Cut) {
	bars := make([]model.StockBar, len(stock))
	copy(bars, stock)
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Length < bars[j].Length })
	full := bars[len(bars)-1]
	remnants := bars[:len(bars)-1]
	usedRemnant := make([]bool, len(remnants))

	sorted := make([]model.Cut, len(cuts))
	copy(sorted, cuts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Length > sorted[j].Length
	})

	var open []model.BarResult
	var unplaced []model.Cut
	for _, cut := range sorted {
		need := cut.Length + c.Kerf
		if cut.Length <= 0 || need > full.Length {
			unplaced = append(unplaced, cut)
			continue
		}

		placed := false
		for i := range open {
			if open[i].Stock.Length-open[i].UsedLength() >= need {
				open[i].Cuts = append(open[i].Cuts, cut)
				placed = true
				break
			}
		}
		if placed {
			continue
		}

		next := full
		for i, r := range remnants {
			if !usedRemnant[i] && r.Length >= need {
				next = r
				usedRemnant[i] = true
				break
			}
		}
		open = append(open, model.BarResult{Stock: next, Kerf: c.Kerf, Cuts: []model.Cut{cut}})
	}
	return open, unplaced
}
