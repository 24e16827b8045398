package engine

import (
	"fmt"

	"github.com/piwi3910/DoorCraft/internal/model"
)

// ComparisonScenario is a named configuration to price side by side.
type ComparisonScenario struct {
	Name          string
	Configuration model.Configuration
}

// ComparisonResult holds the derived numbers for one scenario.
type ComparisonResult struct {
	Scenario   ComparisonScenario
	Envelope   model.Envelope
	Price      model.PriceBreakdown
	PartCount  int   // parts per leaf
	Difference int64 // total price minus the first scenario's
}

// CompareScenarios derives envelope, part count and price for each scenario
// in order. Opening sizes are clamped per scenario, so a width that only
// fits one layout is still compared sensibly.
func CompareScenarios(pricer *Pricer, scenarios []ComparisonScenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		cfg := scenario.Configuration
		cfg.OpeningWidth = ClampOpeningWidth(cfg.OpeningWidth, cfg.LeafCount, cfg.SidePanels)
		cfg.OpeningHeight = ClampOpeningHeight(cfg.OpeningHeight)
		scenario.Configuration = cfg

		env := Envelope(cfg)
		asm := GenerateAssembly(cfg.Mechanism, cfg.GridLayout, env.DoorLeafWidth, cfg.OpeningHeight)
		price := pricer.Calculate(env.DoorLeafWidth, cfg.OpeningHeight, cfg.Mechanism, cfg.GridLayout,
			cfg.LeafCount, cfg.SidePanels, cfg.Handle)

		results = append(results, ComparisonResult{
			Scenario:  scenario,
			Envelope:  env,
			Price:     price,
			PartCount: len(asm.Parts),
		})
	}

	if len(results) > 0 {
		base := results[0].Price.TotalPrice
		for i := range results {
			results[i].Difference = results[i].Price.TotalPrice - base
		}
	}
	return results
}

// BuildDefaultScenarios starts with the current configuration and adds
// every other mechanism and grid layout combination at the same size.
func BuildDefaultScenarios(base model.Configuration) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Configuration", Configuration: base},
	}

	for _, mech := range model.Mechanisms {
		for _, grid := range model.GridLayouts {
			if mech == base.Mechanism && grid == base.GridLayout {
				continue
			}
			cfg := base
			cfg.Mechanism = mech
			cfg.GridLayout = grid
			scenarios = append(scenarios, ComparisonScenario{
				Name:          fmt.Sprintf("%s / %s", mech, grid),
				Configuration: cfg,
			})
		}
	}

	return scenarios
}
