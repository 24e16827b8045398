package export

import (
	"time"

	"github.com/piwi3910/DoorCraft/internal/engine"
	"github.com/piwi3910/DoorCraft/internal/model"
)

// buildTestDocument prices cfg with the default price list.
func buildTestDocument(cfg model.Configuration) Document {
	cfg.OpeningWidth = engine.ClampOpeningWidth(cfg.OpeningWidth, cfg.LeafCount, cfg.SidePanels)
	cfg.OpeningHeight = engine.ClampOpeningHeight(cfg.OpeningHeight)
	env := engine.Envelope(cfg)
	asm := engine.GenerateAssembly(cfg.Mechanism, cfg.GridLayout, env.DoorLeafWidth, cfg.OpeningHeight)
	price := engine.CalculatePrice(env.DoorLeafWidth, cfg.OpeningHeight, cfg.Mechanism, cfg.GridLayout,
		cfg.LeafCount, cfg.SidePanels, cfg.Handle)
	return Document{
		Company:       "DoorCraft",
		Reference:     "Q-20260314-ABC123",
		Date:          time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Configuration: cfg,
		Envelope:      env,
		Assembly:      asm,
		Price:         price,
	}
}

func doubleWithPanels() model.Configuration {
	cfg := model.DefaultConfiguration()
	cfg.Mechanism = model.MechanismHinged
	cfg.LeafCount = model.LeafDouble
	cfg.SidePanels = model.SidePanelsBoth
	cfg.GridLayout = model.GridFourPane
	cfg.OpeningWidth = 2400
	return cfg
}
