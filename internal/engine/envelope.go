package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/DoorCraft/internal/model"
)

// framing is the width both frame profiles take out of the opening.
const framing = 2 * model.FrameProfileWidth

// HoleWidth returns the wall opening needed for the given total leaf width.
// Side panels are counted at their minimum width.
func HoleWidth(doorWidth float64, leaves model.LeafCount, panels model.SidePanels) float64 {
	return doorWidth + framing + model.SidePanelMinWidth*float64(panels.Count())
}

// MinOpeningWidth returns the narrowest opening the configuration can fill.
func MinOpeningWidth(leaves model.LeafCount, panels model.SidePanels) float64 {
	return model.LeafMinWidth*float64(leaves.Leaves()) + framing + model.SidePanelMinWidth*float64(panels.Count())
}

// MaxOpeningWidth returns the widest opening the configuration can fill.
func MaxOpeningWidth(leaves model.LeafCount, panels model.SidePanels) float64 {
	return model.LeafMaxWidth*float64(leaves.Leaves()) + framing + model.SidePanelMaxWidth*float64(panels.Count())
}

// SidePanelWidth returns the width of each side panel. Whatever the
// minimum-width leaves and the frame leave over is shared by the panels,
// floored at the panel minimum.
func SidePanelWidth(total float64, leaves model.LeafCount, panels model.SidePanels) float64 {
	n := panels.Count()
	if n == 0 {
		return 0
	}
	available := total - model.LeafMinWidth*float64(leaves.Leaves()) - framing
	return math.Max(model.SidePanelMinWidth, available/float64(n))
}

// DoorLeafWidth returns the width of one leaf after frame and side panels,
// floored at the leaf minimum.
func DoorLeafWidth(total float64, leaves model.LeafCount, panels model.SidePanels) float64 {
	available := total - framing - SidePanelWidth(total, leaves, panels)*float64(panels.Count())
	return math.Max(model.LeafMinWidth, available/float64(leaves.Leaves()))
}

// ClampOpeningWidth forces width into the envelope of the given leaf and
// side-panel settings.
func ClampOpeningWidth(width float64, leaves model.LeafCount, panels model.SidePanels) float64 {
	return clamp(width, MinOpeningWidth(leaves, panels), MaxOpeningWidth(leaves, panels))
}

// ClampOpeningHeight forces height into the manufacturable range.
func ClampOpeningHeight(height float64) float64 {
	return clamp(height, model.MinOpeningHeight, model.MaxOpeningHeight)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Envelope derives the width envelope and size distribution for cfg.
// The opening width is expected to be clamped already; all derivations
// see the same total.
func Envelope(cfg model.Configuration) model.Envelope {
	leafWidth := DoorLeafWidth(cfg.OpeningWidth, cfg.LeafCount, cfg.SidePanels)
	return model.Envelope{
		MinOpeningWidth: MinOpeningWidth(cfg.LeafCount, cfg.SidePanels),
		MaxOpeningWidth: MaxOpeningWidth(cfg.LeafCount, cfg.SidePanels),
		DoorLeafWidth:   leafWidth,
		SidePanelWidth:  SidePanelWidth(cfg.OpeningWidth, cfg.LeafCount, cfg.SidePanels),
		HoleWidth:       HoleWidth(leafWidth*float64(cfg.LeafCount.Leaves()), cfg.LeafCount, cfg.SidePanels),
	}
}

// Validate checks an opening against the bounds of the configuration
// without correcting it. It never fails; problems are listed in the result.
func Validate(width, height float64, leaves model.LeafCount, panels model.SidePanels) model.ValidationResult {
	errs := []string{}

	minW := MinOpeningWidth(leaves, panels)
	maxW := MaxOpeningWidth(leaves, panels)
	if width < minW {
		errs = append(errs, fmt.Sprintf("width must be at least %.0fmm for this configuration", minW))
	}
	if width > maxW {
		errs = append(errs, fmt.Sprintf("width must be at most %.0fmm for this configuration", maxW))
	}
	if height < model.MinOpeningHeight {
		errs = append(errs, fmt.Sprintf("height must be at least %.0fmm", model.MinOpeningHeight))
	}
	if height > model.MaxOpeningHeight {
		errs = append(errs, fmt.Sprintf("height must be at most %.0fmm", model.MaxOpeningHeight))
	}

	return model.NewValidationResult(errs, nil)
}

// CheckLeaf reports whether a single leaf can be built from the profiles:
// it must be at least three profiles wide and high so every rail and stile
// keeps a positive span, and no larger than the leaf limits.
func CheckLeaf(width, height float64) model.ValidationResult {
	errs := []string{}
	minSpan := 3 * model.ProfileWidth

	if width < minSpan {
		errs = append(errs, fmt.Sprintf("leaf width %.0fmm is below the %.0fmm needed for stiles and glass", width, minSpan))
	}
	if height < minSpan {
		errs = append(errs, fmt.Sprintf("leaf height %.0fmm is below the %.0fmm needed for rails and glass", height, minSpan))
	}
	if width > model.LeafMaxWidth {
		errs = append(errs, fmt.Sprintf("leaf width %.0fmm exceeds %.0fmm", width, model.LeafMaxWidth))
	}
	if height > model.MaxOpeningHeight {
		errs = append(errs, fmt.Sprintf("leaf height %.0fmm exceeds %.0fmm", height, model.MaxOpeningHeight))
	}

	return model.NewValidationResult(errs, nil)
}

// ValidateConfiguration runs the opening check and the leaf check for cfg
// as given, without clamping. A handle on a fixed panel is a warning.
func ValidateConfiguration(cfg model.Configuration) model.ValidationResult {
	result := model.NewValidationResult(checkOptions(cfg), nil)
	result = result.Merge(Validate(cfg.OpeningWidth, cfg.OpeningHeight, cfg.LeafCount, cfg.SidePanels))

	leafWidth := DoorLeafWidth(cfg.OpeningWidth, cfg.LeafCount, cfg.SidePanels)
	result = result.Merge(CheckLeaf(leafWidth, cfg.OpeningHeight))

	if !cfg.Mechanism.AcceptsHandle() && cfg.Handle != model.HandleNone && cfg.Handle != "" {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s does not take a handle; %s is still priced", cfg.Mechanism, cfg.Handle))
	}

	return result
}

// checkOptions lists enum fields holding values the shop does not offer.
func checkOptions(cfg model.Configuration) []string {
	var errs []string
	check := func(err error) {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	_, err := model.ParseMechanism(string(cfg.Mechanism))
	check(err)
	_, err = model.ParseLeafCount(string(cfg.LeafCount))
	check(err)
	_, err = model.ParseSidePanels(string(cfg.SidePanels))
	check(err)
	_, err = model.ParseGridLayout(string(cfg.GridLayout))
	check(err)
	_, err = model.ParseFinish(string(cfg.Finish))
	check(err)
	_, err = model.ParseHandle(string(cfg.Handle))
	check(err)
	_, err = model.ParseGlassPattern(string(cfg.GlassPattern))
	check(err)
	return errs
}
