package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/piwi3910/DoorCraft/internal/model"
)

// ErrDegenerateGeometry is returned when a leaf is too small (or too large)
// to be built from the standard profiles.
var ErrDegenerateGeometry = errors.New("degenerate leaf geometry")

// dividerMark is a horizontal divider position expressed as a fraction of
// the leaf height, measured from the top edge.
type dividerMark struct {
	num, den int
	label    string
}

var dividerMarks = map[model.GridLayout][]dividerMark{
	model.GridThreePane: {
		{1, 3, "Divider 1/3"},
		{2, 3, "Divider 2/3"},
	},
	model.GridFourPane: {
		{1, 4, "Divider 1/4"},
		{1, 2, "Divider 1/2"},
		{3, 4, "Divider 3/4"},
	},
}

// markY converts a mark into a y offset from the leaf center. Four-pane's
// half mark sits exactly on the center line.
func markY(m dividerMark, height float64) float64 {
	if 2*m.num == m.den {
		return 0
	}
	return height/2 - float64(m.num)*height/float64(m.den)
}

// DividerPositions returns the y centers (mm, relative to the leaf center)
// of the horizontal dividers, top to bottom.
func DividerPositions(grid model.GridLayout, height float64) []float64 {
	marks := dividerMarks[grid]
	out := make([]float64, len(marks))
	for i, m := range marks {
		out[i] = markY(m, height)
	}
	return out
}

// GenerateAssembly produces the full part list for one leaf: stiles, rails,
// grid dividers, the fixed-panel center divider and the glass sheet, in
// that order. It never fails; a leaf too small for its profiles yields
// non-positive sizes. Use BuildAssembly to reject such input.
func GenerateAssembly(mech model.Mechanism, grid model.GridLayout, leafWidth, height float64) model.Assembly {
	railWidth := leafWidth - 2*model.ProfileWidth
	stileX := leafWidth/2 - model.ProfileWidth/2
	railY := height/2 - model.RailHeightRobust/2

	parts := make([]model.PhysicalPart, 0, 9)
	parts = append(parts,
		steel(model.PartStile, "Left Stile", -stileX, 0, model.ProfileWidth, height),
		steel(model.PartStile, "Right Stile", stileX, 0, model.ProfileWidth, height),
		steel(model.PartRail, "Top Rail", 0, railY, railWidth, model.RailHeightRobust),
		steel(model.PartRail, "Bottom Rail", 0, -railY, railWidth, model.RailHeightRobust),
	)

	for _, m := range dividerMarks[grid] {
		parts = append(parts, steel(model.PartDivider, m.label, 0, markY(m, height), railWidth, model.RailHeightSlim))
	}

	if mech.HasCenterDivider() {
		parts = append(parts, steel(model.PartDivider, "Center Vertical Divider", 0, 0,
			model.ProfileWidth, height-2*model.RailHeightRobust))
	}

	parts = append(parts, model.PhysicalPart{
		Kind:    model.PartGlass,
		Label:   "Main Glass Panel",
		Width:   railWidth - 2*model.GlassOffset,
		Height:  height - 2*model.RailHeightRobust - 2*model.GlassOffset,
		Depth:   model.GlassThickness,
		IsGlass: true,
	})

	return model.Assembly{
		Mechanism:  mech,
		GridLayout: grid,
		LeafWidth:  leafWidth,
		Height:     height,
		Parts:      parts,
	}
}

func steel(kind model.PartKind, label string, x, y, w, h float64) model.PhysicalPart {
	return model.PhysicalPart{
		Kind:   kind,
		Label:  label,
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		Depth:  model.ProfileDepth,
	}
}

// BuildAssembly checks the leaf is manufacturable before generating it.
// The returned error wraps ErrDegenerateGeometry and lists the reasons.
func BuildAssembly(mech model.Mechanism, grid model.GridLayout, leafWidth, height float64) (model.Assembly, error) {
	if check := CheckLeaf(leafWidth, height); !check.Valid {
		return model.Assembly{}, fmt.Errorf("%w: %s", ErrDegenerateGeometry, strings.Join(check.Errors, "; "))
	}
	return GenerateAssembly(mech, grid, leafWidth, height), nil
}
