package export

import "github.com/piwi3910/DoorCraft/internal/model"

type shapeKind int

const (
	shapeFrame shapeKind = iota
	shapePanel
	shapeGlass
	shapeSteel
)

// shape is one rectangle of the front view in mm, lower-left corner with
// y pointing up and the origin at the outer frame corner on the floor.
type shape struct {
	kind  shapeKind
	label string
	x, y  float64
	w, h  float64
}

// elevation lays out the whole opening: frame, side panels and every leaf
// with its parts, left to right. It returns the shapes back to front and
// the overall size.
func elevation(doc Document) (shapes []shape, width, height float64) {
	cfg := doc.Configuration
	env := doc.Envelope
	asm := doc.Assembly
	leaves := doc.leaves()

	leftPanel := cfg.SidePanels == model.SidePanelsLeft || cfg.SidePanels == model.SidePanelsBoth
	rightPanel := cfg.SidePanels == model.SidePanelsRight || cfg.SidePanels == model.SidePanelsBoth

	width = 2*model.FrameProfileWidth + asm.LeafWidth*float64(leaves) +
		env.SidePanelWidth*float64(cfg.SidePanels.Count())
	height = asm.Height + model.FrameProfileWidth

	shapes = append(shapes, shape{kind: shapeFrame, label: "Frame", w: width, h: height})

	cursor := model.FrameProfileWidth
	if leftPanel {
		shapes = append(shapes, shape{kind: shapePanel, label: "Left Side Panel", x: cursor, w: env.SidePanelWidth, h: asm.Height})
		cursor += env.SidePanelWidth
	}
	for i := 0; i < leaves; i++ {
		shapes = append(shapes, leafShapes(asm, cursor)...)
		cursor += asm.LeafWidth
	}
	if rightPanel {
		shapes = append(shapes, shape{kind: shapePanel, label: "Right Side Panel", x: cursor, w: env.SidePanelWidth, h: asm.Height})
	}
	return shapes, width, height
}

// leafShapes places one leaf with its left edge at x. Glass comes first
// so the profiles are drawn over its edges.
func leafShapes(asm model.Assembly, x float64) []shape {
	cx := x + asm.LeafWidth/2
	cy := asm.Height / 2

	out := make([]shape, 0, len(asm.Parts))
	place := func(p model.PhysicalPart, kind shapeKind) {
		out = append(out, shape{
			kind:  kind,
			label: p.Label,
			x:     cx + p.X - p.Width/2,
			y:     cy + p.Y - p.Height/2,
			w:     p.Width,
			h:     p.Height,
		})
	}
	for _, p := range asm.GlassParts() {
		place(p, shapeGlass)
	}
	for _, p := range asm.SteelParts() {
		place(p, shapeSteel)
	}
	return out
}
