package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names.
const (
	LayerFrame = "FRAME"
	LayerSteel = "STEEL"
	LayerGlass = "GLASS"
	LayerText  = "TEXT"
)

var shapeLayers = map[shapeKind]string{
	shapeFrame: LayerFrame,
	shapePanel: LayerGlass,
	shapeGlass: LayerGlass,
	shapeSteel: LayerSteel,
}

// ExportDXF writes the front elevation of doc in mm: every frame, steel
// and glass rectangle as four lines on its own layer, plus the opening
// size as text.
func ExportDXF(path string, doc Document) error {
	if err := doc.check(); err != nil {
		return err
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name  string
		color color.ColorNumber
	}{
		{LayerFrame, color.Green},
		{LayerSteel, color.White},
		{LayerGlass, color.Cyan},
		{LayerText, color.Yellow},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("add layer %s: %w", l.name, err)
		}
	}

	shapes, _, height := elevation(doc)
	for _, s := range shapes {
		if err := d.ChangeLayer(shapeLayers[s.kind]); err != nil {
			return err
		}
		if err := rectangle(d, s.x, s.y, s.w, s.h); err != nil {
			return fmt.Errorf("draw %s: %w", s.label, err)
		}
	}

	if err := d.ChangeLayer(LayerText); err != nil {
		return err
	}
	cfg := doc.Configuration
	caption := fmt.Sprintf("%.0f x %.0f mm %s %s", cfg.OpeningWidth, cfg.OpeningHeight, cfg.Mechanism, cfg.Finish)
	if _, err := d.Text(caption, 0, -150, 0, 60); err != nil {
		return err
	}
	if doc.Reference != "" {
		if _, err := d.Text(doc.Reference, 0, height+80, 0, 60); err != nil {
			return err
		}
	}

	return d.SaveAs(path)
}

// rectangle draws an axis-aligned rectangle as four lines.
func rectangle(d *drawing.Drawing, x, y, w, h float64) error {
	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return err
		}
	}
	return nil
}
