// Package export writes priced door orders to PDF quote sheets, part
// labels, Excel workbooks and DXF elevations.
package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/piwi3910/DoorCraft/internal/model"
)

// Document is one priced order as it is printed or exported.
type Document struct {
	Company       string
	Reference     string // Archive reference; empty for unsaved quotes
	Date          time.Time
	Configuration model.Configuration
	Envelope      model.Envelope
	Assembly      model.Assembly
	Price         model.PriceBreakdown
	CutPlan       *model.CutPlan // Optional; adds a cutting page
}

// ErrNoParts is returned when a document has no assembly to export.
var ErrNoParts = errors.New("no parts to export")

func (d Document) check() error {
	if len(d.Assembly.Parts) == 0 {
		return ErrNoParts
	}
	return nil
}

func (d Document) leaves() int {
	return d.Configuration.LeafCount.Leaves()
}

func (d Document) title() string {
	if d.Reference != "" {
		return "Quote " + d.Reference
	}
	return "Quote"
}

type row struct {
	label string
	value string
}

// configurationRows lists the order options as printed on the quote.
func (d Document) configurationRows() []row {
	c := d.Configuration
	return []row{
		{"Mechanism", string(c.Mechanism)},
		{"Leaves", string(c.LeafCount)},
		{"Side panels", string(c.SidePanels)},
		{"Grid layout", string(c.GridLayout)},
		{"Finish", string(c.Finish)},
		{"Handle", string(c.Handle)},
		{"Glass", string(c.GlassPattern)},
		{"Opening", fmt.Sprintf("%.0f x %.0f mm", c.OpeningWidth, c.OpeningHeight)},
	}
}

func (d Document) envelopeRows() []row {
	e := d.Envelope
	rows := []row{
		{"Leaf width", fmt.Sprintf("%.0f mm", e.DoorLeafWidth)},
		{"Hole width", fmt.Sprintf("%.0f mm", e.HoleWidth)},
		{"Width range", fmt.Sprintf("%.0f - %.0f mm", e.MinOpeningWidth, e.MaxOpeningWidth)},
	}
	if e.SidePanelWidth > 0 {
		rows = append(rows, row{"Side panel width", fmt.Sprintf("%.0f mm", e.SidePanelWidth)})
	}
	return rows
}

// priceRows lists the breakdown lines with non-zero amounts, then the total.
func (d Document) priceRows() []row {
	p := d.Price
	lines := []struct {
		label  string
		amount int64
	}{
		{fmt.Sprintf("Steel (%.2f m)", p.SteelLengthMeters), p.SteelCost},
		{fmt.Sprintf("Glass (%.2f m2)", p.GlassAreaSqMeters), p.GlassCost},
		{"Base fee", p.BaseFee},
		{"Mechanism surcharge", p.MechanismSurcharge},
		{"Side panels", p.SidePanelSurcharge},
		{"Handle", p.HandleCost},
	}
	var rows []row
	for _, l := range lines {
		if l.amount == 0 {
			continue
		}
		rows = append(rows, row{l.label, money(p.Currency, l.amount)})
	}
	return append(rows, row{"Total", money(p.Currency, p.TotalPrice)})
}

func money(currency string, amount int64) string {
	return fmt.Sprintf("%s %d", currency, amount)
}

// partSize describes a part as cut: tube length for steel, sheet size for glass.
func partSize(p model.PhysicalPart) string {
	if p.IsGlass {
		return fmt.Sprintf("%.0f x %.0f x %.0f mm", p.Width, p.Height, p.Depth)
	}
	return fmt.Sprintf("%.0f mm", p.Length())
}
