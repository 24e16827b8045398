package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/DoorCraft/internal/model"
)

// Sheet names of the order workbook.
const (
	SheetConfiguration = "Configuration"
	SheetParts         = "Parts"
	SheetPrice         = "Price"
	SheetCutPlan       = "Cut Plan"
	SheetBatch         = "Quotes"
)

// BatchLine is one priced configuration of a batch run.
type BatchLine struct {
	Name          string
	Configuration model.Configuration
	Envelope      model.Envelope
	Price         model.PriceBreakdown
	Warnings      []string
}

// ExportExcel writes doc to an .xlsx workbook with one sheet each for the
// configuration, the part list, the price and, when present, the cut plan.
func ExportExcel(path string, doc Document) error {
	f, err := buildWorkbook(doc)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// WriteExcel writes the workbook for doc to w.
func WriteExcel(w io.Writer, doc Document) error {
	f, err := buildWorkbook(doc)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

func buildWorkbook(doc Document) (*excelize.File, error) {
	if err := doc.check(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	bold, err := headerStyle(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetName("Sheet1", SheetConfiguration); err != nil {
		f.Close()
		return nil, err
	}
	confRows := [][]any{{"Option", "Value"}}
	if doc.Reference != "" {
		confRows = append(confRows, []any{"Reference", doc.Reference})
	}
	for _, r := range append(doc.configurationRows(), doc.envelopeRows()...) {
		confRows = append(confRows, []any{r.label, r.value})
	}

	partRows := [][]any{{"Part", "Kind", "Profile", "Length (mm)", "Width (mm)", "Height (mm)", "Depth (mm)", "Qty"}}
	for _, p := range doc.Assembly.Parts {
		var length any
		if !p.IsGlass {
			length = p.Length()
		}
		partRows = append(partRows, []any{
			p.Label, string(p.Kind), string(p.Profile()), length, p.Width, p.Height, p.Depth, doc.leaves(),
		})
	}

	p := doc.Price
	priceRows := [][]any{
		{"Item", "Quantity", "Amount (" + p.Currency + ")"},
		{"Steel", p.SteelLengthMeters, p.SteelCost},
		{"Glass", p.GlassAreaSqMeters, p.GlassCost},
		{"Base fee", nil, p.BaseFee},
		{"Mechanism surcharge", nil, p.MechanismSurcharge},
		{"Side panels", doc.Configuration.SidePanels.Count(), p.SidePanelSurcharge},
		{"Handle", string(doc.Configuration.Handle), p.HandleCost},
		{"Total", nil, p.TotalPrice},
	}

	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetConfiguration, confRows},
		{SheetParts, partRows},
		{SheetPrice, priceRows},
	}
	if doc.CutPlan != nil {
		sheets = append(sheets, struct {
			name string
			rows [][]any
		}{SheetCutPlan, cutPlanRows(*doc.CutPlan)})
	}

	for _, s := range sheets {
		if s.name != SheetConfiguration {
			if _, err := f.NewSheet(s.name); err != nil {
				f.Close()
				return nil, err
			}
		}
		if err := writeRows(f, s.name, s.rows, bold); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %s: %w", s.name, err)
		}
	}
	return f, nil
}

func cutPlanRows(plan model.CutPlan) [][]any {
	rows := [][]any{{"Bar", "Stock", "Profile", "Bar length (mm)", "Cuts", "Remaining (mm)", "Efficiency (%)"}}
	for i, b := range plan.Bars {
		cuts := make([]string, len(b.Cuts))
		for j, c := range b.Cuts {
			cuts[j] = fmt.Sprintf("%s L%d %.0f", c.Label, c.Leaf, c.Length)
		}
		rows = append(rows, []any{
			i + 1, b.Stock.Name, string(b.Stock.Profile), b.Stock.Length,
			strings.Join(cuts, "; "), b.Remaining(), fmt.Sprintf("%.1f", b.Efficiency()),
		})
	}
	for _, c := range plan.Unplaced {
		rows = append(rows, []any{"unplaced", c.Label, string(c.Profile), nil, fmt.Sprintf("L%d %.0f", c.Leaf, c.Length)})
	}
	return rows
}

// ExportBatchExcel writes one row per priced configuration.
func ExportBatchExcel(path string, lines []BatchLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("no quotes to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := headerStyle(f)
	if err != nil {
		return err
	}
	if err := f.SetSheetName("Sheet1", SheetBatch); err != nil {
		return err
	}

	rows := [][]any{{
		"Name", "Mechanism", "Leaves", "Side panels", "Grid", "Finish", "Handle", "Glass",
		"Width (mm)", "Height (mm)", "Leaf width (mm)", "Currency", "Total", "Warnings",
	}}
	for _, l := range lines {
		c := l.Configuration
		rows = append(rows, []any{
			l.Name, string(c.Mechanism), string(c.LeafCount), string(c.SidePanels), string(c.GridLayout),
			string(c.Finish), string(c.Handle), string(c.GlassPattern),
			c.OpeningWidth, c.OpeningHeight, l.Envelope.DoorLeafWidth,
			l.Price.Currency, l.Price.TotalPrice, strings.Join(l.Warnings, "; "),
		})
	}
	if err := writeRows(f, SheetBatch, rows, bold); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
}

// writeRows fills sheet from A1 and styles the first row as a header.
func writeRows(f *excelize.File, sheet string, rows [][]any, header int) error {
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, header); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "A", 28)
}
