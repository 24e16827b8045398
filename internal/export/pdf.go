package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/DoorCraft/internal/model"
)

// rgb is a fill or stroke color.
type rgb struct {
	R, G, B int
}

// cutColors colors consecutive cuts on a bar.
var cutColors = []rgb{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

var (
	glassColor = rgb{R: 200, G: 225, B: 240}
	frameColor = rgb{R: 90, G: 90, B: 90}
)

// finishColor approximates the powder coat color of a finish.
func finishColor(f model.Finish) rgb {
	switch f {
	case model.FinishBronze:
		return rgb{R: 140, G: 110, B: 70}
	case model.FinishAnthracite:
		return rgb{R: 60, G: 64, B: 68}
	default:
		return rgb{R: 25, G: 25, B: 25}
	}
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	drawAreaW    = 120.0
	tableLeft    = marginLeft + drawAreaW + 20.0
)

// ExportPDF writes the quote sheet for doc to path. The first page shows
// the elevation with configuration and price, the second the part list,
// and a third page the bar cutting plan when doc carries one.
func ExportPDF(path string, doc Document) error {
	pdf, err := buildPDF(doc)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WritePDF renders the quote sheet for doc to w.
func WritePDF(w io.Writer, doc Document) error {
	pdf, err := buildPDF(doc)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func buildPDF(doc Document) (*fpdf.Fpdf, error) {
	if err := doc.check(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(doc.title(), false)
	pdf.SetCreator(doc.Company, false)

	pdf.AddPage()
	renderQuotePage(pdf, doc)

	pdf.AddPage()
	renderPartsPage(pdf, doc)

	if doc.CutPlan != nil && len(doc.CutPlan.Bars)+len(doc.CutPlan.Unplaced) > 0 {
		pdf.AddPage()
		renderCutPlanPage(pdf, *doc.CutPlan)
	}

	if pdf.Err() {
		return nil, pdf.Error()
	}
	return pdf, nil
}

func renderHeader(pdf *fpdf.Fpdf, doc Document, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginLeft, marginTop)
	right := doc.Company
	if !doc.Date.IsZero() {
		right += "  " + doc.Date.Format("2006-01-02")
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, right, "", 0, "R", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+headerHeight, pageWidth-marginRight, marginTop+headerHeight)
}

func renderFooter(pdf *fpdf.Fpdf, doc Document) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	text := fmt.Sprintf("Generated by %s - page %d", doc.Company, pdf.PageNo())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, text, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// renderQuotePage draws the elevation on the left and the option, size
// and price tables on the right.
func renderQuotePage(pdf *fpdf.Fpdf, doc Document) {
	renderHeader(pdf, doc, doc.title())

	drawElevation(pdf, doc, marginLeft, drawAreaTop, drawAreaW, pageHeight-drawAreaTop-marginBottom-10)

	y := drawAreaTop
	y = drawTable(pdf, "Configuration", doc.configurationRows(), y)
	y = drawTable(pdf, "Dimensions", doc.envelopeRows(), y+4)
	drawTable(pdf, "Price", doc.priceRows(), y+4)

	renderFooter(pdf, doc)
}

// drawTable prints a titled two-column table at tableLeft and returns the
// y below it. The last row of the price table is printed bold.
func drawTable(pdf *fpdf.Fpdf, title string, rows []row, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(tableLeft, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	y += 8

	for i, r := range rows {
		style := ""
		if title == "Price" && i == len(rows)-1 {
			style = "B"
			pdf.SetDrawColor(0, 0, 0)
			pdf.SetLineWidth(0.3)
			pdf.Line(tableLeft+5, y, tableLeft+110, y)
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.SetXY(tableLeft+5, y)
		pdf.CellFormat(55, 5.5, r.label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(50, 5.5, r.value, "", 0, "R", false, 0, "")
		y += 5.5
	}
	return y
}

// drawElevation draws the front view of the whole opening scaled into the
// given box.
func drawElevation(pdf *fpdf.Fpdf, doc Document, x, y, w, h float64) {
	shapes, totalW, totalH := elevation(doc)
	scale := math.Min(w/totalW, h/totalH)

	offsetX := x + (w-totalW*scale)/2
	offsetY := y
	coat := finishColor(doc.Configuration.Finish)

	for _, s := range shapes {
		switch s.kind {
		case shapeFrame:
			setFill(pdf, frameColor)
			pdf.SetDrawColor(30, 30, 30)
			pdf.SetLineWidth(0.3)
		case shapePanel:
			setFill(pdf, glassColor)
			pdf.SetDrawColor(30, 30, 30)
			pdf.SetLineWidth(0.2)
		case shapeGlass:
			setFill(pdf, glassColor)
			pdf.SetDrawColor(120, 160, 190)
			pdf.SetLineWidth(0.1)
		case shapeSteel:
			setFill(pdf, coat)
			pdf.SetDrawColor(0, 0, 0)
			pdf.SetLineWidth(0.1)
		}
		pdf.Rect(offsetX+s.x*scale, offsetY+(totalH-s.y-s.h)*scale, s.w*scale, s.h*scale, "FD")
	}

	cfg := doc.Configuration
	drawDimensionAnnotations(pdf, cfg.OpeningWidth, cfg.OpeningHeight, offsetX, offsetY, totalW*scale, totalH*scale)
}

func setFill(pdf *fpdf.Fpdf, c rgb) {
	pdf.SetFillColor(c.R, c.G, c.B)
}

// drawDimensionAnnotations adds width and height labels outside the drawing.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, width, height, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// renderPartsPage prints the part list of one leaf with quantities for
// the whole order.
func renderPartsPage(pdf *fpdf.Fpdf, doc Document) {
	renderHeader(pdf, doc, "Part List")

	y := drawAreaTop
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, y)
	summary := fmt.Sprintf("%d leaf/leaves of %.0f x %.0f mm, %s",
		doc.leaves(), doc.Assembly.LeafWidth, doc.Assembly.Height, doc.Configuration.Finish)
	pdf.CellFormat(200, 6, summary, "", 0, "L", false, 0, "")
	y += 10

	colWidths := []float64{70, 30, 30, 70, 25, 40}
	headers := []string{"Part", "Kind", "Profile", "Size", "Qty", "Position (x, y)"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range doc.Assembly.Parts {
		profile := string(p.Profile())
		if profile == "" {
			profile = "-"
		}
		rowData := []string{
			p.Label,
			string(p.Kind),
			profile,
			partSize(p),
			fmt.Sprintf("%d", doc.leaves()),
			fmt.Sprintf("%.0f, %.0f", p.X, p.Y),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			align := "C"
			if j == 0 {
				align = "L"
			}
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, align, true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	renderFooter(pdf, doc)
}

// renderCutPlanPage draws each stock bar as a strip with its cuts.
func renderCutPlanPage(pdf *fpdf.Fpdf, plan model.CutPlan) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Cutting Plan", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Bars: %d | Efficiency: %.1f%% | Unplaced cuts: %d",
		len(plan.Bars), plan.TotalEfficiency(), len(plan.Unplaced))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	const (
		stripH   = 8.0
		stripGap = 7.0
		labelW   = 45.0
	)
	drawWidth := pageWidth - marginLeft - marginRight - labelW

	longest := 0.0
	for _, b := range plan.Bars {
		longest = math.Max(longest, b.Stock.Length)
	}

	y := drawAreaTop
	for i, b := range plan.Bars {
		if y+stripH > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		scale := drawWidth / longest

		pdf.SetFont("Helvetica", "", 8)
		pdf.SetXY(marginLeft, y+1)
		pdf.CellFormat(labelW, 5, fmt.Sprintf("%d. %s %.0f", i+1, b.Stock.Name, b.Stock.Length), "", 0, "L", false, 0, "")

		x0 := marginLeft + labelW
		pdf.SetFillColor(220, 220, 220)
		pdf.SetDrawColor(100, 100, 100)
		pdf.SetLineWidth(0.2)
		pdf.Rect(x0, y, b.Stock.Length*scale, stripH, "FD")

		x := x0
		for j, c := range b.Cuts {
			w := c.Length * scale
			setFill(pdf, cutColors[j%len(cutColors)])
			pdf.SetDrawColor(30, 30, 30)
			pdf.Rect(x, y, w, stripH, "FD")
			label := fmt.Sprintf("%.0f", c.Length)
			pdf.SetFont("Helvetica", "", 6)
			if lw := pdf.GetStringWidth(label); lw < w-1 {
				pdf.SetXY(x+(w-lw)/2, y+2)
				pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
			}
			x += (c.Length + b.Kerf) * scale
		}

		pdf.SetFont("Helvetica", "I", 7)
		pdf.SetXY(x0, y+stripH)
		pdf.CellFormat(drawWidth, 4, fmt.Sprintf("rest %.0f mm, %.1f%% used", b.Remaining(), b.Efficiency()), "", 0, "L", false, 0, "")
		y += stripH + stripGap
	}

	if len(plan.Unplaced) > 0 {
		y += 4
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Cuts", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, c := range plan.Unplaced {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s (leaf %d): %.0f mm %s", c.Label, c.Leaf, c.Length, c.Profile)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}
}
