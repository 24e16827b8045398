// Package importer reads batches of door configurations from CSV and Excel
// files. It supports automatic delimiter detection, flexible column mapping,
// and case-insensitive header recognition in English and Dutch.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/DoorCraft/internal/engine"
	"github.com/piwi3910/DoorCraft/internal/model"
)

// BatchRow is one configuration read from an import file.
type BatchRow struct {
	Line          int // 1-based line or row number in the source
	Name          string
	Configuration model.Configuration
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Rows     []BatchRow
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// A role set to -1 is absent; its value falls back to the defaults.
type ColumnMapping struct {
	Name       int
	Mechanism  int
	Leaves     int
	SidePanels int
	Grid       int
	Finish     int
	Handle     int
	Glass      int
	Width      int
	Height     int
}

// columnRole ties a role to its accepted header aliases (all lowercase).
type columnRole struct {
	aliases []string
	field   func(*ColumnMapping) *int
}

var columnRoles = []columnRole{
	{[]string{"name", "label", "reference", "ref", "customer", "naam", "omschrijving"},
		func(m *ColumnMapping) *int { return &m.Name }},
	{[]string{"mechanism", "door_mechanism", "type", "door type", "mechanisme"},
		func(m *ColumnMapping) *int { return &m.Mechanism }},
	{[]string{"leaves", "leaf_count", "leaf count", "doors", "vleugels"},
		func(m *ColumnMapping) *int { return &m.Leaves }},
	{[]string{"side_panels", "side panels", "sidepanels", "panels", "zijpanelen", "zijpaneel"},
		func(m *ColumnMapping) *int { return &m.SidePanels }},
	{[]string{"grid", "grid_layout", "grid layout", "layout", "verdeling"},
		func(m *ColumnMapping) *int { return &m.Grid }},
	{[]string{"finish", "color", "colour", "kleur", "afwerking"},
		func(m *ColumnMapping) *int { return &m.Finish }},
	{[]string{"handle", "handle_type", "handle type", "greep"},
		func(m *ColumnMapping) *int { return &m.Handle }},
	{[]string{"glass", "glass_pattern", "glass pattern", "glas"},
		func(m *ColumnMapping) *int { return &m.Glass }},
	{[]string{"width", "w", "opening_width", "opening width", "breedte", "b"},
		func(m *ColumnMapping) *int { return &m.Width }},
	{[]string{"height", "h", "opening_height", "opening height", "hoogte"},
		func(m *ColumnMapping) *int { return &m.Height }},
}

// positionalMapping is used when the first row is not a header:
// Name, Width, Height, Mechanism, Leaves, Side panels, Grid, Finish, Handle, Glass.
var positionalMapping = ColumnMapping{
	Name:       0,
	Width:      1,
	Height:     2,
	Mechanism:  3,
	Leaves:     4,
	SidePanels: 5,
	Grid:       6,
	Finish:     7,
	Handle:     8,
	Glass:      9,
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Matching is case-insensitive; spaces, underscores and dashes are
// interchangeable. Returns the mapping and true if a header was detected,
// or the positional mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1}

	isHeader := false
	for i, cell := range row {
		normalized := normalizeHeader(cell)
		for _, role := range columnRoles {
			for _, alias := range role.aliases {
				if normalized != normalizeHeader(alias) {
					continue
				}
				isHeader = true
				if idx := role.field(&mapping); *idx == -1 {
					*idx = i
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping, false
	}
	return mapping, true
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", " ", "-", " ").Replace(s)
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseMillimeters accepts "1000", "1000.5" and the decimal comma "1000,5".
func parseMillimeters(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "mm"))
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}

// parseRow extracts a configuration from a row using the given column
// mapping. Options left blank keep their value in defaults. Returns the
// row, any error messages, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, defaults model.Configuration, rowLabel string, count int) (BatchRow, []string, []string) {
	var errs, warnings []string
	cfg := defaults

	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Door %d", count+1)
	}

	option := func(idx int, parse func(string) error) {
		cell := getCell(row, idx)
		if cell == "" {
			return
		}
		if err := parse(cell); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", rowLabel, err))
		}
	}
	option(mapping.Mechanism, parseInto(&cfg.Mechanism, model.ParseMechanism))
	option(mapping.Leaves, parseInto(&cfg.LeafCount, model.ParseLeafCount))
	option(mapping.SidePanels, parseInto(&cfg.SidePanels, model.ParseSidePanels))
	option(mapping.Grid, parseInto(&cfg.GridLayout, model.ParseGridLayout))
	option(mapping.Finish, parseInto(&cfg.Finish, model.ParseFinish))
	option(mapping.Handle, parseInto(&cfg.Handle, model.ParseHandle))
	option(mapping.Glass, parseInto(&cfg.GlassPattern, model.ParseGlassPattern))

	dims := []struct {
		label string
		idx   int
		dst   *float64
	}{
		{"width", mapping.Width, &cfg.OpeningWidth},
		{"height", mapping.Height, &cfg.OpeningHeight},
	}
	for _, d := range dims {
		cell := getCell(row, d.idx)
		if cell == "" {
			errs = append(errs, fmt.Sprintf("%s: Missing %s value", rowLabel, d.label))
			continue
		}
		v, err := parseMillimeters(cell)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, d.label, cell))
			continue
		}
		if v <= 0 {
			errs = append(errs, fmt.Sprintf("%s: %s must be positive", rowLabel, strings.ToUpper(d.label[:1])+d.label[1:]))
			continue
		}
		*d.dst = v
	}

	if len(errs) > 0 {
		return BatchRow{}, errs, nil
	}

	if w := engine.ClampOpeningWidth(cfg.OpeningWidth, cfg.LeafCount, cfg.SidePanels); w != cfg.OpeningWidth {
		warnings = append(warnings, fmt.Sprintf("%s: width %.0fmm adjusted to %.0fmm", rowLabel, cfg.OpeningWidth, w))
		cfg.OpeningWidth = w
	}
	if h := engine.ClampOpeningHeight(cfg.OpeningHeight); h != cfg.OpeningHeight {
		warnings = append(warnings, fmt.Sprintf("%s: height %.0fmm adjusted to %.0fmm", rowLabel, cfg.OpeningHeight, h))
		cfg.OpeningHeight = h
	}
	if cfg.Handle != model.HandleNone && !cfg.Mechanism.AcceptsHandle() {
		warnings = append(warnings, fmt.Sprintf("%s: %s does not take a handle", rowLabel, cfg.Mechanism))
	}

	return BatchRow{Name: name, Configuration: cfg}, nil, warnings
}

// parseInto adapts a model parser to store its result in dst.
func parseInto[T any](dst *T, parse func(string) (T, error)) func(string) error {
	return func(s string) error {
		v, err := parse(s)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Import reads a batch file, choosing CSV or Excel by extension.
func Import(path string, defaults model.Configuration) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ImportExcel(path, defaults)
	case ".csv", ".txt", ".tsv":
		return ImportCSV(path, defaults)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported file type %q (expected .csv or .xlsx)", filepath.Ext(path))}}
	}
}

// ImportCSV imports configurations from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string, defaults model.Configuration) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", defaults, result.Warnings)
}

// ImportCSVFromReader imports configurations from a CSV reader with a
// known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, defaults model.Configuration) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", defaults, nil)
}

// ImportExcel imports configurations from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string, defaults model.Configuration) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", defaults, nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into a configuration.
func importFromRows(rows [][]string, rowPrefix string, defaults model.Configuration, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// A non-numeric width means an unrecognized header row.
		if _, err := parseMillimeters(rows[0][1]); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		br, errs, warnings := parseRow(row, mapping, defaults, rowLabel, len(result.Rows))
		if len(errs) > 0 {
			result.Errors = append(result.Errors, errs...)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)

		br.Line = lineNum
		result.Rows = append(result.Rows, br)
	}

	return result
}
