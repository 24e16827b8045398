package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/DoorCraft/internal/engine"
	"github.com/piwi3910/DoorCraft/internal/model"
)

func TestExportExcel_Sheets(t *testing.T) {
	doc := buildTestDocument(model.DefaultConfiguration())
	plan := engine.NewCutPlanner(model.DefaultInventory(6000), 3).Plan(doc.Assembly, doc.leaves())
	doc.CutPlan = &plan

	path := filepath.Join(t.TempDir(), "quote.xlsx")
	require.NoError(t, ExportExcel(path, doc))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetConfiguration, SheetParts, SheetPrice, SheetCutPlan}, f.GetSheetList())

	parts, err := f.GetRows(SheetParts)
	require.NoError(t, err)
	assert.Len(t, parts, 1+len(doc.Assembly.Parts))
	assert.Equal(t, "Left Stile", parts[1][0])

	total, err := f.GetCellValue(SheetPrice, "C8")
	require.NoError(t, err)
	assert.Equal(t, "1751", total)

	ref, err := f.GetCellValue(SheetConfiguration, "B2")
	require.NoError(t, err)
	assert.Equal(t, doc.Reference, ref)

	bars, err := f.GetRows(SheetCutPlan)
	require.NoError(t, err)
	assert.Len(t, bars, 1+len(plan.Bars))
}

func TestExportExcel_WithoutCutPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.xlsx")
	require.NoError(t, ExportExcel(path, buildTestDocument(doubleWithPanels())))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetConfiguration, SheetParts, SheetPrice}, f.GetSheetList())
}

func TestWriteExcel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, buildTestDocument(model.DefaultConfiguration())))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), SheetPrice)
}

func TestExportExcel_NoParts(t *testing.T) {
	err := ExportExcel(filepath.Join(t.TempDir(), "x.xlsx"), Document{})
	assert.ErrorIs(t, err, ErrNoParts)
}

func TestExportBatchExcel(t *testing.T) {
	a := buildTestDocument(model.DefaultConfiguration())
	b := buildTestDocument(doubleWithPanels())
	lines := []BatchLine{
		{Name: "Hall", Configuration: a.Configuration, Envelope: a.Envelope, Price: a.Price},
		{Name: "Garden", Configuration: b.Configuration, Envelope: b.Envelope, Price: b.Price, Warnings: []string{"check wall"}},
	}

	path := filepath.Join(t.TempDir(), "batch.xlsx")
	require.NoError(t, ExportBatchExcel(path, lines))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetBatch)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Hall", rows[1][0])
	assert.Equal(t, "1751", rows[1][12])
	assert.Equal(t, "check wall", rows[2][13])
}

func TestExportBatchExcel_Empty(t *testing.T) {
	assert.Error(t, ExportBatchExcel(filepath.Join(t.TempDir(), "x.xlsx"), nil))
}
