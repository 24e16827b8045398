package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/DoorCraft/internal/archive"
	"github.com/piwi3910/DoorCraft/internal/model"
	"github.com/piwi3910/DoorCraft/internal/project"
)

// setupHome points the config directory at a fresh temp dir.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", project.DefaultConfigPath()}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func runJSON(t *testing.T, args ...string) quoteOutput {
	t.Helper()
	out, err := run(t, append([]string{"quote", "--json"}, args...)...)
	require.NoError(t, err)
	var q quoteOutput
	require.NoError(t, json.Unmarshal([]byte(out), &q), out)
	return q
}

func TestQuoteDefault(t *testing.T) {
	setupHome(t)
	out, err := run(t, "quote")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration")
	assert.Regexp(t, `Total\s+EUR 1751`, out)
}

func TestQuoteJSONClampsWidth(t *testing.T) {
	setupHome(t)
	q := runJSON(t, "--width", "5000", "--mechanism", "Hinged")
	assert.Equal(t, model.MechanismHinged, q.Configuration.Mechanism)
	assert.Equal(t, 1360.0, q.Configuration.OpeningWidth)
	assert.Empty(t, q.Reference)
}

func TestQuoteUnknownOption(t *testing.T) {
	setupHome(t)
	_, err := run(t, "quote", "--mechanism", "pivto")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "pivot"`)
}

func TestQuoteEnvOverride(t *testing.T) {
	setupHome(t)
	t.Setenv("DOORCRAFT_PRICES_BASE_FEE", "700")
	q := runJSON(t)
	assert.Equal(t, int64(1801), q.Price.TotalPrice)
}

func TestValidate(t *testing.T) {
	setupHome(t)

	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Equal(t, "OK\n", out)

	out, err = run(t, "validate", "--width", "5000")
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "error: width must be at most 1360mm")
}

func TestValidateFixedPanelHandleWarns(t *testing.T) {
	setupHome(t)
	out, err := run(t, "validate", "--mechanism", "fixed-panel", "--handle", "lever")
	require.NoError(t, err)
	assert.Contains(t, out, "warning:")
	assert.Contains(t, out, "OK")
}

func TestParts(t *testing.T) {
	setupHome(t)
	out, err := run(t, "parts")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 8, out)
	assert.True(t, strings.HasPrefix(lines[0], "PART"))
}

func TestCompare(t *testing.T) {
	setupHome(t)
	out, err := run(t, "compare")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 10, out)
	assert.Contains(t, lines[1], "Current Configuration")
	assert.Contains(t, lines[1], "EUR 1751")
}

func TestExportFormats(t *testing.T) {
	home := setupHome(t)
	for _, format := range []string{"pdf", "labels", "xlsx", "dxf"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(home, "door-"+format+".out")
			_, err := run(t, "export", "--format", format, "--out", path, "--cut-plan")
			require.NoError(t, err)
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestExportUnknownFormat(t *testing.T) {
	setupHome(t)
	_, err := run(t, "export", "--format", "svg")
	assert.ErrorContains(t, err, `unknown format "svg"`)
}

func TestCutplanKeepsRemnants(t *testing.T) {
	setupHome(t)
	out, err := run(t, "cutplan", "--keep-remnants")
	require.NoError(t, err)
	assert.Contains(t, out, "Overall yield")
	assert.Contains(t, out, "Kept ")

	inv, err := project.LoadInventory(project.DefaultInventoryPath(), 6000)
	require.NoError(t, err)
	assert.Greater(t, len(inv.Bars), 2)
}

func TestCutplanExplicitBar(t *testing.T) {
	setupHome(t)
	out, err := run(t, "cutplan", "--bar", "2000", "--kerf", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Unplaced: ")
}

func TestBatch(t *testing.T) {
	home := setupHome(t)
	in := filepath.Join(home, "orders.csv")
	require.NoError(t, os.WriteFile(in, []byte(
		"Name,Width,Height,Mechanism\nHall,1000,2400,pivot\nGarden,2000,2300,hinged\n"), 0o644))

	out, err := run(t, "batch", "--in", in)
	require.NoError(t, err)
	assert.Contains(t, out, "Quoted 2 configurations")
	_, err = os.Stat(filepath.Join(home, "orders-quotes.xlsx"))
	assert.NoError(t, err)
}

func TestBatchNoRows(t *testing.T) {
	home := setupHome(t)
	in := filepath.Join(home, "empty.csv")
	require.NoError(t, os.WriteFile(in, []byte("Name,Width,Height\n"), 0o644))

	_, err := run(t, "batch", "--in", in)
	assert.ErrorContains(t, err, "no configurations")
}

func TestPresets(t *testing.T) {
	setupHome(t)

	out, err := run(t, "presets", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No presets saved")

	_, err = run(t, "presets", "save", "hall", "--mechanism", "hinged", "--width", "1200",
		"--description", "Hallway door")
	require.NoError(t, err)

	out, err = run(t, "presets", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "hall")
	assert.Contains(t, out, "Hallway door")

	q := runJSON(t, "--preset", "hall")
	assert.Equal(t, model.MechanismHinged, q.Configuration.Mechanism)
	assert.Equal(t, 1200.0, q.Configuration.OpeningWidth)

	q = runJSON(t, "--preset", "hall", "--grid", "four-pane")
	assert.Equal(t, model.MechanismHinged, q.Configuration.Mechanism)
	assert.Equal(t, model.GridFourPane, q.Configuration.GridLayout)

	_, err = run(t, "presets", "delete", "hall")
	require.NoError(t, err)
	_, err = run(t, "presets", "delete", "hall")
	assert.ErrorContains(t, err, "not found")

	_, err = run(t, "quote", "--preset", "hall")
	assert.Error(t, err)
}

func TestQuoteSaveAndHistory(t *testing.T) {
	setupHome(t)

	out, err := run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No quotes archived")

	q := runJSON(t, "--save")
	require.NotEmpty(t, q.Reference)

	out, err = run(t, "history", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, q.Reference)
	assert.Contains(t, out, "EUR 1751")
}

func TestHistoryDelete(t *testing.T) {
	setupHome(t)
	q := runJSON(t, "--save")
	require.NotEmpty(t, q.Reference)

	out, err := run(t, "history", "delete", q.Reference)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted quote "+q.Reference)

	out, err = run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No quotes archived")

	_, err = run(t, "history", "delete", q.Reference)
	assert.ErrorIs(t, err, archive.ErrNotFound)
}

func TestArchiveDisabled(t *testing.T) {
	setupHome(t)
	cfg := model.DefaultAppConfig()
	cfg.ArchiveDriver = ""
	require.NoError(t, project.SaveAppConfig(project.DefaultConfigPath(), cfg))

	_, err := run(t, "history")
	assert.ErrorIs(t, err, errNoArchive)
}

func TestConfigInitAndShow(t *testing.T) {
	setupHome(t)

	out, err := run(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, project.DefaultConfigPath())

	_, err = run(t, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	out, err = run(t, "config", "show")
	require.NoError(t, err)
	var cfg model.AppConfig
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, model.DefaultAppConfig().CompanyName, cfg.CompanyName)
}

func TestBackupRoundTrip(t *testing.T) {
	home := setupHome(t)
	_, err := run(t, "presets", "save", "garden", "--mechanism", "hinged")
	require.NoError(t, err)

	backup := filepath.Join(home, "backup.json")
	_, err = run(t, "backup", "export", backup)
	require.NoError(t, err)

	_, err = run(t, "presets", "delete", "garden")
	require.NoError(t, err)

	out, err := run(t, "backup", "import", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "Restored 1 presets")

	store, err := project.LoadPresets(project.DefaultPresetPath())
	require.NoError(t, err)
	assert.Equal(t, []string{"garden"}, store.Names())
}
