package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/DoorCraft/internal/engine"
	"github.com/piwi3910/DoorCraft/internal/model"
)

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, buildTestDocument(model.DefaultConfiguration())))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Quote Q-20260314-ABC123\n"))
	assert.Contains(t, out, "Configuration")
	assert.Contains(t, out, "1000 x 2400 mm")
	assert.Contains(t, out, "840 mm")
	assert.Regexp(t, `Total\s+EUR 1751`, out)
}

func TestWritePartsText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePartsText(&buf, buildTestDocument(doubleWithPanels())))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	doc := buildTestDocument(doubleWithPanels())
	require.Len(t, lines, 1+len(doc.Assembly.Parts))
	assert.True(t, strings.HasPrefix(lines[0], "PART"))
	for _, l := range lines[1:] {
		assert.True(t, strings.HasSuffix(l, " 2"), l)
	}
}

func TestWritePartsTextEmpty(t *testing.T) {
	assert.ErrorIs(t, WritePartsText(&bytes.Buffer{}, Document{}), ErrNoParts)
}

func TestWriteCutPlanText(t *testing.T) {
	doc := buildTestDocument(model.DefaultConfiguration())
	plan := engine.NewCutPlanner(model.DefaultInventory(6000), 3).Plan(doc.Assembly, 1)

	var buf bytes.Buffer
	require.NoError(t, WriteCutPlanText(&buf, plan))
	out := buf.String()
	assert.Contains(t, out, "Overall yield")
	assert.NotContains(t, out, "Unplaced")

	buf.Reset()
	empty := engine.NewCutPlanner(model.Inventory{}, 3).Plan(doc.Assembly, 1)
	require.NoError(t, WriteCutPlanText(&buf, empty))
	assert.Equal(t, len(doc.Assembly.SteelParts()), strings.Count(buf.String(), "Unplaced:"))
}
