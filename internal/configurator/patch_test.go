package configurator

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/DoorCraft/internal/model"
)

func TestPatch_JSONOmitsUnset(t *testing.T) {
	var p Patch
	require.NoError(t, json.Unmarshal([]byte(`{"opening_width": 1200, "handle_type": "lever"}`), &p))

	assert.Equal(t, []string{"handle_type", "opening_width"}, p.Fields())
	assert.Nil(t, p.Mechanism)
	assert.False(t, p.IsEmpty())
	assert.True(t, Patch{}.IsEmpty())
}

func TestPatch_Normalize(t *testing.T) {
	mech := model.Mechanism("Scharnier")
	leaves := model.LeafCount("DOUBLE")
	handle := model.Handle("knob")
	p := Patch{Mechanism: &mech, LeafCount: &leaves, Handle: &handle}

	err := p.Normalize()
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnknownValue))
	assert.Equal(t, model.MechanismHinged, *p.Mechanism)
	assert.Equal(t, model.LeafDouble, *p.LeafCount)
	assert.Nil(t, p.Handle)
}

func TestPatchFrom_RoundTrip(t *testing.T) {
	cfg := model.DefaultConfiguration()
	cfg.Finish = model.FinishAnthracite
	assert.Equal(t, cfg, PatchFrom(cfg).Apply(model.Configuration{}))
}

func TestPatch_Stages(t *testing.T) {
	finish := model.FinishBronze
	assert.Equal(t, stages{}, Patch{Finish: &finish}.stages())

	handle := model.HandleLever
	assert.Equal(t, stages{price: true}, Patch{Handle: &handle}.stages())

	h := 2000.0
	assert.Equal(t, stages{height: true, geometry: true, price: true}, Patch{OpeningHeight: &h}.stages())

	w := 1000.0
	assert.Equal(t, stages{envelope: true, geometry: true, price: true}, Patch{OpeningWidth: &w}.stages())
}
