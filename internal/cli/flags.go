package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/DoorCraft/internal/configurator"
	"github.com/piwi3910/DoorCraft/internal/export"
	"github.com/piwi3910/DoorCraft/internal/model"
	"github.com/piwi3910/DoorCraft/internal/project"
)

// configFlags are the configuration options shared by every command that
// works on a single door. Unset flags keep the preset or default value.
type configFlags struct {
	mechanism  string
	leaves     string
	sidePanels string
	grid       string
	finish     string
	handle     string
	glass      string
	width      float64
	height     float64
	preset     string
}

func (f *configFlags) register(c *cobra.Command) {
	fs := c.Flags()
	fs.StringVar(&f.mechanism, "mechanism", "", "door mechanism: pivot, hinged, fixed-panel")
	fs.StringVar(&f.leaves, "leaves", "", "leaf count: single, double")
	fs.StringVar(&f.sidePanels, "side-panels", "", "side panels: none, left, right, both")
	fs.StringVar(&f.grid, "grid", "", "grid layout: none, three-pane, four-pane")
	fs.StringVar(&f.finish, "finish", "", "finish: black, bronze, anthracite")
	fs.StringVar(&f.handle, "handle", "", "handle: u-handle, lever, bracket, corner, crescent, oval, none")
	fs.StringVar(&f.glass, "glass", "", "glass pattern: standard, rounded-corners, u-shape")
	fs.Float64Var(&f.width, "width", 0, "total opening width in mm")
	fs.Float64Var(&f.height, "height", 0, "opening height in mm")
	fs.StringVar(&f.preset, "preset", "", "start from a saved preset (name or ID)")
}

// patch turns the flags the user set into a Patch. Option values are
// matched case-insensitively; unknown ones fail with a suggestion.
func (f *configFlags) patch(c *cobra.Command) (configurator.Patch, error) {
	var (
		p    configurator.Patch
		errs []error
	)
	fs := c.Flags()
	setOption(fs.Changed("mechanism"), f.mechanism, model.ParseMechanism, &p.Mechanism, &errs)
	setOption(fs.Changed("leaves"), f.leaves, model.ParseLeafCount, &p.LeafCount, &errs)
	setOption(fs.Changed("side-panels"), f.sidePanels, model.ParseSidePanels, &p.SidePanels, &errs)
	setOption(fs.Changed("grid"), f.grid, model.ParseGridLayout, &p.GridLayout, &errs)
	setOption(fs.Changed("finish"), f.finish, model.ParseFinish, &p.Finish, &errs)
	setOption(fs.Changed("handle"), f.handle, model.ParseHandle, &p.Handle, &errs)
	setOption(fs.Changed("glass"), f.glass, model.ParseGlassPattern, &p.GlassPattern, &errs)
	if fs.Changed("width") {
		w := f.width
		p.OpeningWidth = &w
	}
	if fs.Changed("height") {
		h := f.height
		p.OpeningHeight = &h
	}
	return p, errors.Join(errs...)
}

func setOption[T ~string](changed bool, raw string, parse func(string) (T, error), dst **T, errs *[]error) {
	if !changed {
		return
	}
	v, err := parse(raw)
	if err != nil {
		*errs = append(*errs, err)
		return
	}
	*dst = &v
}

// base is the configuration the flags are applied to.
func (f *configFlags) base(a *app) (model.Configuration, error) {
	if f.preset == "" {
		return a.defaults, nil
	}
	p, err := project.FindPreset(project.DefaultPresetPath(), f.preset)
	if err != nil {
		return model.Configuration{}, err
	}
	return p.Configuration, nil
}

// state derives the clamped state for the flags.
func (f *configFlags) state(c *cobra.Command, a *app) (configurator.DerivedState, error) {
	base, err := f.base(a)
	if err != nil {
		return configurator.DerivedState{}, err
	}
	p, err := f.patch(c)
	if err != nil {
		return configurator.DerivedState{}, err
	}
	store := a.newStore(base)
	if p.IsEmpty() {
		return store.State(), nil
	}
	return store.Apply(p), nil
}

// requested returns the configuration exactly as asked for, unclamped.
func (f *configFlags) requested(c *cobra.Command, a *app) (model.Configuration, error) {
	base, err := f.base(a)
	if err != nil {
		return model.Configuration{}, err
	}
	p, err := f.patch(c)
	if err != nil {
		return model.Configuration{}, err
	}
	return p.Apply(base), nil
}

// document wraps a derived state for the exporters.
func (a *app) document(state configurator.DerivedState, reference string) export.Document {
	return export.Document{
		Company:       a.cfg.CompanyName,
		Reference:     reference,
		Date:          time.Now(),
		Configuration: state.Configuration,
		Envelope:      state.Envelope,
		Assembly:      state.Assembly,
		Price:         state.Price,
	}
}
