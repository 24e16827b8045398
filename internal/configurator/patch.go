package configurator

import (
	"errors"

	"github.com/piwi3910/DoorCraft/internal/model"
)

// Patch is a partial configuration change. Nil fields are left as they are.
type Patch struct {
	Mechanism     *model.Mechanism    `json:"door_mechanism,omitempty" yaml:"door_mechanism,omitempty"`
	LeafCount     *model.LeafCount    `json:"leaf_count,omitempty" yaml:"leaf_count,omitempty"`
	SidePanels    *model.SidePanels   `json:"side_panels,omitempty" yaml:"side_panels,omitempty"`
	GridLayout    *model.GridLayout   `json:"grid_layout,omitempty" yaml:"grid_layout,omitempty"`
	Finish        *model.Finish       `json:"finish,omitempty" yaml:"finish,omitempty"`
	Handle        *model.Handle       `json:"handle_type,omitempty" yaml:"handle_type,omitempty"`
	GlassPattern  *model.GlassPattern `json:"glass_pattern,omitempty" yaml:"glass_pattern,omitempty"`
	OpeningWidth  *float64            `json:"opening_width,omitempty" yaml:"opening_width,omitempty"`
	OpeningHeight *float64            `json:"opening_height,omitempty" yaml:"opening_height,omitempty"`
}

// PatchFrom returns a patch that sets every field to the value in cfg.
func PatchFrom(cfg model.Configuration) Patch {
	return Patch{
		Mechanism:     &cfg.Mechanism,
		LeafCount:     &cfg.LeafCount,
		SidePanels:    &cfg.SidePanels,
		GridLayout:    &cfg.GridLayout,
		Finish:        &cfg.Finish,
		Handle:        &cfg.Handle,
		GlassPattern:  &cfg.GlassPattern,
		OpeningWidth:  &cfg.OpeningWidth,
		OpeningHeight: &cfg.OpeningHeight,
	}
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Mechanism == nil && p.LeafCount == nil && p.SidePanels == nil &&
		p.GridLayout == nil && p.Finish == nil && p.Handle == nil &&
		p.GlassPattern == nil && p.OpeningWidth == nil && p.OpeningHeight == nil
}

// Fields lists the JSON names of the fields the patch sets.
func (p Patch) Fields() []string {
	var out []string
	add := func(set bool, name string) {
		if set {
			out = append(out, name)
		}
	}
	add(p.Mechanism != nil, "door_mechanism")
	add(p.LeafCount != nil, "leaf_count")
	add(p.SidePanels != nil, "side_panels")
	add(p.GridLayout != nil, "grid_layout")
	add(p.Finish != nil, "finish")
	add(p.Handle != nil, "handle_type")
	add(p.GlassPattern != nil, "glass_pattern")
	add(p.OpeningWidth != nil, "opening_width")
	add(p.OpeningHeight != nil, "opening_height")
	return out
}

// Normalize rewrites every set enum field to its canonical value, so
// "Taats" or "FOUR_PANE" become pivot and four-pane. Fields holding
// unknown values are cleared; their errors are joined in the result.
func (p *Patch) Normalize() error {
	var errs []error
	normalize(&p.Mechanism, model.ParseMechanism, &errs)
	normalize(&p.LeafCount, model.ParseLeafCount, &errs)
	normalize(&p.SidePanels, model.ParseSidePanels, &errs)
	normalize(&p.GridLayout, model.ParseGridLayout, &errs)
	normalize(&p.Finish, model.ParseFinish, &errs)
	normalize(&p.Handle, model.ParseHandle, &errs)
	normalize(&p.GlassPattern, model.ParseGlassPattern, &errs)
	return errors.Join(errs...)
}

func normalize[T ~string](field **T, parse func(string) (T, error), errs *[]error) {
	if *field == nil {
		return
	}
	v, err := parse(string(**field))
	if err != nil {
		*errs = append(*errs, err)
		*field = nil
		return
	}
	*field = &v
}

// Apply writes the set fields into cfg.
func (p Patch) Apply(cfg model.Configuration) model.Configuration {
	if p.Mechanism != nil {
		cfg.Mechanism = *p.Mechanism
	}
	if p.LeafCount != nil {
		cfg.LeafCount = *p.LeafCount
	}
	if p.SidePanels != nil {
		cfg.SidePanels = *p.SidePanels
	}
	if p.GridLayout != nil {
		cfg.GridLayout = *p.GridLayout
	}
	if p.Finish != nil {
		cfg.Finish = *p.Finish
	}
	if p.Handle != nil {
		cfg.Handle = *p.Handle
	}
	if p.GlassPattern != nil {
		cfg.GlassPattern = *p.GlassPattern
	}
	if p.OpeningWidth != nil {
		cfg.OpeningWidth = *p.OpeningWidth
	}
	if p.OpeningHeight != nil {
		cfg.OpeningHeight = *p.OpeningHeight
	}
	return cfg
}

// stages is the set of recompute steps a patch requires.
type stages struct {
	envelope bool // clamp width and derive the envelope
	height   bool // clamp height
	geometry bool // regenerate the part list
	price    bool // recompute the price
}

func (p Patch) stages() stages {
	var s stages
	if p.Mechanism != nil || p.LeafCount != nil || p.SidePanels != nil || p.OpeningWidth != nil {
		s.envelope, s.geometry, s.price = true, true, true
	}
	if p.OpeningHeight != nil {
		s.height, s.geometry, s.price = true, true, true
	}
	if p.GridLayout != nil {
		s.geometry, s.price = true, true
	}
	if p.Handle != nil {
		s.price = true
	}
	return s
}
