package model

// Mechanism is the way the door leaf opens (or doesn't).
type Mechanism string

const (
	MechanismPivot      Mechanism = "pivot"       // Pivot hinge in floor and head (taats)
	MechanismHinged     Mechanism = "hinged"      // Side-hung on hinges
	MechanismFixedPanel Mechanism = "fixed-panel" // Non-opening glazed panel
)

// Mechanisms lists all mechanisms in display order.
var Mechanisms = []Mechanism{MechanismPivot, MechanismHinged, MechanismFixedPanel}

// AcceptsHandle reports whether a handle can be fitted to this mechanism.
func (m Mechanism) AcceptsHandle() bool {
	return m != MechanismFixedPanel
}

// HasCenterDivider reports whether the mechanism adds a vertical center divider.
func (m Mechanism) HasCenterDivider() bool {
	return m == MechanismFixedPanel
}

func (m Mechanism) String() string { return string(m) }

// LeafCount is the number of door leaves in the opening.
type LeafCount string

const (
	LeafSingle LeafCount = "single"
	LeafDouble LeafCount = "double"
)

var LeafCounts = []LeafCount{LeafSingle, LeafDouble}

// Leaves returns the numeric leaf count (1 or 2).
func (l LeafCount) Leaves() int {
	if l == LeafDouble {
		return 2
	}
	return 1
}

func (l LeafCount) String() string { return string(l) }

// SidePanels describes which sides of the door carry a fixed side panel.
type SidePanels string

const (
	SidePanelsNone  SidePanels = "none"
	SidePanelsLeft  SidePanels = "left"
	SidePanelsRight SidePanels = "right"
	SidePanelsBoth  SidePanels = "both"
)

var SidePanelOptions = []SidePanels{SidePanelsNone, SidePanelsLeft, SidePanelsRight, SidePanelsBoth}

// Count returns the number of side panels (0, 1 or 2).
func (s SidePanels) Count() int {
	switch s {
	case SidePanelsLeft, SidePanelsRight:
		return 1
	case SidePanelsBoth:
		return 2
	default:
		return 0
	}
}

func (s SidePanels) String() string { return string(s) }

// GridLayout is the horizontal division of the glass.
type GridLayout string

const (
	GridNone      GridLayout = "none"
	GridThreePane GridLayout = "three-pane"
	GridFourPane  GridLayout = "four-pane"
)

var GridLayouts = []GridLayout{GridNone, GridThreePane, GridFourPane}

// Dividers returns the number of horizontal dividers (0, 2 or 3).
func (g GridLayout) Dividers() int {
	switch g {
	case GridThreePane:
		return 2
	case GridFourPane:
		return 3
	default:
		return 0
	}
}

func (g GridLayout) String() string { return string(g) }

// Finish is the steel surface finish.
type Finish string

const (
	FinishBlack      Finish = "black"
	FinishBronze     Finish = "bronze"
	FinishAnthracite Finish = "anthracite"
)

var Finishes = []Finish{FinishBlack, FinishBronze, FinishAnthracite}

func (f Finish) String() string { return string(f) }

// Handle is the handle fitted to an opening leaf.
type Handle string

const (
	HandleU        Handle = "u-handle"
	HandleLever    Handle = "lever"
	HandleBracket  Handle = "bracket"
	HandleCorner   Handle = "corner"
	HandleCrescent Handle = "crescent"
	HandleOval     Handle = "oval"
	HandleNone     Handle = "none"
)

var Handles = []Handle{HandleU, HandleLever, HandleBracket, HandleCorner, HandleCrescent, HandleOval, HandleNone}

func (h Handle) String() string { return string(h) }

// GlassPattern is the decorative cut of the glass sheet.
type GlassPattern string

const (
	GlassStandard       GlassPattern = "standard"
	GlassRoundedCorners GlassPattern = "rounded-corners"
	GlassUShape         GlassPattern = "u-shape"
)

var GlassPatterns = []GlassPattern{GlassStandard, GlassRoundedCorners, GlassUShape}

func (g GlassPattern) String() string { return string(g) }

// Configuration is the raw set of user choices.
type Configuration struct {
	Mechanism     Mechanism    `json:"door_mechanism" yaml:"door_mechanism"`
	LeafCount     LeafCount    `json:"leaf_count" yaml:"leaf_count"`
	SidePanels    SidePanels   `json:"side_panels" yaml:"side_panels"`
	GridLayout    GridLayout   `json:"grid_layout" yaml:"grid_layout"`
	Finish        Finish       `json:"finish" yaml:"finish"`
	Handle        Handle       `json:"handle_type" yaml:"handle_type"`
	GlassPattern  GlassPattern `json:"glass_pattern" yaml:"glass_pattern"`
	OpeningWidth  float64      `json:"opening_width" yaml:"opening_width"`   // mm
	OpeningHeight float64      `json:"opening_height" yaml:"opening_height"` // mm
}

// DefaultConfiguration returns the configuration a new session starts with.
func DefaultConfiguration() Configuration {
	return Configuration{
		Mechanism:     MechanismPivot,
		LeafCount:     LeafSingle,
		SidePanels:    SidePanelsNone,
		GridLayout:    GridThreePane,
		Finish:        FinishBlack,
		Handle:        HandleU,
		GlassPattern:  GlassStandard,
		OpeningWidth:  1000,
		OpeningHeight: 2400,
	}
}

// Envelope is the width envelope and size distribution derived from a configuration.
type Envelope struct {
	MinOpeningWidth float64 `json:"min_opening_width"` // mm
	MaxOpeningWidth float64 `json:"max_opening_width"` // mm
	DoorLeafWidth   float64 `json:"door_leaf_width"`   // mm, per leaf
	SidePanelWidth  float64 `json:"side_panel_width"`  // mm, per panel; 0 without panels
	HoleWidth       float64 `json:"hole_width"`        // mm
}

// PartKind classifies a physical part.
type PartKind string

const (
	PartStile   PartKind = "stile"
	PartRail    PartKind = "rail"
	PartDivider PartKind = "divider"
	PartGlass   PartKind = "glass"
)

// PhysicalPart is one manufactured steel or glass component of a door leaf.
// Positions are the part center relative to the leaf's geometric center.
type PhysicalPart struct {
	Kind    PartKind `json:"kind"`
	Label   string   `json:"label"`
	X       float64  `json:"x"`      // mm
	Y       float64  `json:"y"`      // mm
	Z       float64  `json:"z"`      // mm
	Width   float64  `json:"width"`  // mm
	Height  float64  `json:"height"` // mm
	Depth   float64  `json:"depth"`  // mm
	IsGlass bool     `json:"is_glass"`
}

// Length returns the cut length of a steel profile: the longer of width and height.
func (p PhysicalPart) Length() float64 {
	if p.Height > p.Width {
		return p.Height
	}
	return p.Width
}

// Assembly is the complete part list for one door leaf.
type Assembly struct {
	Mechanism  Mechanism      `json:"door_mechanism"`
	GridLayout GridLayout     `json:"grid_layout"`
	LeafWidth  float64        `json:"door_leaf_width"` // mm
	Height     float64        `json:"door_height"`     // mm
	Parts      []PhysicalPart `json:"parts"`
}

// SteelParts returns all non-glass parts.
func (a Assembly) SteelParts() []PhysicalPart {
	var out []PhysicalPart
	for _, p := range a.Parts {
		if !p.IsGlass {
			out = append(out, p)
		}
	}
	return out
}

// GlassParts returns all glass parts.
func (a Assembly) GlassParts() []PhysicalPart {
	var out []PhysicalPart
	for _, p := range a.Parts {
		if p.IsGlass {
			out = append(out, p)
		}
	}
	return out
}

// CountKind returns how many parts of the given kind the assembly holds.
func (a Assembly) CountKind(kind PartKind) int {
	n := 0
	for _, p := range a.Parts {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

// Clone returns a copy that shares no backing array with the original.
func (a Assembly) Clone() Assembly {
	cp := a
	if a.Parts != nil {
		cp.Parts = make([]PhysicalPart, len(a.Parts))
		copy(cp.Parts, a.Parts)
	}
	return cp
}

// PriceBreakdown is the structured decomposition of a quote.
// Monetary fields are whole currency units.
type PriceBreakdown struct {
	Currency           string  `json:"currency"`
	SteelCost          int64   `json:"steel_cost"`
	GlassCost          int64   `json:"glass_cost"`
	BaseFee            int64   `json:"base_fee"`
	MechanismSurcharge int64   `json:"mechanism_surcharge"`
	SidePanelSurcharge int64   `json:"side_panel_surcharge"`
	HandleCost         int64   `json:"handle_cost"`
	TotalPrice         int64   `json:"total_price"`
	SteelLengthMeters  float64 `json:"steel_length_m"`
	GlassAreaSqMeters  float64 `json:"glass_area_sqm"`
}

// Sum recomputes the total from the cost components.
func (b PriceBreakdown) Sum() int64 {
	return b.SteelCost + b.GlassCost + b.BaseFee + b.MechanismSurcharge + b.SidePanelSurcharge + b.HandleCost
}

// ValidationResult reports structural problems without failing.
// Warnings never make a result invalid.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewValidationResult builds a result whose Valid flag follows the error list.
func NewValidationResult(errs, warnings []string) ValidationResult {
	if errs == nil {
		errs = []string{}
	}
	return ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

// Merge combines two results.
func (v ValidationResult) Merge(other ValidationResult) ValidationResult {
	errs := append(append([]string{}, v.Errors...), other.Errors...)
	var warnings []string
	warnings = append(warnings, v.Warnings...)
	warnings = append(warnings, other.Warnings...)
	return NewValidationResult(errs, warnings)
}
