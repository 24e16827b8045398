package model

// Opening envelope constants (mm).
const (
	FrameProfileWidth = 80.0   // Steel frame profile around the whole opening
	SidePanelMinWidth = 200.0  // Narrowest side panel the shop will build
	SidePanelMaxWidth = 800.0  // Widest side panel
	LeafMinWidth      = 700.0  // Narrowest door leaf
	LeafMaxWidth      = 1200.0 // Widest door leaf (profile strength)
	MinOpeningHeight  = 1800.0
	MaxOpeningHeight  = 3000.0
)

// Door leaf construction constants (mm). Profiles are 40x40 square tube.
const (
	ProfileWidth     = 40.0 // Stile face width
	ProfileDepth     = 40.0 // Tube depth
	RailHeightRobust = 40.0 // Top and bottom rails
	RailHeightSlim   = 20.0 // Grid dividers
	GlassThickness   = 7.0  // 33.1 laminated safety glass
	GlassOffset      = 15.0 // Glass inset inside the profile rebate
)
