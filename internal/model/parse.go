package model

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrUnknownValue is returned when a string does not name a known option.
var ErrUnknownValue = errors.New("unknown value")

// maxSuggestionDistance bounds how far a typo may be from an option
// before we stop offering it as a suggestion.
const maxSuggestionDistance = 3

// Aliases accept the shop's Dutch order-sheet vocabulary alongside the
// canonical English names.
var (
	mechanismAliases = map[string]Mechanism{
		"taats":         MechanismPivot,
		"taatsdeur":     MechanismPivot,
		"scharnier":     MechanismHinged,
		"scharnierdeur": MechanismHinged,
		"paneel":        MechanismFixedPanel,
		"vast-paneel":   MechanismFixedPanel,
		"fixed":         MechanismFixedPanel,
	}
	leafAliases = map[string]LeafCount{
		"enkele":  LeafSingle,
		"dubbele": LeafDouble,
		"1":       LeafSingle,
		"2":       LeafDouble,
	}
	sidePanelAliases = map[string]SidePanels{
		"geen":   SidePanelsNone,
		"links":  SidePanelsLeft,
		"rechts": SidePanelsRight,
		"beide":  SidePanelsBoth,
		"":       SidePanelsNone,
	}
	gridAliases = map[string]GridLayout{
		"geen":   GridNone,
		"3-vlak": GridThreePane,
		"4-vlak": GridFourPane,
		"3":      GridThreePane,
		"4":      GridFourPane,
		"":       GridNone,
	}
	finishAliases = map[string]Finish{
		"zwart": FinishBlack,
		"brons": FinishBronze,
		"grijs": FinishAnthracite,
	}
	handleAliases = map[string]Handle{
		"u-greep":     HandleU,
		"klink":       HandleLever,
		"beugelgreep": HandleBracket,
		"hoekgreep":   HandleCorner,
		"maangreep":   HandleCrescent,
		"ovaalgreep":  HandleOval,
		"geen":        HandleNone,
		"":            HandleNone,
	}
	glassAliases = map[string]GlassPattern{
		"dt9-rounded": GlassRoundedCorners,
		"dt10-ushape": GlassUShape,
		"":            GlassStandard,
	}
)

func ParseMechanism(s string) (Mechanism, error) {
	return parseOption("door mechanism", s, Mechanisms, mechanismAliases)
}

func ParseLeafCount(s string) (LeafCount, error) {
	return parseOption("leaf count", s, LeafCounts, leafAliases)
}

func ParseSidePanels(s string) (SidePanels, error) {
	return parseOption("side panels", s, SidePanelOptions, sidePanelAliases)
}

func ParseGridLayout(s string) (GridLayout, error) {
	return parseOption("grid layout", s, GridLayouts, gridAliases)
}

func ParseFinish(s string) (Finish, error) {
	return parseOption("finish", s, Finishes, finishAliases)
}

func ParseHandle(s string) (Handle, error) {
	return parseOption("handle", s, Handles, handleAliases)
}

func ParseGlassPattern(s string) (GlassPattern, error) {
	return parseOption("glass pattern", s, GlassPatterns, glassAliases)
}

// normalizeOption lowercases and folds spaces/underscores into dashes.
func normalizeOption(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "-", " ", "-").Replace(s)
}

// parseOption matches s against the canonical options and the aliases.
// Unknown input yields ErrUnknownValue, with the closest option named when
// one is near enough.
func parseOption[T ~string](kind, s string, options []T, aliases map[string]T) (T, error) {
	norm := normalizeOption(s)
	for _, o := range options {
		if string(o) == norm {
			return o, nil
		}
	}
	if v, ok := aliases[norm]; ok {
		return v, nil
	}

	var zero T
	if hint := suggest(norm, options, aliases); hint != "" {
		return zero, fmt.Errorf("%s %q: %w (did you mean %q?)", kind, s, ErrUnknownValue, hint)
	}
	names := make([]string, len(options))
	for i, o := range options {
		names[i] = string(o)
	}
	return zero, fmt.Errorf("%s %q: %w (expected one of %s)", kind, s, ErrUnknownValue, strings.Join(names, ", "))
}

func suggest[T ~string](s string, options []T, aliases map[string]T) string {
	best := ""
	bestDist := maxSuggestionDistance + 1
	consider := func(candidate string) {
		if candidate == "" {
			return
		}
		if d := levenshtein.ComputeDistance(s, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	for _, o := range options {
		consider(string(o))
	}
	for _, alias := range slices.Sorted(maps.Keys(aliases)) {
		consider(alias)
	}
	return best
}
