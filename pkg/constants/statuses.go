// Package constants provides centralized string constants used throughout the application.
// This eliminates magic strings and provides a single source of truth for state codes,
// status flag tokens and the fixed descriptions attached to version observations.
package constants

// State is the classification code of a package or of a single version observation.
type State string

// State codes form a closed set. Every package record and every version record
// carries exactly one of them.
const (
	// StateDev marks a local development checkout. It takes precedence over every other signal.
	StateDev State = "D"

	// StateUnpinned marks a package that is tracked locally but has no configuration pin.
	StateUnpinned State = "X"

	// StateOrphan marks a configuration pin for a package that is not tracked.
	StateOrphan State = "O"

	// StateUpdate indicates a newer final upstream release exists.
	StateUpdate State = "U"

	// StateInheritedNewer indicates an inherited configuration position pins a newer
	// version than the primary pin.
	StateInheritedNewer State = "In"

	// StateInherited marks a non-overriding inherited or current position.
	StateInherited State = "I"

	// StatePrerelease marks an upstream pre-release observation.
	StatePrerelease State = "P"

	// StateUpToDate is the default state when no actionable signal was found.
	StateUpToDate State = "A"
)

// AllStates lists every state code in precedence order.
var AllStates = []State{
	StateDev,
	StateUnpinned,
	StateOrphan,
	StateUpdate,
	StateInheritedNewer,
	StateInherited,
	StatePrerelease,
	StateUpToDate,
}

// String returns the state code.
func (s State) String() string {
	return string(s)
}

// IsValid reports whether s belongs to the closed set of state codes.
func (s State) IsValid() bool {
	for _, known := range AllStates {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns a short human-readable name for the state.
//
// Returns:
//   - string: The label (e.g., "dev", "unpinned"); empty for unknown codes
func (s State) Label() string {
	switch s {
	case StateDev:
		return "dev"
	case StateUnpinned:
		return "unpinned"
	case StateOrphan:
		return "orphan"
	case StateUpdate:
		return "update"
	case StateInheritedNewer:
		return "inherited-newer"
	case StateInherited:
		return "inherited"
	case StatePrerelease:
		return "prerelease"
	case StateUpToDate:
		return "up-to-date"
	default:
		return ""
	}
}

// Status flag tokens returned by the package status analysis.
const (
	// FlagConfigStale indicates an inherited configuration position is newer than the primary pin.
	FlagConfigStale = "cfg"

	// FlagUpstreamFinal indicates a final upstream release is newer than the primary pin.
	FlagUpstreamFinal = "pypifinal"

	// FlagUpstreamPrerelease indicates an upstream pre-release is newer than the primary pin.
	FlagUpstreamPrerelease = "pypipre"
)

// Fixed values used when building version records.
const (
	// PlaceholderUnset is the version shown for a configured position without a value.
	PlaceholderUnset = "(unset)"

	// DescriptionUnpinned describes the placeholder record of an unpinned package.
	DescriptionUnpinned = "unpinned"

	// DescriptionDev is the description used for a dev checkout without a custom label.
	DescriptionDev = "dev"

	// PrereleaseMarker is the substring that marks a release-feed label as a pre-release.
	PrereleaseMarker = "pre"
)

// Report headers written to stderr before the report body.
const (
	// HeaderHuman precedes the human-readable report.
	HeaderHuman = "Report for humans"

	// HeaderMachine precedes the JSON report.
	HeaderMachine = "Report for machines"
)

// Icon constants for CLI messages.
const (
	// IconWarn is the warning prefix for messages.
	IconWarn = "⚠️"

	// IconError indicates an error or failed state (red X).
	IconError = "❌"

	// IconCheckmarkBox indicates successful validation (checkmark in box).
	IconCheckmarkBox = "✅"

	// IconLightbulb indicates a hint or suggestion.
	IconLightbulb = "💡"
)
