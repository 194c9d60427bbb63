package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"

	"github.com/ajxudir/versioncheck/pkg/constants"
)

// ColorMode selects when the human report is colored.
type ColorMode string

const (
	// ColorAuto colors only terminals, and never when NO_COLOR is set.
	ColorAuto ColorMode = "auto"
	// ColorAlways forces ANSI colors.
	ColorAlways ColorMode = "always"
	// ColorNever disables colors.
	ColorNever ColorMode = "never"
)

// ParseColorMode parses a --color value. The empty string means ColorAuto.
//
// Returns:
//   - ColorMode: The parsed mode
//   - error: When s is not auto, always or never
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	default:
		return "", fmt.Errorf("invalid color mode %q: expected auto, always or never", s)
	}
}

// ColorProfile returns the termenv profile for a mode and destination.
func ColorProfile(mode ColorMode, w io.Writer) termenv.Profile {
	switch mode {
	case ColorNever:
		return termenv.Ascii
	case ColorAlways:
		return termenv.ANSI
	}
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.NewOutput(w).EnvColorProfile()
}

// newOutput creates a termenv.Output for w with the profile chosen by mode.
func newOutput(w io.Writer, mode ColorMode) *termenv.Output {
	return termenv.NewOutput(w,
		termenv.WithProfile(ColorProfile(mode, w)),
		termenv.WithTTY(true),
	)
}

// stateColors maps each state to an ANSI color index. States absent from the
// map use the terminal default.
var stateColors = map[constants.State]string{
	constants.StateUpToDate:       "2", // green
	constants.StateUpdate:         "3", // yellow
	constants.StateInheritedNewer: "3",
	constants.StatePrerelease:     "6", // cyan
	constants.StateDev:            "1", // red
	constants.StateUnpinned:       "1",
	constants.StateOrphan:         "1",
}

// paint colors s by state on out.
func paint(out *termenv.Output, state constants.State, s string) string {
	code, ok := stateColors[state]
	if !ok {
		return s
	}
	return out.String(s).Foreground(out.Color(code)).String()
}
