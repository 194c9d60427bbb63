// Package output renders version reports for humans (aligned, colored text)
// and for machines (ordered JSON).
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ajxudir/versioncheck/pkg/report"
)

// Format represents the output format type.
type Format string

const (
	// FormatHuman is the default aligned, colored text report.
	FormatHuman Format = "human"
	// FormatJSON outputs the report as a JSON object keyed by package name.
	FormatJSON Format = "json"
)

// ParseFormat parses a format string into a Format type.
//
// The parsing is case-insensitive. "json" and "machine" select FormatJSON.
// Any unrecognized format returns FormatHuman as the default.
//
// Parameters:
//   - s: Format string to parse (e.g., "human", "JSON", "machine")
//
// Returns:
//   - Format: The parsed format, or FormatHuman if unrecognized
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "machine":
		return FormatJSON
	default:
		return FormatHuman
	}
}

// IsValidFormat reports whether s names a known format. The empty string is valid
// and means the default.
func IsValidFormat(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "human", "json", "machine":
		return true
	default:
		return false
	}
}

// IsStructuredFormat returns true if the format is meant for machine consumption.
func IsStructuredFormat(f Format) bool {
	return f == FormatJSON
}

// Write renders a report in the given format.
//
// Parameters:
//   - w: Destination for the report body
//   - stderr: Destination for the report header
//   - format: Output format
//   - r: The report to render
//   - opts: Options for the human format; ignored for JSON
//
// Returns:
//   - error: When format is unsupported or a write fails
func Write(w, stderr io.Writer, format Format, r *report.Report, opts HumanOptions) error {
	switch format {
	case FormatHuman:
		return WriteHuman(w, stderr, r, opts)
	case FormatJSON:
		return WriteMachine(w, stderr, r)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
