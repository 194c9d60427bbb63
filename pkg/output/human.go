package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/ajxudir/versioncheck/pkg/constants"
	"github.com/ajxudir/versioncheck/pkg/report"
)

const (
	// lineWidth is the target width of wrapped required-by lines.
	lineWidth = 80
	// minWrapWidth keeps wrapping usable when versions are very wide.
	minWrapWidth = 20
	// observationIndent prefixes every observation line.
	observationIndent = "    "
)

// HumanOptions controls the human report.
//
// Fields:
//   - ShowRequiredBy: Print the dependents of each package below its observations
//   - Color: When to color package names and observations
type HumanOptions struct {
	ShowRequiredBy bool
	Color          ColorMode
}

// WriteHuman writes the report as aligned text.
//
// It performs the following operations:
//   - Step 1: Writes the "Report for humans" header to stderr
//   - Step 2: Writes each package name, colored by its overall state
//   - Step 3: Writes each observation with a dot leader aligned to MaxVersionWidth
//   - Step 4: Writes the wrapped required-by list when requested
//
// Parameters:
//   - w: Destination for the report body
//   - stderr: Destination for the header
//   - r: The report to render
//   - opts: Required-by and color options
//
// Returns:
//   - error: When a write fails
func WriteHuman(w, stderr io.Writer, r *report.Report, opts HumanOptions) error {
	if _, err := fmt.Fprintf(stderr, "\n%s\n\n", constants.HeaderHuman); err != nil {
		return err
	}

	out := newOutput(w, opts.Color)
	width := r.MaxVersionWidth

	for _, e := range r.Entries() {
		if _, err := fmt.Fprintln(w, paint(out, e.Record.State, e.Name)); err != nil {
			return err
		}
		for _, v := range e.Record.Versions {
			line := observationIndent +
				paint(out, v.State, v.Version) + " " +
				dotLeader(v.Version, width) + " " +
				paint(out, v.State, v.State.String()+" "+v.Description)
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		if opts.ShowRequiredBy && len(e.Record.RequiredBy) > 0 {
			if _, err := fmt.Fprintln(w, requiredByBlock(e.Record.RequiredBy, width)); err != nil {
				return err
			}
		}
	}
	return nil
}

// dotLeader returns the dots that pad version to width display cells.
func dotLeader(version string, width int) string {
	n := width - runewidth.StringWidth(version)
	if n <= 0 {
		return ""
	}
	return strings.Repeat(".", n)
}

// requiredByBlock wraps the dependents below the version column, followed by
// a blank line.
func requiredByBlock(names []string, width int) string {
	limit := lineWidth - width
	if limit < minWrapWidth {
		limit = minWrapWidth
	}
	wrapped := wordwrap.String(strings.Join(names, " "), limit)
	return indent.String(wrapped, uint(width+len(observationIndent))) + "\n"
}
