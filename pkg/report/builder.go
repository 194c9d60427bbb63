package report

import (
	"github.com/ajxudir/versioncheck/pkg/analysis"
	"github.com/ajxudir/versioncheck/pkg/constants"
	"github.com/ajxudir/versioncheck/pkg/inventory"
	"github.com/ajxudir/versioncheck/pkg/verbose"
)

// Options controls report building.
//
// Fields:
//   - NewerOnly: Drop packages whose overall state is A
//   - Limit: Keep at most this many packages (after NewerOnly); <= 0 keeps all
//   - Analyzer: Collaborator for version questions; nil uses analysis.Default
type Options struct {
	NewerOnly bool
	Limit     int
	Analyzer  analysis.Analyzer
}

// Build classifies every package of the bundle.
//
// It performs the following operations:
//   - Step 1: Validates the bundle, failing fast on malformed entries
//   - Step 2: Walks the sorted union of tracked and configured names
//   - Step 3: Resolves each package and widens MaxVersionWidth with its versions
//   - Step 4: Skips up-to-date packages when NewerOnly is set
//   - Step 5: Stops adding packages once Limit is reached
//
// MaxVersionWidth covers every resolved package, including filtered ones, so
// the column width does not depend on the filter.
//
// Parameters:
//   - b: The inventory; it is only read
//   - opts: Filter, limit and analyzer
//
// Returns:
//   - *Report: Packages in ascending name order
//   - error: *errors.InvalidInputError for malformed input; analyzer errors unmodified
func Build(b *inventory.Bundle, opts Options) (*Report, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	analyzer := opts.Analyzer
	if analyzer == nil {
		analyzer = analysis.Default
	}

	names := b.Names()
	verbose.List("Packages to classify", names)

	result := New()
	for _, name := range names {
		record, width, err := ResolvePackage(InputFor(b, name), analyzer)
		if err != nil {
			return nil, err
		}
		if width > result.MaxVersionWidth {
			result.MaxVersionWidth = width
		}

		if opts.NewerOnly && record.State == constants.StateUpToDate {
			verbose.PackageFiltered(name, "up to date")
			continue
		}
		if opts.Limit > 0 && result.Len() >= opts.Limit {
			verbose.PackageFiltered(name, "limit reached")
			continue
		}

		result.Add(name, record)
	}

	return result, nil
}
