package report

import (
	"unicode/utf8"

	"github.com/ajxudir/versioncheck/pkg/analysis"
	"github.com/ajxudir/versioncheck/pkg/constants"
	"github.com/ajxudir/versioncheck/pkg/inventory"
	"github.com/ajxudir/versioncheck/pkg/verbose"
)

// PackageInput is everything the inventory knows about one package.
//
// Fields:
//   - Name: Package name
//   - Chain: Configuration chain, nil when not configured
//   - Feed: Release feed, nil when the feed has no entry
//   - Tracked: Checked-out state, nil when not tracked
//   - RequiredBy: Dependent package names
//   - Configured: true if the name appears in the inventory's packages section
type PackageInput struct {
	Name       string
	Chain      inventory.Chain
	Feed       inventory.Feed
	Tracked    *inventory.Tracked
	RequiredBy []string
	Configured bool
}

// InputFor extracts the PackageInput for name from a bundle, defaulting every
// missing source to empty.
func InputFor(b *inventory.Bundle, name string) PackageInput {
	return PackageInput{
		Name:       name,
		Chain:      b.Chain(name),
		Feed:       b.Feed(name),
		Tracked:    b.Tracked(name),
		RequiredBy: b.RequiredBy(name),
		Configured: b.IsConfigured(name),
	}
}

// ResolvePackage collects the observations of one package and resolves its
// overall state.
//
// It performs the following operations:
//   - Step 1: Adds a D record for a dev checkout
//   - Step 2: Adds one record per chain position, in chain order
//   - Step 3: Adds an X "unpinned" record for a tracked, non-dev package without chain records
//   - Step 4: Adds one record per feed entry that has a version, in feed order
//   - Step 5: Measures the longest emitted version string in code points
//   - Step 6: Picks the overall state, first match wins:
//     dev D, unpinned X, configured but untracked O, final upstream release U,
//     newer inherited pin In, newer upstream pre-release P, otherwise A
//   - Step 7: Attaches the required-by list when it is not empty
//
// Parameters:
//   - in: The package's inventory data
//   - analyzer: Collaborator for chain and status questions
//
// Returns:
//   - PackageRecord: The classified package
//   - int: Length in code points of the longest version string in the record
//   - error: Analyzer errors, unmodified
func ResolvePackage(in PackageInput, analyzer analysis.Analyzer) (PackageRecord, int, error) {
	var (
		versions []VersionRecord
		devegg   bool
		unpinned bool
	)

	if in.Tracked != nil && in.Tracked.IsDev() {
		versions = append(versions, VersionRecord{
			Version:     in.Tracked.Version,
			State:       constants.StateDev,
			Description: in.Tracked.DevLabel,
		})
		devegg = true
	}

	chainRecords := 0
	for idx, pin := range in.Chain {
		record, err := BuildVersion(FlavorChain, in.Chain, in.Feed, in.Tracked, pin.Location, idx, analyzer)
		if err != nil {
			return PackageRecord{}, 0, err
		}
		versions = append(versions, record)
		chainRecords++
	}

	if !devegg && in.Tracked != nil && chainRecords == 0 {
		versions = append(versions, VersionRecord{
			Version:     in.Tracked.Version,
			State:       constants.StateUnpinned,
			Description: constants.DescriptionUnpinned,
		})
		unpinned = true
	}

	for idx, release := range in.Feed {
		if release.Version == "" {
			continue
		}
		record, err := BuildVersion(FlavorFeed, in.Chain, in.Feed, in.Tracked, release.Label, idx, analyzer)
		if err != nil {
			return PackageRecord{}, 0, err
		}
		versions = append(versions, record)
	}

	width := 0
	for _, v := range versions {
		if w := utf8.RuneCountInString(v.Version); w > width {
			width = w
		}
	}

	flags, err := analyzer.StatusFlags(in.Chain, in.Feed)
	if err != nil {
		return PackageRecord{}, 0, err
	}

	record := PackageRecord{Versions: versions}
	switch {
	case devegg:
		record.State = constants.StateDev
	case unpinned:
		record.State = constants.StateUnpinned
	case in.Configured && in.Tracked == nil:
		record.State = constants.StateOrphan
	case flags.Has(constants.FlagUpstreamFinal):
		record.State = constants.StateUpdate
	case flags.Has(constants.FlagConfigStale):
		record.State = constants.StateInheritedNewer
	case flags.Has(constants.FlagUpstreamPrerelease):
		record.State = constants.StatePrerelease
	default:
		record.State = constants.StateUpToDate
	}

	if len(in.RequiredBy) > 0 {
		record.RequiredBy = append([]string(nil), in.RequiredBy...)
	}

	verbose.PackageClassified(in.Name, record.State.String(), len(versions))
	return record, width, nil
}
