package report

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ajxudir/versioncheck/pkg/analysis"
	"github.com/ajxudir/versioncheck/pkg/constants"
	"github.com/ajxudir/versioncheck/pkg/inventory"
)

// Flavor selects which source an observation comes from.
type Flavor int

const (
	// FlavorChain is a position in the configuration chain.
	FlavorChain Flavor = iota
	// FlavorFeed is an entry of the upstream release feed.
	FlavorFeed
)

// BuildVersion classifies one version observation.
//
// For FlavorChain the version is chain[key] (or "(unset)"), the description is
// key, and the state is:
//   - index 0: I when the package is a dev checkout, A otherwise
//   - index > 0: In when the analyzer says the position is newer than the primary, I otherwise
//
// For FlavorFeed the version is feed[key], the description is the capitalized
// label, and the state is P when the label contains "pre", U otherwise.
//
// Parameters:
//   - flavor: Source of the observation
//   - chain: The package's configuration chain
//   - feed: The package's release feed
//   - tracked: The tracked entry, nil when not tracked
//   - key: Chain location or feed label
//   - index: Chain position of key (ignored for FlavorFeed)
//   - analyzer: Answers whether a chain position is newer than the primary
//
// Returns:
//   - VersionRecord: The classified observation
//   - error: Analyzer errors, unmodified
func BuildVersion(flavor Flavor, chain inventory.Chain, feed inventory.Feed, tracked *inventory.Tracked, key string, index int, analyzer analysis.Analyzer) (VersionRecord, error) {
	if flavor == FlavorFeed {
		version, _ := feed.Get(key)
		state := constants.StateUpdate
		if (inventory.Release{Label: key}).IsPrerelease() {
			state = constants.StatePrerelease
		}
		return VersionRecord{Version: version, State: state, Description: capitalize(key)}, nil
	}

	version, _ := chain.Get(key)
	if version == "" {
		version = constants.PlaceholderUnset
	}
	record := VersionRecord{Version: version, Description: key}

	if index == 0 {
		record.State = constants.StateUpToDate
		if tracked != nil && tracked.IsDev() {
			record.State = constants.StateInherited
		}
		return record, nil
	}

	newer, err := analyzer.IsChainPositionNewer(chain, index)
	if err != nil {
		return VersionRecord{}, err
	}
	record.State = constants.StateInherited
	if newer {
		record.State = constants.StateInheritedNewer
	}
	return record, nil
}

// capitalize upper-cases the first letter of s and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
