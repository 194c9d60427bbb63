// Package analysis answers the two version questions the report core asks
// about a package: whether an inherited chain position is newer than the
// primary pin, and which update signals (status flags) apply to the package.
package analysis

import (
	"sort"

	"github.com/ajxudir/versioncheck/pkg/constants"
	"github.com/ajxudir/versioncheck/pkg/errors"
	"github.com/ajxudir/versioncheck/pkg/inventory"
	"github.com/ajxudir/versioncheck/pkg/versioning"
)

// Analyzer is consulted by the report core. Implementations must be pure:
// the same inputs always give the same answer.
type Analyzer interface {
	// IsChainPositionNewer reports whether the pin at index overrides the
	// primary pin (index 0) with a newer version.
	IsChainPositionNewer(chain inventory.Chain, index int) (bool, error)

	// StatusFlags returns the update signals for a package.
	StatusFlags(chain inventory.Chain, feed inventory.Feed) (Flags, error)
}

// Flags is a set of status flag tokens (see constants.Flag*).
type Flags map[string]struct{}

// NewFlags returns a set holding the given tokens.
func NewFlags(tokens ...string) Flags {
	f := make(Flags, len(tokens))
	for _, t := range tokens {
		f[t] = struct{}{}
	}
	return f
}

// Has reports whether the set contains token. A nil set contains nothing.
func (f Flags) Has(token string) bool {
	_, ok := f[token]
	return ok
}

// Add inserts token into the set.
func (f Flags) Add(token string) {
	f[token] = struct{}{}
}

// Sorted returns the tokens in ascending order.
func (f Flags) Sorted() []string {
	out := make([]string, 0, len(f))
	for t := range f {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Default is the Analyzer backed by versioning.Compare.
var Default Analyzer = versionAnalyzer{}

type versionAnalyzer struct{}

// IsChainPositionNewer implements Analyzer.
func (versionAnalyzer) IsChainPositionNewer(chain inventory.Chain, index int) (bool, error) {
	return IsChainPositionNewer(chain, index)
}

// StatusFlags implements Analyzer.
func (versionAnalyzer) StatusFlags(chain inventory.Chain, feed inventory.Feed) (Flags, error) {
	return StatusFlags(chain, feed)
}

// IsChainPositionNewer reports whether the pin at index is strictly newer than
// the primary pin.
//
// Unset pins never count as newer, and nothing is newer than an unset primary.
// Index 0 is the primary itself and is never newer.
//
// Parameters:
//   - chain: The package's configuration chain
//   - index: Position to check
//
// Returns:
//   - bool: true if chain[index] overrides the primary with a newer version
//   - error: *errors.InvalidInputError when index is outside the chain
func IsChainPositionNewer(chain inventory.Chain, index int) (bool, error) {
	if index < 0 || index >= len(chain) {
		return false, errors.NewInvalidInputErrorf("", "packages", "chain index %d out of range (chain has %d positions)", index, len(chain))
	}
	if index == 0 {
		return false, nil
	}
	return versioning.IsNewer(chain[index].Version, chain.Primary()), nil
}

// StatusFlags computes the update signals for a package.
//
// It performs the following operations:
//   - Step 1: Returns an empty set when there is no primary pin to compare with
//   - Step 2: Adds FlagConfigStale when any inherited position is newer than the primary
//   - Step 3: For each feed entry newer than the primary, adds FlagUpstreamPrerelease
//     when the label or the version marks a pre-release, FlagUpstreamFinal otherwise
//
// Parameters:
//   - chain: The package's configuration chain
//   - feed: The package's release feed
//
// Returns:
//   - Flags: The set of applicable flag tokens, never nil
//   - error: Always nil for the default implementation
func StatusFlags(chain inventory.Chain, feed inventory.Feed) (Flags, error) {
	flags := NewFlags()
	current := chain.Primary()
	if current == "" {
		return flags, nil
	}

	for i := 1; i < len(chain); i++ {
		if versioning.IsNewer(chain[i].Version, current) {
			flags.Add(constants.FlagConfigStale)
			break
		}
	}

	for _, r := range feed {
		if !versioning.IsNewer(r.Version, current) {
			continue
		}
		if r.IsPrerelease() || versioning.IsPrerelease(r.Version) {
			flags.Add(constants.FlagUpstreamPrerelease)
		} else {
			flags.Add(constants.FlagUpstreamFinal)
		}
	}

	return flags, nil
}
