package inventory

import (
	"sort"

	"github.com/ajxudir/versioncheck/pkg/errors"
)

// Validate checks the bundle for entries the report core refuses to guess about.
//
// It performs the following operations:
//   - Rejects empty package names in any section
//   - Rejects empty or duplicate chain locations and feed labels
//   - Rejects tracked entries without a checked-out version
//
// A configured package with an empty chain is valid even when untracked; it
// is reported as orphaned with no observations.
//
// Packages are checked in sorted order so the first reported problem is stable.
//
// Returns:
//   - error: *errors.InvalidInputError for the first problem found; nil when valid
func (b *Bundle) Validate() error {
	if b == nil {
		return errors.NewInvalidInputError("", "document", "inventory is nil")
	}

	for _, name := range sortedKeys(b.Packages) {
		if name == "" {
			return errors.NewInvalidInputError("", fieldPackages, "package name must not be empty")
		}
		chain := b.Packages[name]
		if err := validateKeys(name, fieldPackages, chain.Locations()); err != nil {
			return err
		}
	}

	for _, name := range sortedKeys(b.ReleaseFeed) {
		if name == "" {
			return errors.NewInvalidInputError("", fieldFeed, "package name must not be empty")
		}
		feed := b.ReleaseFeed[name]
		labels := make([]string, len(feed))
		for i, r := range feed {
			labels[i] = r.Label
		}
		if err := validateKeys(name, fieldFeed, labels); err != nil {
			return err
		}
	}

	field := fieldTracking + "." + fieldVersions
	for _, name := range sortedKeys(b.Tracking.Versions) {
		if name == "" {
			return errors.NewInvalidInputError("", field, "package name must not be empty")
		}
		if b.Tracking.Versions[name].Version == "" {
			return errors.NewInvalidInputError(name, field, "checked-out version must not be empty")
		}
	}

	return nil
}

// validateKeys rejects empty and duplicate keys within one package section.
func validateKeys(pkg, field string, keys []string) error {
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if key == "" {
			return errors.NewInvalidInputError(pkg, field, "empty key")
		}
		if seen[key] {
			return errors.NewInvalidInputErrorf(pkg, field, "duplicate key %q", key)
		}
		seen[key] = true
	}
	return nil
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
