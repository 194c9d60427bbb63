// Package versioning parses and orders the version strings found in pin files
// and release feeds.
//
// Versions are normalized to canonical semver (golang.org/x/mod/semver) so that
// "1.0", "v1.0.0" and "1.0.0" compare equal. Python-style pre-release suffixes
// such as "2.0b1", "2.0rc2" or "2.0.dev3" become semver pre-release identifiers,
// release segments beyond the third ("5.2.1.4") take part in the release
// comparison, and post releases ("1.0.post2") break the remaining ties.
package versioning

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

var versionPattern = regexp.MustCompile(
	`(?i)^v?(?P<release>\d+(?:\.\d+)*)` +
		`(?:[-_.]?(?P<pre>alpha|beta|preview|pre|dev|rc|a|b|c)[-_.]?(?P<prenum>\d*))?` +
		`(?:[-_.]?(?:post|p)[-_.]?(?P<post>\d+))?` +
		`(?:\+[0-9a-z.-]+)?$`,
)

// preKinds maps pre-release spellings to identifiers whose ASCII order matches
// release order: dev < alpha < beta < candidate.
var preKinds = map[string]string{
	"dev":     "0dev",
	"a":       "a",
	"alpha":   "a",
	"b":       "b",
	"beta":    "b",
	"c":       "rc",
	"rc":      "rc",
	"pre":     "rc",
	"preview": "rc",
}

// Version is a parsed version string.
//
// Fields:
//   - raw: The original string, trimmed
//   - canonical: Canonical semver form including any pre-release (e.g., "v2.0.0-b.1")
//   - release: Every release segment as a digit string without leading zeros
//   - post: Post-release number as a digit string, empty when absent
type Version struct {
	raw       string
	canonical string
	release   []string
	post      string
}

// Parse parses a version string.
//
// It performs the following operations:
//   - Trims whitespace and an optional leading "v"
//   - Splits the release segments, padding to major.minor.patch
//   - Maps a pre-release suffix to a semver pre-release identifier
//   - Validates the result with semver.IsValid
//
// Segments are kept as digit strings, so numbers of any size parse.
//
// Parameters:
//   - raw: The version string (e.g., "1.2", "v1.2.3", "5.2.1.4", "2.0b1")
//
// Returns:
//   - Version: The parsed version; only Raw is meaningful when parsing failed
//   - bool: true if the string is a recognizable version
func Parse(raw string) (Version, bool) {
	cleaned := strings.TrimSpace(raw)
	v := Version{raw: cleaned}
	if cleaned == "" {
		return v, false
	}

	match := versionPattern.FindStringSubmatch(cleaned)
	if match == nil {
		return v, false
	}

	parts := strings.Split(match[versionPattern.SubexpIndex("release")], ".")
	release := make([]string, 0, len(parts))
	for _, part := range parts {
		release = append(release, trimZeros(part))
	}
	for len(release) < 3 {
		release = append(release, "0")
	}

	canonical := fmt.Sprintf("v%s.%s.%s", release[0], release[1], release[2])
	if pre := strings.ToLower(match[versionPattern.SubexpIndex("pre")]); pre != "" {
		canonical += fmt.Sprintf("-%s.%s", preKinds[pre], trimZeros(match[versionPattern.SubexpIndex("prenum")]))
	}
	if !semver.IsValid(canonical) {
		return v, false
	}

	v.canonical = semver.Canonical(canonical)
	v.release = release
	if post := match[versionPattern.SubexpIndex("post")]; post != "" {
		v.post = trimZeros(post)
	}
	return v, true
}

// Raw returns the version string as given, trimmed.
func (v Version) Raw() string {
	return v.raw
}

// Canonical returns the canonical semver form, or "" when the version did not parse.
func (v Version) Canonical() string {
	return v.canonical
}

// IsPrerelease reports whether the version carries a pre-release suffix.
func (v Version) IsPrerelease() bool {
	return v.canonical != "" && semver.Prerelease(v.canonical) != ""
}

// Compare orders two parsed versions.
//
// Parsed versions compare by the full release tuple first (missing segments
// count as zero), then by pre-release under semver rules, then by
// post-release number. A version that did not parse sorts below any parsed
// version; two unparsed versions compare by their lowercased text.
//
// Returns:
//   - int: Negative if v < other, zero if equal, positive if v > other
func (v Version) Compare(other Version) int {
	switch {
	case v.canonical == "" && other.canonical == "":
		return strings.Compare(strings.ToLower(v.raw), strings.ToLower(other.raw))
	case v.canonical == "":
		return -1
	case other.canonical == "":
		return 1
	}

	for i := 0; i < len(v.release) || i < len(other.release); i++ {
		if c := compareDigits(segment(v.release, i), segment(other.release, i)); c != 0 {
			return c
		}
	}

	// Only the pre-release parts differ now; a shared release keeps semver's
	// "final above pre-release" rule intact.
	if c := semver.Compare("v0.0.0"+semver.Prerelease(v.canonical), "v0.0.0"+semver.Prerelease(other.canonical)); c != 0 {
		return c
	}

	switch {
	case v.post == other.post:
		return 0
	case v.post == "":
		return -1
	case other.post == "":
		return 1
	}
	return compareDigits(v.post, other.post)
}

// Compare parses and orders two version strings.
//
// Parameters:
//   - a: The first version
//   - b: The second version
//
// Returns:
//   - int: Negative if a < b, zero if equal, positive if a > b
func Compare(a, b string) int {
	va, _ := Parse(a)
	vb, _ := Parse(b)
	return va.Compare(vb)
}

// IsNewer reports whether candidate is strictly newer than current.
// Empty strings are never newer and nothing is newer than an empty string.
func IsNewer(candidate, current string) bool {
	if strings.TrimSpace(candidate) == "" || strings.TrimSpace(current) == "" {
		return false
	}
	return Compare(candidate, current) > 0
}

// IsPrerelease reports whether the version string carries a pre-release suffix.
func IsPrerelease(raw string) bool {
	v, ok := Parse(raw)
	return ok && v.IsPrerelease()
}

// segment returns parts[i] or "0" when i is out of range.
func segment(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return "0"
}

// trimZeros strips leading zeros from a digit string; "" and "000" become "0".
func trimZeros(digits string) string {
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// compareDigits orders two digit strings without leading zeros numerically.
//
// Returns:
//   - int: 1 if a > b, -1 if a < b, 0 if a == b
func compareDigits(a, b string) int {
	if len(a) != len(b) {
		if len(a) > len(b) {
			return 1
		}
		return -1
	}
	return strings.Compare(a, b)
}
