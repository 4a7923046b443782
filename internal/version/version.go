// Package version parses release tags and orders them for update eligibility.
package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	fullRegex  = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:[-+].*)?$`)
	shortRegex = regexp.MustCompile(`^(\d+)\.(\d+)(?:[-+].*)?$`)
)

// Version is a parsed release tag. NonStandard marks tags that did not
// match any numeric form; those sort strictly below every real version,
// so any published release is judged newer than an unparseable local state.
type Version struct {
	Major       int
	Minor       int
	Patch       int
	NonStandard bool
	raw         string
}

// Parse parses a tag string such as "1.2.3", "v1.2.3" or "1.2".
// It never fails: a two-component tag gets patch 0, and anything that does
// not match the numeric forms becomes the lowest-sorting non-standard value.
// Pre-release and build suffixes ("-beta.1", "+abc") are accepted and
// ignored for ordering purposes.
func Parse(tag string) Version {
	s := tag
	if len(s) > 0 && s[0] == 'v' {
		s = s[1:]
	}

	if m := fullRegex.FindStringSubmatch(s); m != nil {
		major, _ := strconv.Atoi(m[1])
		minor, _ := strconv.Atoi(m[2])
		patch, _ := strconv.Atoi(m[3])
		return Version{Major: major, Minor: minor, Patch: patch, raw: tag}
	}

	if m := shortRegex.FindStringSubmatch(s); m != nil {
		major, _ := strconv.Atoi(m[1])
		minor, _ := strconv.Atoi(m[2])
		return Version{Major: major, Minor: minor, raw: tag}
	}

	return Version{Major: -1, Minor: -1, Patch: -1, NonStandard: true, raw: tag}
}

// String returns the normalized numeric form, or the original tag text for
// non-standard versions.
func (v Version) String() string {
	if v.NonStandard {
		return v.raw
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare compares two versions.
// Returns:
//   - 1 if v > other
//   - 0 if v == other
//   - -1 if v < other
//
// Equal (major, minor, patch) triples compare equal regardless of any
// suffix text on the original tags.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		if v.Major > other.Major {
			return 1
		}
		return -1
	}
	if v.Minor != other.Minor {
		if v.Minor > other.Minor {
			return 1
		}
		return -1
	}
	if v.Patch != other.Patch {
		if v.Patch > other.Patch {
			return 1
		}
		return -1
	}
	return 0
}

// IsGreaterThan returns true if v > other.
func (v Version) IsGreaterThan(other Version) bool {
	return v.Compare(other) > 0
}

// IsLessThan returns true if v < other.
func (v Version) IsLessThan(other Version) bool {
	return v.Compare(other) < 0
}

// Compare compares two tag strings directly.
func Compare(a, b string) int {
	return Parse(a).Compare(Parse(b))
}

// Normalize removes the 'v' prefix if present.
func Normalize(tag string) string {
	return strings.TrimPrefix(tag, "v")
}
