// Package semver implements the simple three-part version numbers that
// dynamic versioning operates on: "major.minor.patch", with no pre-release
// or build-metadata suffixes.
package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// A FormatError reports a string that could not be parsed as a version.
type FormatError struct {
	// Input is the string that failed to parse.
	Input string
	// Pattern is a human-readable description of the form that was
	// expected.
	Pattern string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%q cannot be parsed as a semantic version (%s)", e.Input, e.Pattern)
}

// Part identifies which component of a version to bump.
type Part int

const (
	Major Part = iota + 1
	Minor
	Patch

	// Update is a synonym for Patch.
	Update = Patch
)

// String implements fmt.Stringer.
func (part Part) String() string {
	switch part {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	default:
		return fmt.Sprintf("Part(%d)", int(part))
	}
}

// ParsePart parses one of the tokens "major", "minor", "patch", or
// "update" (case-insensitive) into a Part.
func ParsePart(str string) (Part, error) {
	switch strings.ToLower(str) {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "patch", "update":
		return Patch, nil
	default:
		return 0, fmt.Errorf(`invalid version part %q: must be one of "major", "minor", "patch", or "update"`, str)
	}
}

// Version is a three-part semantic version, plus a count of the commits
// made since the tag the version was derived from.  Commits is carried for
// rendering development versions; it is not part of the version's identity
// and does not participate in comparison.
type Version struct {
	Major, Minor, Patch int

	Commits int
}

var (
	strictRE   = regexp.MustCompile(`^[vV]?(\d+)\.(\d+)\.(\d+)$`)
	tolerantRE = regexp.MustCompile(`^[vV]?(\d+)\.(\d+)(?:\.(\d+))?$`)
)

// Parse parses a full "major.minor.patch" string, with an optional leading
// "v" or "V".  All three parts are required; explicitly supplied versions
// must be fully specified.  Contrast ParseTolerant.
func Parse(str string) (Version, error) {
	return parse(strictRE, "[v]major.minor.patch", str)
}

// ParseTolerant is Parse, except that the patch part may be omitted, in
// which case it defaults to 0.  Tags and fallback versions are commonly
// written as just "major.minor"; this is the parser for those.
func ParseTolerant(str string) (Version, error) {
	return parse(tolerantRE, "[v]major.minor[.patch]", str)
}

func parse(re *regexp.Regexp, pattern, str string) (Version, error) {
	match := re.FindStringSubmatch(str)
	if match == nil {
		return Version{}, &FormatError{Input: str, Pattern: pattern}
	}
	var ver Version
	for i, dst := range []*int{&ver.Major, &ver.Minor, &ver.Patch} {
		if match[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(match[i+1])
		if err != nil {
			return Version{}, &FormatError{Input: str, Pattern: pattern}
		}
		*dst = n
	}
	return ver, nil
}

// IsValid reports whether str parses as a full "major.minor.patch" version
// that is not 0.0.0.  An all-zero version never identifies a real release,
// and is rejected wherever user input is accepted.
func IsValid(str string) bool {
	ver, err := Parse(str)
	return err == nil && !ver.IsZero()
}

// IsZero reports whether the version is 0.0.0, regardless of Commits.
func (ver Version) IsZero() bool {
	return ver.Major == 0 && ver.Minor == 0 && ver.Patch == 0
}

// Bump increments the given part of the version in place, resetting the
// lower-significance parts to zero.  Bumping an unrecognized part is a
// no-op.
func (ver *Version) Bump(part Part) {
	switch part {
	case Major:
		ver.Major++
		ver.Minor = 0
		ver.Patch = 0
	case Minor:
		ver.Minor++
		ver.Patch = 0
	case Patch:
		ver.Patch++
	}
}

// String implements fmt.Stringer, rendering the release form,
// "major.minor.patch".
func (ver Version) String() string {
	return fmt.Sprintf("%d.%d.%d", ver.Major, ver.Minor, ver.Patch)
}

// DevString renders the development form, "major.minor.patch.devN", where
// N is the number of commits since the tag the version was derived from.
func (ver Version) DevString() string {
	return fmt.Sprintf("%d.%d.%d.dev%d", ver.Major, ver.Minor, ver.Patch, ver.Commits)
}

// Cmp returns a number < 0 if version 'a' is less than version 'b', > 0 if
// 'a' is greater than 'b', or 0 if they are equal.  This is similar to the
// C-language strcmp.  Commits is ignored; two versions naming the same
// release compare equal no matter how far past the tag either of them is.
func (a Version) Cmp(b Version) int {
	if d := a.Major - b.Major; d != 0 {
		return d
	}
	if d := a.Minor - b.Minor; d != 0 {
		return d
	}
	return a.Patch - b.Patch
}
