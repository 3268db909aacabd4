package update

import (
	"cmp"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	appErrors "rosepine/internal/errors"
)

// Version is a parsed semantic version. Build metadata is ignored.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
}

// Release tags look like "v0.3.1" or "0.4.0-rc.1+nix".
var semverRegex = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z.-]+))?(?:\+[0-9A-Za-z.-]+)?$`)

// ParseVersion parses a tag or version string with an optional "v" prefix.
func ParseVersion(s string) (Version, error) {
	m := semverRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Version{}, appErrors.New(appErrors.CodeInvalidVersion, fmt.Sprintf("invalid version %q", s), nil)
	}

	var parts [3]int
	for i := range parts {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Version{}, appErrors.New(appErrors.CodeInvalidVersion, fmt.Sprintf("invalid version %q", s), err)
		}
		parts[i] = n
	}
	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2], Prerelease: m[4]}, nil
}

// String returns the version with a "v" prefix.
func (v Version) String() string {
	s := fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	return s
}

// Compare returns -1, 0 or 1. A release sorts after any of its prereleases.
func (v Version) Compare(other Version) int {
	if c := cmp.Compare(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Patch, other.Patch); c != 0 {
		return c
	}
	switch {
	case v.Prerelease == other.Prerelease:
		return 0
	case v.Prerelease == "":
		return 1
	case other.Prerelease == "":
		return -1
	}
	return cmp.Compare(v.Prerelease, other.Prerelease)
}

// LessThan reports whether v sorts before other.
func (v Version) LessThan(other Version) bool {
	return v.Compare(other) < 0
}
