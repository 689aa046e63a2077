package joinspec

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a major.minor spec version such as v0.3.
type Version struct {
	Major int
	Minor int
}

// ParseVersion accepts "v0.3" or "0.3".
func ParseVersion(s string) (Version, error) {
	trimmed := strings.TrimPrefix(s, "v")
	majorStr, minorStr, ok := strings.Cut(trimmed, ".")
	if !ok {
		return Version{}, fmt.Errorf("invalid version %q: expected vMAJOR.MINOR", s)
	}
	major, err := strconv.Atoi(majorStr)
	if err != nil || major < 0 {
		return Version{}, fmt.Errorf("invalid major version in %q", s)
	}
	minor, err := strconv.Atoi(minorStr)
	if err != nil || minor < 0 {
		return Version{}, fmt.Errorf("invalid minor version in %q", s)
	}
	return Version{Major: major, Minor: minor}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("v%d.%d", v.Major, v.Minor)
}

// Less reports whether v precedes other.
func (v Version) Less(other Version) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	return v.Minor < other.Minor
}

// AtLeast reports whether v is other or later.
func (v Version) AtLeast(other Version) bool {
	return !v.Less(other)
}
