package types

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is a package version of the form major.minor.patch.
type Version struct {
	Major uint32
	Minor uint32
	Patch uint32
}

// ParseVersion parses a strict "major.minor.patch" version.
// Pre-release and build suffixes are not allowed.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("version %q must have exactly three components", s)
	}
	if !semver.IsValid("v" + s) {
		return Version{}, fmt.Errorf("version %q is not a valid semantic version", s)
	}

	var nums [3]uint32
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return Version{}, fmt.Errorf("version component %q is not a valid number: %w", part, err)
		}
		nums[i] = uint32(n)
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// MustParseVersion is like ParseVersion but panics on error.
// Intended for constants and tests.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so manifests and
// config files can hold versions directly.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
