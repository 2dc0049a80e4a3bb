// Package version validates the Python versions accepted by --python-versions.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPython is returned for version strings that are not X, X.Y or X.Y.Z.
var ErrInvalidPython = errors.New("invalid python version")

// Python is a parsed interpreter version. Minor and Patch are -1 when the
// original string did not carry them.
type Python struct {
	Major int
	Minor int
	Patch int
}

func (v Python) String() string {
	switch {
	case v.Minor < 0:
		return strconv.Itoa(v.Major)
	case v.Patch < 0:
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	default:
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
}

// ParsePython parses "3", "3.4" or "2.7.9".
func ParsePython(s string) (Python, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ".")
	if s == "" || len(parts) > 3 {
		return Python{}, fmt.Errorf("%w: %q (expected X, X.Y or X.Y.Z)", ErrInvalidPython, s)
	}

	nums := []int{-1, -1, -1}
	for i, p := range parts {
		if p == "" || strings.Trim(p, "0123456789") != "" {
			return Python{}, fmt.Errorf("%w: %q", ErrInvalidPython, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Python{}, fmt.Errorf("%w: %q: %v", ErrInvalidPython, s, err)
		}
		nums[i] = n
	}
	return Python{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// OnbuildImage returns the official onbuild base image for version string v.
// The string is used verbatim.
func OnbuildImage(v string) string {
	return "python:" + strings.TrimSpace(v) + "-onbuild"
}
