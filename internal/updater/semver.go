package updater

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Semver is a parsed release tag. Build metadata is dropped.
type Semver struct {
	Major int
	Minor int
	Patch int
	Pre   string
}

// ParseSemver accepts "1.2.3", "v1.2.3", "1.2.3-beta.1" and "1.2.3+build".
func ParseSemver(s string) (Semver, error) {
	raw := s
	s = strings.TrimPrefix(s, "v")
	s, _, _ = strings.Cut(s, "+")
	core, pre, hasPre := strings.Cut(s, "-")

	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Semver{}, fmt.Errorf("invalid semver: %q", raw)
	}
	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Semver{}, fmt.Errorf("invalid semver %q: bad number %q", raw, part)
		}
		nums[i] = n
	}
	if hasPre && slices.Contains(strings.Split(pre, "."), "") {
		return Semver{}, fmt.Errorf("invalid semver %q: empty pre-release identifier", raw)
	}

	return Semver{Major: nums[0], Minor: nums[1], Patch: nums[2], Pre: pre}, nil
}

func (v Semver) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Pre != "" {
		s += "-" + v.Pre
	}
	return s
}

// Compare returns -1, 0 or +1. A pre-release sorts before its release.
func (v Semver) Compare(other Semver) int {
	if c := cmp.Compare(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Patch, other.Patch); c != 0 {
		return c
	}
	return comparePre(v.Pre, other.Pre)
}

func (v Semver) LessThan(other Semver) bool {
	return v.Compare(other) < 0
}

func comparePre(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}

	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareIdent(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(as), len(bs))
}

// compareIdent orders numeric identifiers numerically and below
// alphanumeric ones, which compare as strings.
func compareIdent(a, b string) int {
	an, aErr := strconv.ParseUint(a, 10, 64)
	bn, bErr := strconv.ParseUint(b, 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		return cmp.Compare(an, bn)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	}
	return strings.Compare(a, b)
}
