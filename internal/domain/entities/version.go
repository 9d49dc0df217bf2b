package entities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	masterminds "github.com/Masterminds/semver/v3"
	"golang.org/x/mod/semver"
)

var errNonSemantic = errors.New("not a semantic version")

// Version is a tolerant semantic version: up to three numeric components
// followed by a free-form remainder ("1.2.3-rc1" has remainder "-rc1",
// "1.2.3.4" has remainder ".4"). Missing components are zero.
type Version struct {
	Major     uint64
	Minor     uint64
	Patch     uint64
	Remainder string
	raw       string
}

// ParseVersion parses a version string. It fails only when the string does
// not start with a numeric component (e.g. "cci.20211112").
func ParseVersion(value string) (Version, error) {
	raw := strings.TrimSpace(value)
	v := Version{raw: raw}

	components := [3]*uint64{&v.Major, &v.Minor, &v.Patch}
	pos := 0
	for i, target := range components {
		end := pos
		for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
			end++
		}
		if end == pos {
			if i == 0 {
				return Version{}, fmt.Errorf("%w: %q", errNonSemantic, value)
			}
			break
		}
		n, err := strconv.ParseUint(raw[pos:end], 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", errNonSemantic, value)
		}
		*target = n
		pos = end
		if i < len(components)-1 && pos+1 < len(raw) && raw[pos] == '.' && isDigit(raw[pos+1]) {
			pos++
			continue
		}
		break
	}
	v.Remainder = raw[pos:]
	return v, nil
}

// MustParseVersion is ParseVersion for literals known to be valid.
func MustParseVersion(value string) Version {
	v, err := ParseVersion(value)
	if err != nil {
		panic(err)
	}
	return v
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (v Version) String() string {
	if v.raw != "" {
		return v.raw
	}
	return fmt.Sprintf("%d.%d.%d%s", v.Major, v.Minor, v.Patch, v.Remainder)
}

// Compare returns -1, 0 or 1. Numeric components decide first; the remainder
// only breaks ties.
func (v Version) Compare(other Version) int {
	if c := compareUint(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareUint(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareUint(v.Patch, other.Patch); c != 0 {
		return c
	}
	return compareRemainder(v.Remainder, other.Remainder)
}

// GreaterThan reports whether v sorts after other.
func (v Version) GreaterThan(other Version) bool {
	return v.Compare(other) > 0
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareRemainder orders remainders: a release sorts after its pre-releases,
// well-formed pre-release identifiers follow semver precedence and anything
// else is compared lexicographically.
func compareRemainder(a, b string) int {
	if a == b {
		return 0
	}
	preA, okA := prerelease(a)
	preB, okB := prerelease(b)
	switch {
	case a == "" && okB:
		return 1
	case okA && b == "":
		return -1
	case okA && okB:
		left, right := "v0.0.0-"+preA, "v0.0.0-"+preB
		if semver.IsValid(left) && semver.IsValid(right) {
			if c := semver.Compare(left, right); c != 0 {
				return c
			}
		}
	}
	return strings.Compare(a, b)
}

// prerelease extracts the pre-release part of a remainder ("-rc.1+build" ->
// "rc.1"). Remainders starting with "." or "+" are not pre-releases.
func prerelease(remainder string) (string, bool) {
	if remainder == "" || remainder[0] == '.' || remainder[0] == '+' {
		return "", false
	}
	pre := strings.TrimPrefix(remainder, "-")
	if idx := strings.IndexByte(pre, '+'); idx >= 0 {
		pre = pre[:idx]
	}
	return pre, pre != ""
}

// UpgradeLevel bounds how far a candidate may diverge from the current version.
type UpgradeLevel int

const (
	UpgradePatch UpgradeLevel = iota + 1
	UpgradeMinor
	UpgradeMajor
)

// ParseUpgradeLevel parses "major", "minor" or "patch".
func ParseUpgradeLevel(value string) (UpgradeLevel, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "major", "":
		return UpgradeMajor, nil
	case "minor":
		return UpgradeMinor, nil
	case "patch":
		return UpgradePatch, nil
	default:
		return 0, fmt.Errorf("invalid target %q: expected major, minor or patch", value)
	}
}

func (l UpgradeLevel) String() string {
	switch l {
	case UpgradePatch:
		return "patch"
	case UpgradeMinor:
		return "minor"
	case UpgradeMajor:
		return "major"
	default:
		return "unknown"
	}
}

// Allows reports whether candidate stays within the level's ceiling relative to current.
func (l UpgradeLevel) Allows(current, candidate Version) bool {
	switch l {
	case UpgradeMajor:
		return true
	case UpgradeMinor:
		return candidate.Major == current.Major
	case UpgradePatch:
		return candidate.Major == current.Major && candidate.Minor == current.Minor
	default:
		return false
	}
}

// FindUpdate returns the highest candidate newer than current within level.
func FindUpdate(current Version, candidates []Version, level UpgradeLevel) (Version, bool) {
	var (
		best  Version
		found bool
	)
	for _, candidate := range candidates {
		if !candidate.GreaterThan(current) || !level.Allows(current, candidate) {
			continue
		}
		if !found || candidate.GreaterThan(best) {
			best = candidate
			found = true
		}
	}
	return best, found
}

// ParseVersions parses every semantic version in values, dropping the rest.
func ParseVersions(values []string) []Version {
	versions := make([]Version, 0, len(values))
	for _, value := range values {
		if v, err := ParseVersion(value); err == nil {
			versions = append(versions, v)
		}
	}
	return versions
}

// ResolveRange returns the highest version in available satisfying a Conan
// version range such as "[>=1.0 <2.0]", "[^1.10]" or "[~1.2, include_prerelease]".
func ResolveRange(expression string, available []Version) (Version, bool, error) {
	constraint, err := masterminds.NewConstraint(normalizeRange(expression))
	if err != nil {
		return Version{}, false, fmt.Errorf("invalid version range %q: %w", expression, err)
	}

	var (
		best  Version
		found bool
	)
	for _, candidate := range available {
		sv := toSemver(candidate)
		if sv == nil || !constraint.Check(sv) {
			continue
		}
		if !found || candidate.GreaterThan(best) {
			best = candidate
			found = true
		}
	}
	return best, found, nil
}

// normalizeRange turns Conan range syntax into Masterminds constraint syntax:
// brackets and trailing options are dropped, and space separated
// conditions become comma separated.
func normalizeRange(expression string) string {
	expr := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(expression), "["), "]")
	if idx := strings.IndexByte(expr, ','); idx >= 0 {
		expr = expr[:idx]
	}
	groups := strings.Split(expr, "||")
	for i, group := range groups {
		groups[i] = strings.Join(strings.Fields(group), ", ")
	}
	return strings.Join(groups, " || ")
}

func toSemver(v Version) *masterminds.Version {
	if sv, err := masterminds.NewVersion(v.String()); err == nil {
		return sv
	}
	pre, _ := prerelease(v.Remainder)
	sv, err := masterminds.NewVersion(fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch))
	if err != nil {
		return nil
	}
	if pre != "" {
		if withPre, preErr := sv.SetPrerelease(pre); preErr == nil {
			return &withPre
		}
	}
	return sv
}
