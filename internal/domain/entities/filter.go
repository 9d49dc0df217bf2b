package entities

import (
	"path"
	"strings"
)

// PackageFilter selects package names by wildcard patterns (* and ?).
// A pattern prefixed with "!" excludes the names it matches. A name passes
// when no exclusion matches it and, if there are plain patterns, one of them
// matches it.
type PackageFilter struct {
	includes []string
	excludes []string
}

// NewPackageFilter builds a filter from the given patterns, ignoring blank ones.
func NewPackageFilter(patterns ...string) PackageFilter {
	var filter PackageFilter
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		switch {
		case p == "" || p == "!":
			continue
		case strings.HasPrefix(p, "!"):
			filter.excludes = append(filter.excludes, strings.TrimLeft(p, "!"))
		default:
			filter.includes = append(filter.includes, p)
		}
	}
	return filter
}

// Matches reports whether name passes the filter.
func (f PackageFilter) Matches(name string) bool {
	for _, pattern := range f.excludes {
		if globMatch(pattern, name) {
			return false
		}
	}
	if len(f.includes) == 0 {
		return true
	}
	for _, pattern := range f.includes {
		if globMatch(pattern, name) {
			return true
		}
	}
	return false
}

func globMatch(pattern, name string) bool {
	matched, err := path.Match(pattern, name)
	if err != nil {
		return pattern == name
	}
	return matched
}
