package entities

import (
	"fmt"
	"regexp"
	"strings"
)

// RequirementKind is the declaration a requirement came from.
type RequirementKind string

const (
	KindRequires      RequirementKind = "requires"
	KindBuildRequires RequirementKind = "build_requires"
	KindToolRequires  RequirementKind = "tool_requires"
	KindTestRequires  RequirementKind = "test_requires"
)

// ReferenceSyntax tells how a requirement was written in its recipe.
type ReferenceSyntax string

const (
	// SyntaxText is a bare "name/version" line of a conanfile.txt.
	SyntaxText ReferenceSyntax = "txt"
	// SyntaxPython is a string literal passed to a requirement attribute or call.
	SyntaxPython ReferenceSyntax = "py"
)

// SourceLocation points at the version text of a requirement inside its recipe.
// Line is 1-based; a zero Line means the requirement could not be located and
// will not be rewritten.
type SourceLocation struct {
	Line   int
	Offset int // byte offset of the version text
	Length int // byte length of the version text
}

// Located reports whether the requirement has a usable position in the recipe.
func (l SourceLocation) Located() bool {
	return l.Line > 0 && l.Length > 0
}

// Requirement is one declared dependency of a recipe.
type Requirement struct {
	Name     string
	Version  string
	User     string
	Channel  string
	Revision string
	Kind     RequirementKind
	Syntax   ReferenceSyntax
	Location SourceLocation
}

// IsRange reports whether the declared version is a bracketed version range.
func (r Requirement) IsRange() bool {
	return strings.HasPrefix(r.Version, "[") && strings.HasSuffix(r.Version, "]")
}

// Reference renders the requirement as "name/version[@user/channel][#revision]".
func (r Requirement) Reference() string {
	var sb strings.Builder
	sb.WriteString(r.Name)
	sb.WriteString("/")
	sb.WriteString(r.Version)
	if r.User != "" || r.Channel != "" {
		sb.WriteString("@")
		sb.WriteString(r.User)
		sb.WriteString("/")
		sb.WriteString(r.Channel)
	}
	if r.Revision != "" {
		sb.WriteString("#")
		sb.WriteString(r.Revision)
	}
	return sb.String()
}

const conanAttr = `[a-zA-Z0-9_][a-zA-Z0-9_+.-]{1,50}`

var (
	referencePattern = regexp.MustCompile(
		`^(?P<name>` + conanAttr + `)/(?P<version>\[[^\]]+\]|[a-zA-Z0-9_][a-zA-Z0-9_+.-]{0,50})` +
			`(?:@(?P<user>` + conanAttr + `)/(?P<channel>` + conanAttr + `))?` +
			`(?:#(?P<revision>[a-zA-Z0-9]+))?$`,
	)

	// SearchHitPattern finds "name/version[@user/channel]" references inside
	// free-form package manager output.
	SearchHitPattern = regexp.MustCompile(
		`(` + conanAttr + `)/(` + conanAttr + `|[0-9])(?:@(` + conanAttr + `)/(` + conanAttr + `))?`,
	)
)

// ParseReference parses a Conan reference string. The returned requirement has
// no kind, syntax or location; callers fill those in.
func ParseReference(reference string) (Requirement, error) {
	match := referencePattern.FindStringSubmatch(strings.TrimSpace(reference))
	if match == nil {
		return Requirement{}, fmt.Errorf("invalid reference %q", reference)
	}
	req := Requirement{}
	for i, group := range referencePattern.SubexpNames() {
		switch group {
		case "name":
			req.Name = match[i]
		case "version":
			req.Version = match[i]
		case "user":
			req.User = match[i]
		case "channel":
			req.Channel = match[i]
		case "revision":
			req.Revision = match[i]
		}
	}
	return req, nil
}

// VersionOffset returns the byte offset of the version text inside the
// reference string returned by Reference.
func (r Requirement) VersionOffset() int {
	return len(r.Name) + 1
}

// DistinctNames returns the package names of reqs in first-seen order.
func DistinctNames(reqs []Requirement) []string {
	seen := make(map[string]struct{}, len(reqs))
	names := make([]string, 0, len(reqs))
	for _, req := range reqs {
		if _, ok := seen[req.Name]; ok {
			continue
		}
		seen[req.Name] = struct{}{}
		names = append(names, req.Name)
	}
	return names
}
