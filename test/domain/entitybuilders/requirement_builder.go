//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/conanupdate/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// RequirementBuilder helps create test requirements with a fluent interface.
type RequirementBuilder struct {
	*testkit.BaseBuilder
	name     string
	version  string
	user     string
	channel  string
	kind     entities.RequirementKind
	syntax   entities.ReferenceSyntax
	location entities.SourceLocation
}

// NewRequirementBuilder creates a new requirement builder with sensible defaults.
func NewRequirementBuilder() *RequirementBuilder {
	return &RequirementBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "fmt",
		version:     "8.0.0",
		kind:        entities.KindRequires,
		syntax:      entities.SyntaxText,
	}
}

// WithName sets the package name.
func (b *RequirementBuilder) WithName(name string) *RequirementBuilder {
	b.name = name
	return b
}

// WithVersion sets the declared version or range.
func (b *RequirementBuilder) WithVersion(version string) *RequirementBuilder {
	b.version = version
	return b
}

// WithUserChannel sets the user and channel.
func (b *RequirementBuilder) WithUserChannel(user, channel string) *RequirementBuilder {
	b.user = user
	b.channel = channel
	return b
}

// WithKind sets the requirement kind.
func (b *RequirementBuilder) WithKind(kind entities.RequirementKind) *RequirementBuilder {
	b.kind = kind
	return b
}

// WithSyntax sets how the requirement was written.
func (b *RequirementBuilder) WithSyntax(syntax entities.ReferenceSyntax) *RequirementBuilder {
	b.syntax = syntax
	return b
}

// WithLocation sets the position of the version text.
func (b *RequirementBuilder) WithLocation(line, offset int) *RequirementBuilder {
	b.location = entities.SourceLocation{Line: line, Offset: offset}
	return b
}

// Build creates the requirement (satisfies testkit.Builder interface).
func (b *RequirementBuilder) Build() interface{} {
	return b.BuildRequirement()
}

// BuildRequirement creates the requirement with a concrete return type.
func (b *RequirementBuilder) BuildRequirement() entities.Requirement {
	location := b.location
	if location.Line > 0 {
		location.Length = len(b.version)
	}
	return entities.Requirement{
		Name:     b.name,
		Version:  b.version,
		User:     b.user,
		Channel:  b.channel,
		Kind:     b.kind,
		Syntax:   b.syntax,
		Location: location,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *RequirementBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "fmt"
	b.version = "8.0.0"
	b.user = ""
	b.channel = ""
	b.kind = entities.KindRequires
	b.syntax = entities.SyntaxText
	b.location = entities.SourceLocation{}
	return b
}

// Clone creates a deep copy of the RequirementBuilder.
func (b *RequirementBuilder) Clone() testkit.Builder {
	return &RequirementBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		version:     b.version,
		user:        b.user,
		channel:     b.channel,
		kind:        b.kind,
		syntax:      b.syntax,
		location:    b.location,
	}
}
