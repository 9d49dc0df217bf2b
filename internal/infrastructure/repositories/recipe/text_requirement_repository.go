package recipe

import (
	"context"
	"fmt"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/conanupdate/internal/domain/entities"
	"github.com/rios0rios0/conanupdate/internal/domain/repositories"
)

// requirementSections maps conanfile.txt section headers to requirement kinds.
var requirementSections = map[string]entities.RequirementKind{
	"requires":       entities.KindRequires,
	"build_requires": entities.KindBuildRequires,
	"tool_requires":  entities.KindToolRequires,
	"test_requires":  entities.KindTestRequires,
}

// TextRequirementRepository parses conanfile.txt recipes.
type TextRequirementRepository struct{}

// NewTextRequirementRepository creates a new conanfile.txt extractor.
func NewTextRequirementRepository() repositories.RequirementRepository {
	return &TextRequirementRepository{}
}

func (r *TextRequirementRepository) Format() entities.RecipeFormat {
	return entities.RecipeFormatText
}

// Extract reads the recipe from disk and parses it.
func (r *TextRequirementRepository) Extract(
	_ context.Context,
	recipe entities.Recipe,
	_ *entities.Settings,
) ([]entities.Requirement, error) {
	content, err := os.ReadFile(recipe.Path)
	if err != nil {
		return nil, &entities.ExtractionError{Path: recipe.Path, Cause: err}
	}
	return ParseText(string(content)), nil
}

// ParseText extracts the requirements of a conanfile.txt body in declaration
// order. Malformed lines are logged and skipped.
func ParseText(content string) []entities.Requirement {
	var (
		reqs      []entities.Requirement
		section   entities.RequirementKind
		inSection bool
		offset    int
	)

	for lineNo, line := range strings.SplitAfter(content, "\n") {
		lineStart := offset
		offset += len(line)

		body := strings.TrimRight(line, "\r\n")
		trimmed := strings.TrimSpace(body)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section, inSection = requirementSections[strings.TrimSpace(trimmed[1:len(trimmed)-1])]
			continue
		}
		if !inSection {
			continue
		}

		req, err := entities.ParseReference(trimmed)
		if err != nil {
			logger.Warnf("[recipe] Skipping malformed requirement on line %d: %v", lineNo+1, err)
			continue
		}

		req.Kind = section
		req.Syntax = entities.SyntaxText
		req.Location = entities.SourceLocation{
			Line:   lineNo + 1,
			Offset: lineStart + strings.Index(body, trimmed) + req.VersionOffset(),
			Length: len(req.Version),
		}
		reqs = append(reqs, req)
	}
	return reqs
}

// describe is used in log messages about a requirement.
func describe(req entities.Requirement) string {
	return fmt.Sprintf("%s (line %d)", req.Reference(), req.Location.Line)
}
