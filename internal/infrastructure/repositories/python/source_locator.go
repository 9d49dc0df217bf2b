package python

import (
	"sort"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/conanupdate/internal/domain/entities"
)

// LocateRequirements turns captured references into requirements positioned
// on the string literals that spell them. Repeated references consume
// successive literals. A reference built at runtime has no literal and is
// returned unlocated, after the located ones.
func LocateRequirements(
	source string,
	captured []capturedRequirement,
	literals []stringLiteral,
) []entities.Requirement {
	lines := newLineIndex(source)
	used := make([]bool, len(literals))

	located := make([]entities.Requirement, 0, len(captured))
	var unlocated []entities.Requirement

	for _, item := range captured {
		req, err := entities.ParseReference(item.Reference)
		if err != nil {
			logger.Warnf("[python] Skipping malformed requirement %q", item.Reference)
			continue
		}
		req.Kind = entities.RequirementKind(item.Kind)
		req.Syntax = entities.SyntaxPython

		offset, ok := claimLiteral(source, literals, used, item.Reference, req)
		if !ok {
			logger.Debugf("[python] %s is not a string literal in the recipe", item.Reference)
			unlocated = append(unlocated, req)
			continue
		}

		req.Location = entities.SourceLocation{
			Line:   lines.lineOf(offset),
			Offset: offset,
			Length: len(req.Version),
		}
		located = append(located, req)
	}

	sort.SliceStable(located, func(i, j int) bool {
		return located[i].Location.Offset < located[j].Location.Offset
	})
	return append(located, unlocated...)
}

// claimLiteral marks the first unused literal spelling reference as used and
// returns the offset of the version inside it. Literals whose text does not
// hold the version at that offset are never claimed.
func claimLiteral(
	source string,
	literals []stringLiteral,
	used []bool,
	reference string,
	req entities.Requirement,
) (int, bool) {
	for i, literal := range literals {
		if used[i] || literal.Value != reference {
			continue
		}
		offset := literal.Offset + req.VersionOffset()
		end := offset + len(req.Version)
		if literal.Offset < 0 || end > len(source) || source[offset:end] != req.Version {
			continue
		}
		used[i] = true
		return offset, true
	}
	return 0, false
}

// lineIndex holds the byte offset where each line starts.
type lineIndex []int

func newLineIndex(source string) lineIndex {
	starts := lineIndex{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineOf returns the 1-based line holding offset.
func (l lineIndex) lineOf(offset int) int {
	return sort.Search(len(l), func(i int) bool { return l[i] > offset })
}
