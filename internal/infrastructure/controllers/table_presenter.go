package controllers

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rios0rios0/conanupdate/internal/domain/commands"
	"github.com/rios0rios0/conanupdate/internal/domain/entities"
)

const (
	minColumnWidth = 10
	arrow          = "→"
)

var (
	colorGreen  = lipgloss.Color("35")
	colorRed    = lipgloss.Color("167")
	colorYellow = lipgloss.Color("220")
	colorCyan   = lipgloss.Color("36")
	colorDim    = lipgloss.Color("240")
)

// TablePresenter prints check reports as an aligned, colored table. Colors
// follow the capabilities of the writer, so plain buffers get plain text.
type TablePresenter struct {
	out io.Writer

	styleBold     lipgloss.Style
	styleUpToDate lipgloss.Style
	styleUpdate   lipgloss.Style
	styleUnknown  lipgloss.Style
	styleCommand  lipgloss.Style
	styleDim      lipgloss.Style
}

// NewTablePresenter creates a presenter writing to out.
func NewTablePresenter(out io.Writer) *TablePresenter {
	renderer := lipgloss.NewRenderer(out)
	return &TablePresenter{
		out:           out,
		styleBold:     renderer.NewStyle().Bold(true),
		styleUpToDate: renderer.NewStyle().Foreground(colorGreen),
		styleUpdate:   renderer.NewStyle().Foreground(colorRed),
		styleUnknown:  renderer.NewStyle().Foreground(colorYellow),
		styleCommand:  renderer.NewStyle().Foreground(colorCyan),
		styleDim:      renderer.NewStyle().Foreground(colorDim),
	}
}

// RenderHeader announces the recipe being checked.
func (p *TablePresenter) RenderHeader(recipe entities.Recipe) {
	fmt.Fprintln(p.out, "Checking", p.styleBold.Render(recipe.Path))
}

// Render prints one row per checked requirement followed by a summary line.
func (p *TablePresenter) Render(report *commands.CheckReport, upgrade bool) {
	rows := make([]entities.UpdateResult, 0, len(report.Results))
	for _, result := range report.Results {
		if result.Status != entities.StatusSkipped {
			rows = append(rows, result)
		}
	}

	nameWidth, versionWidth := minColumnWidth, minColumnWidth
	for _, row := range rows {
		nameWidth = max(nameWidth, len(row.Requirement.Name))
		versionWidth = max(versionWidth, len(row.Requirement.Version))
	}
	nameWidth++

	for _, row := range rows {
		fmt.Fprintf(p.out, "%-*s %*s  %s  %s\n",
			nameWidth, row.Requirement.Name,
			versionWidth, row.Requirement.Version,
			p.styleDim.Render(arrow),
			p.latestColumn(row),
		)
	}

	p.renderFooter(report, upgrade)
}

func (p *TablePresenter) latestColumn(result entities.UpdateResult) string {
	switch result.Status {
	case entities.StatusUpdateAvailable:
		return highlightDifference(result.Latest.String(), result.Current.String(), p.styleUpdate)
	case entities.StatusUpToDate:
		return p.styleUpToDate.Render(result.Current.String())
	default:
		// a version that cannot be compared lists what is published instead
		if result.Current == nil && len(result.Available) > 0 {
			return p.styleUnknown.Render(strings.Join(result.Available, ", "))
		}
		return p.styleUnknown.Render(result.Reason)
	}
}

func (p *TablePresenter) renderFooter(report *commands.CheckReport, upgrade bool) {
	counts := entities.CountByStatus(report.Results)
	updates := counts[entities.StatusUpdateAvailable]

	fmt.Fprintln(p.out)
	switch {
	case upgrade && report.Upgraded > 0:
		fmt.Fprintf(p.out, "Upgraded %d requirement(s) in %s\n",
			report.Upgraded, p.styleBold.Render(report.Recipe.Path))
	case updates == 0 && counts[entities.StatusUnknown] == 0:
		fmt.Fprintln(p.out, p.styleUpToDate.Render(
			fmt.Sprintf("All requirements match the latest %s versions", report.Target)))
	case updates == 0:
		fmt.Fprintf(p.out, "No updates found, %d requirement(s) could not be checked\n",
			counts[entities.StatusUnknown])
	case !upgrade:
		fmt.Fprintf(p.out, "Run %s to upgrade %s\n",
			p.styleCommand.Render("conanupdate -u"), p.styleBold.Render(report.Recipe.Path))
	}
}

// highlightDifference styles the part of version that differs from compare.
func highlightDifference(version, compare string, style lipgloss.Style) string {
	i := 0
	for i < len(version) && i < len(compare) && version[i] == compare[i] {
		i++
	}
	if i == len(version) {
		return version
	}
	return version[:i] + style.Render(version[i:])
}
