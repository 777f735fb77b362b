package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/iconfinder/pkg/iconset"
	"github.com/matzehuels/iconfinder/pkg/pagination"
)

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success
	colorYellow = lipgloss.Color("220") // warnings
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // secondary text
	colorDim    = lipgloss.Color("240") // muted text
)

// facetColors colors filters by their Color index.
var facetColors = []lipgloss.Color{"75", "114", "215", "176", "80", "203", "228", "147", "209", "121"}

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

func facetStyle(color int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(facetColors[color%len(facetColors)])
}

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented muted line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints a dim " · "-separated line.
func printStats(w io.Writer, parts ...string) {
	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Fprintln(w, line)
}

// renderTable renders rows under headers with a rounded border.
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

// renderFilters renders one line per facet list. Selected filters are
// bracketed, disabled ones are dim, and ones hidden when disabled are
// left out.
func renderFilters(fs *iconset.FilterSet) string {
	var b strings.Builder
	for kind, list := range fs.All() {
		var parts []string
		for _, f := range list.Filters {
			if !f.Shown() {
				continue
			}
			label := f.Title
			if label == "" {
				label = f.Key
			}
			switch {
			case f == list.Selected:
				parts = append(parts, facetStyle(f.Color).Bold(true).Render("["+label+"]"))
			case f.Disabled:
				parts = append(parts, StyleDim.Render(label))
			default:
				parts = append(parts, facetStyle(f.Color).Render(label))
			}
		}
		if len(parts) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", styleHeader.Width(12).Render(string(kind)), strings.Join(parts, "  "))
	}
	return b.String()
}

// renderPager renders "page 2/5" with the nearby page numbers.
func renderPager(p pagination.Pages) string {
	if p.TotalPages <= 1 {
		return ""
	}
	var nums []string
	for _, n := range p.Buttons(2) {
		s := fmt.Sprint(n + 1)
		switch n {
		case -1:
			s = StyleDim.Render("…")
		case p.Page:
			s = StyleHighlight.Bold(true).Render(s)
		default:
			s = StyleDim.Render(s)
		}
		nums = append(nums, s)
	}
	return fmt.Sprintf("page %d/%d  %s", p.Page+1, p.TotalPages, strings.Join(nums, " "))
}

// iconGrid lays names out in columns fitting width.
func iconGrid(names []string, width int) string {
	if len(names) == 0 {
		return ""
	}
	colWidth := 0
	for _, n := range names {
		colWidth = max(colWidth, lipgloss.Width(n))
	}
	colWidth += 2
	cols := max(1, width/colWidth)

	var b strings.Builder
	for i, n := range names {
		b.WriteString(lipgloss.NewStyle().Width(colWidth).Render(n))
		if (i+1)%cols == 0 || i == len(names)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
