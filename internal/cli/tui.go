package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/iconfinder/pkg/customise"
	"github.com/matzehuels/iconfinder/pkg/filter"
	"github.com/matzehuels/iconfinder/pkg/finder"
	"github.com/matzehuels/iconfinder/pkg/iconset"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

type browserFocus int

const (
	focusIcons browserFocus = iota
	focusFilters
	focusSearch
)

// BrowserModel is the bubbletea model of the interactive set browser.
//
// The model owns a fork of the set, so changing filters and pages here
// never affects other users of the finder.
type BrowserModel struct {
	ctx    context.Context
	finder *finder.Finder
	view   *finder.View

	Keyword string
	Cursor  int // position on the current page
	Focus   browserFocus
	Kind    int // facet list under the cursor, index into kinds()
	Item    int // filter under the cursor within that list
	Width   int

	Selected *finder.Selection
	Err      error
}

// NewBrowserModel creates a browser over a view returned by the finder.
func NewBrowserModel(ctx context.Context, f *finder.Finder, v *finder.View) BrowserModel {
	return BrowserModel{ctx: ctx, finder: f, view: v, Keyword: v.Keyword, Width: 100}
}

func (m BrowserModel) Init() tea.Cmd {
	return nil
}

func (m BrowserModel) kinds() []iconset.FilterKind {
	var out []iconset.FilterKind
	for kind := range m.view.Set.Filters.All() {
		out = append(out, kind)
	}
	return out
}

// refresh re-runs the query after a keyword, filter or page change.
func (m BrowserModel) refresh() BrowserModel {
	m.view = m.finder.View(m.ctx, m.view.Set, m.Keyword)
	if m.Cursor >= len(m.view.Page.Visible) {
		m.Cursor = max(0, len(m.view.Page.Visible)-1)
	}
	return m
}

func (m BrowserModel) setPage(page int) BrowserModel {
	pages := m.view.Page.Pages
	if page < 0 || page > pages.MaxPage || page == pages.Page {
		return m
	}
	m.view.Set.State.Page = page
	m.Cursor = 0
	return m.refresh()
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.Focus {
		case focusSearch:
			return m.updateSearch(msg)
		case focusFilters:
			return m.updateFilters(msg)
		default:
			return m.updateIcons(msg)
		}
	}
	return m, nil
}

func (m BrowserModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.Focus = focusIcons
		return m, nil
	case tea.KeyBackspace:
		if m.Keyword == "" {
			return m, nil
		}
		r := []rune(m.Keyword)
		m.Keyword = string(r[:len(r)-1])
	case tea.KeySpace:
		m.Keyword += " "
	case tea.KeyRunes:
		m.Keyword += string(msg.Runes)
	default:
		return m, nil
	}
	m.view.Set.State.Page = 0
	return m.refresh(), nil
}

func (m BrowserModel) updateFilters(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kinds := m.kinds()
	if len(kinds) == 0 {
		m.Focus = focusIcons
		return m, nil
	}
	list := m.view.Set.Filters.Get(kinds[m.Kind])
	switch msg.String() {
	case "q", "esc", "tab":
		m.Focus = focusIcons
	case "up", "k":
		if m.Kind > 0 {
			m.Kind--
			m.Item = 0
		}
	case "down", "j":
		if m.Kind < len(kinds)-1 {
			m.Kind++
			m.Item = 0
		}
	case "left", "h":
		if m.Item > 0 {
			m.Item--
		}
	case "right", "l":
		if m.Item < len(list.Filters)-1 {
			m.Item++
		}
	case "enter", " ":
		f := list.Filters[m.Item]
		if list.Selected == f {
			list.Clear()
		} else {
			list.Selected = f
		}
		m.view.Set.State.Page = 0
		return m.refresh(), nil
	}
	return m, nil
}

func (m BrowserModel) updateIcons(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.view.Page.Visible
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "/":
		m.Focus = focusSearch
	case "tab":
		if len(m.kinds()) > 0 {
			m.Focus = focusFilters
		}
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(visible)-1 {
			m.Cursor++
		}
	case "left", "h", "pgup":
		return m.setPage(m.view.Page.Pages.Page - 1), nil
	case "right", "l", "pgdown":
		return m.setPage(m.view.Page.Pages.Page + 1), nil
	case "x":
		m.view.Set.Filters.ClearSelection()
		m.Keyword = ""
		m.view.Set.State.Page = 0
		return m.refresh(), nil
	case "enter":
		if len(visible) == 0 {
			return m, nil
		}
		set := m.view.Set
		sel, err := m.finder.Select(m.ctx, set.ID.Provider, set.ID.Prefix, visible[m.Cursor].Name(), customise.Customisations{})
		m.Selected, m.Err = sel, err
		return m, tea.Quit
	}
	return m, nil
}

func (m BrowserModel) View() string {
	var b strings.Builder
	set := m.view.Set

	title := set.ID.String()
	if set.Info != nil && set.Info.Name != "" {
		title = set.Info.Name
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString(" " + listDimStyle.Render(set.ID.String()) + "\n")
	b.WriteString(listDimStyle.Render("↑/↓ move  ←/→ page  / search  tab filters  x reset  ⏎ select  q quit"))
	b.WriteString("\n\n")

	prompt := "search: "
	if m.Focus == focusSearch {
		prompt = listSelectedStyle.Render(prompt)
		b.WriteString(prompt + m.Keyword + "█\n")
	} else {
		b.WriteString(listDimStyle.Render(prompt) + m.Keyword + "\n")
	}

	for i, kind := range m.kinds() {
		list := set.Filters.Get(kind)
		var parts []string
		for j, f := range list.Filters {
			if !f.Shown() {
				continue
			}
			label := f.Title
			if label == "" {
				label = f.Key
			}
			style := facetStyle(f.Color)
			switch {
			case f.Disabled:
				style = listDimStyle
			case f == list.Selected:
				style = style.Bold(true).Underline(true)
			}
			if m.Focus == focusFilters && i == m.Kind && j == m.Item {
				label = "▸" + label
			}
			parts = append(parts, style.Render(label))
		}
		b.WriteString(styleHeader.Width(12).Render(string(kind)) + " " + strings.Join(parts, " ") + "\n")
	}
	b.WriteString("\n")

	visible := m.view.Page.Visible
	if len(visible) == 0 {
		b.WriteString(StyleWarning.Render("No icons match") + "\n")
	}
	for i, u := range visible {
		line := "  " + u.Name()
		if extra := len(u.Icons) - 1; extra > 0 {
			line += listDimStyle.Render(fmt.Sprintf(" +%d aliases", extra))
		}
		if !u.Transform.IsZero() {
			line += listDimStyle.Render(" ↻ " + u.Render)
		}
		if i == m.Cursor && m.Focus == focusIcons {
			line = listSelectedStyle.Render("▸ "+u.Name()) + strings.TrimPrefix(line, "  "+u.Name())
			line += clickableHint(set, u.Name())
		} else {
			line = listNormalStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	pages := m.view.Page.Pages
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d of %d icons  ", pages.Total, set.Total)))
	b.WriteString(renderPager(pages))
	return b.String()
}

// clickableHint lists the filters that would narrow the view to the
// icon's groups.
func clickableHint(set *iconset.IconSet, name string) string {
	var parts []string
	for _, c := range filter.ClickableFilters(set, name) {
		if c.Filter.Title == "" {
			continue
		}
		parts = append(parts, facetStyle(c.Filter.Color).Render(c.Filter.Title))
	}
	if len(parts) == 0 {
		return ""
	}
	return listDimStyle.Render("  in ") + strings.Join(parts, listDimStyle.Render(", "))
}

// runBrowser runs the browser and prints the selected icon.
func runBrowser(ctx context.Context, f *finder.Finder, v *finder.View) error {
	p := tea.NewProgram(NewBrowserModel(ctx, f, v), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	m := final.(BrowserModel)
	if m.Err != nil {
		return m.Err
	}
	if m.Selected != nil {
		fmt.Printf("%s:%s\n", m.Selected.Prefix, m.Selected.Name)
	}
	return nil
}
