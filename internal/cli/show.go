package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/iconfinder/pkg/errors"
	"github.com/matzehuels/iconfinder/pkg/finder"
	"github.com/matzehuels/iconfinder/pkg/iconset"
)

// queryFlags are the filter and paging flags shared by show and search.
type queryFlags struct {
	filters []string
	page    int
	perPage int
	asJSON  bool
	names   bool
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.filters, "filter", "f", nil, "select a filter as kind=key (kinds: tags, prefixes, suffixes, collections)")
	cmd.Flags().IntVar(&f.page, "page", 1, "page to show, starting at 1")
	cmd.Flags().IntVar(&f.perPage, "per-page", 0, "icons per page (default from config)")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&f.names, "names", false, "print matching names only, one per line, ignoring pages")
}

// selections parses the --filter flags.
func (f *queryFlags) selections() (map[iconset.FilterKind]string, error) {
	if len(f.filters) == 0 {
		return nil, nil
	}
	out := make(map[iconset.FilterKind]string, len(f.filters))
	for _, arg := range f.filters {
		name, key, ok := strings.Cut(arg, "=")
		kind, known := iconset.ParseKind(name)
		if !ok || !known {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid filter %q, want kind=key", arg)
		}
		out[kind] = key
	}
	return out, nil
}

func (f *queryFlags) query(provider, prefix, keyword string) (finder.Query, error) {
	sel, err := f.selections()
	if err != nil {
		return finder.Query{}, err
	}
	if f.page < 1 {
		return finder.Query{}, errors.New(errors.ErrCodeInvalidInput, "page must be at least 1")
	}
	page := f.page - 1
	return finder.Query{
		Provider: provider,
		Prefix:   prefix,
		Keyword:  keyword,
		Filters:  sel,
		Page:     &page,
		PerPage:  f.perPage,
	}, nil
}

func (c *CLI) showCommand() *cobra.Command {
	var (
		qf          queryFlags
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "show <prefix> [keyword...]",
		Short: "Show the icons of one set",
		Long: `Show one page of an icon set, optionally narrowed by keyword and filters.

Filters are listed under the set info; pick one per kind with --filter.
Filters that would leave no result under the current selection are dimmed.`,
		Example: `  iconfinder show mdi
  iconfinder show mdi arrow --page 2
  iconfinder show mdi -f suffixes=-outline home
  iconfinder show -i fluent`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			q, err := qf.query(s.provider, args[0], joinArgs(args[1:]))
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(ctx))
			var view *finder.View
			err = spin(ctx, cmd.ErrOrStderr(), "Loading "+args[0]+"...", func() error {
				view, err = s.finder.Query(ctx, q)
				return err
			})
			if err != nil {
				return err
			}
			prog.done("Loaded " + view.Set.ID.String())

			if interactive {
				return runBrowser(ctx, s.finder, view)
			}
			return printView(cmd.OutOrStdout(), view, &qf)
		},
	}

	qf.register(cmd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the set interactively")

	return cmd
}

type viewJSON struct {
	ID      iconset.ID          `json:"id"`
	Info    *iconset.Info       `json:"info,omitempty"`
	Total   int                 `json:"total"`
	Matches int                 `json:"matches"`
	Page    int                 `json:"page"`
	Pages   int                 `json:"pages"`
	Icons   []string            `json:"icons"`
	Filters *iconset.FilterSet  `json:"filters,omitempty"`
	Search  *iconset.SearchInfo `json:"search,omitempty"`
}

func printView(w io.Writer, v *finder.View, qf *queryFlags) error {
	icons := v.Page.Visible
	if qf.names {
		icons = v.Page.Items
	}
	names := make([]string, len(icons))
	for i, u := range icons {
		names[i] = u.Name()
	}

	switch {
	case qf.asJSON:
		out := viewJSON{
			ID:      v.Set.ID,
			Info:    v.Set.Info,
			Total:   v.Set.Total,
			Matches: len(v.Page.Items),
			Page:    v.Page.Pages.Page + 1,
			Pages:   v.Page.Pages.TotalPages,
			Icons:   names,
			Search:  v.Set.Search,
		}
		if !v.Set.Filters.Empty() {
			out.Filters = v.Set.Filters
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case qf.names:
		for _, n := range names {
			fmt.Fprintln(w, n)
		}
		return nil
	}

	printHeader(w, v.Set)
	if filters := renderFilters(v.Set.Filters); filters != "" {
		fmt.Fprint(w, filters)
	}
	fmt.Fprintln(w)
	if len(names) == 0 {
		printWarning(w, "No icons match")
		return nil
	}
	fmt.Fprint(w, iconGrid(names, 100))
	fmt.Fprintln(w)
	stats := []string{fmt.Sprintf("%d of %d icons", len(v.Page.Items), v.Set.Total)}
	if pager := renderPager(v.Page.Pages); pager != "" {
		stats = append(stats, pager)
	}
	printStats(w, stats...)
	return nil
}

func printHeader(w io.Writer, set *iconset.IconSet) {
	title := set.ID.String()
	if set.Info != nil && set.Info.Name != "" {
		title = set.Info.Name + " " + StyleDim.Render("("+set.ID.String()+")")
	}
	if set.Search != nil {
		title = "Search results for " + strconv.Quote(set.Search.Keyword)
	}
	fmt.Fprintln(w, StyleTitle.Render(title))
	if set.Info == nil || set.Search != nil {
		return
	}
	if set.Info.Author.Name != "" {
		printKeyValue(w, "Author", set.Info.Author.Name)
	}
	if set.Info.License.Title != "" {
		printKeyValue(w, "License", set.Info.License.Title)
	}
	if set.Info.Version != "" {
		printKeyValue(w, "Version", set.Info.Version)
	}
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
