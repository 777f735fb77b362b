package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/iconfinder/pkg/finder"
	"github.com/matzehuels/iconfinder/pkg/iconset"
)

func (c *CLI) searchCommand() *cobra.Command {
	var (
		qf    queryFlags
		limit int
	)

	cmd := &cobra.Command{
		Use:   "search <keyword...>",
		Short: "Search icons across all sets of a provider",
		Long: `Search icons across all sets of an API provider.

Results are fully qualified names ("mdi:home"). When they span several
sets, narrow them with --filter collections=<prefix>.`,
		Example: `  iconfinder search arrow
  iconfinder search home --limit 200 -f collections=mdi`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			keyword := joinArgs(args)
			q, err := qf.query(s.provider, "", keyword)
			if err != nil {
				return err
			}

			var set *iconset.IconSet
			err = spin(ctx, cmd.ErrOrStderr(), "Searching...", func() error {
				set, err = s.finder.Search(ctx, s.provider, keyword, limit)
				return err
			})
			if err != nil {
				return err
			}
			if set == nil {
				printWarning(cmd.OutOrStdout(), "No icons found for %q", keyword)
				return nil
			}

			if err := finder.SelectFilters(set, q.Filters); err != nil {
				return err
			}
			set.State.Page = *q.Page
			if q.PerPage > 0 {
				set.State.PerPage = q.PerPage
			}
			view := s.finder.View(ctx, set, "")
			if err := printView(cmd.OutOrStdout(), view, &qf); err != nil {
				return err
			}
			if set.Search.More && !qf.asJSON && !qf.names {
				printDetail(cmd.OutOrStdout(), "more results available, raise --limit")
			}
			return nil
		},
	}

	qf.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of results (default 64)")

	return cmd
}
