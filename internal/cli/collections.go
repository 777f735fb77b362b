package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/iconfinder/pkg/collections"
)

func (c *CLI) collectionsCommand() *cobra.Command {
	var (
		category string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:     "collections [keyword...]",
		Aliases: []string{"ls"},
		Short:   "List the icon sets of a provider",
		Long: `List the icon sets of a provider, grouped by category.

Every word of the keyword must appear in the prefix, name, author or
category of a set. Hidden sets are never listed.`,
		Example: `  iconfinder collections
  iconfinder collections material
  iconfinder collections --category Emoji`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			var (
				list []*collections.Collection
				view *collections.List
			)
			err = spin(cmd.Context(), cmd.ErrOrStderr(), "Loading collections...", func() error {
				list, view, err = s.finder.FilterCollections(cmd.Context(), s.provider, joinArgs(args), category)
				return err
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}
			if len(list) == 0 {
				printWarning(out, "No collections match")
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, col := range list {
				rows = append(rows, []string{
					col.Prefix,
					col.Name,
					strconv.Itoa(col.Total),
					facetStyle(col.Category.Color).Render(categoryTitle(col.Category)),
					col.Author.Name,
					col.License.Title,
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Prefix", "Name", "Icons", "Category", "Author", "License"}, rows))
			printStats(out, fmt.Sprintf("%d of %d sets", len(list), len(view.Collections)), s.provider)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only list sets in this category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func categoryTitle(c *collections.Category) string {
	if c == nil || c.Title == "" {
		return "Uncategorized"
	}
	return c.Title
}
