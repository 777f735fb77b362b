package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) providersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List the configured providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			var rows [][]string
			for _, p := range s.registry.List() {
				name := p.Name
				if name == s.provider {
					name = StyleHighlight.Render(name + " *")
				}
				where := p.Dir
				if where == "" {
					where = strings.Join(p.Hosts, ", ")
				}
				rows = append(rows, []string{name, string(p.Kind), where, p.Title})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Name", "Kind", "Source", "Title"}, rows))
			return nil
		},
	}
}
