package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/iconfinder/pkg/render/aliasgraph"
)

func (c *CLI) graphCommand() *cobra.Command {
	var (
		output string
		format string
		names  string
		hidden bool
	)

	cmd := &cobra.Command{
		Use:   "graph <prefix>",
		Short: "Draw the alias graph of an icon set (debug tool)",
		Long: `Draw how the names of an icon set resolve: every alias points at its
parent, and names rendering the same body with the same transform share a
box. Transformed aliases have labelled, dashed edges.

Formats: dot, svg, pdf, png. PDF and PNG need rsvg-convert (librsvg).`,
		Example: `  iconfinder graph mdi --names arrow-down,arrow-up -o arrows.svg
  iconfinder graph tabler --format dot | dot -Tpng > tabler.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = formatFromPath(output)
			}

			s, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			set, err := s.finder.OpenIconSet(ctx, s.provider, args[0])
			if err != nil {
				return err
			}

			opts := aliasgraph.Options{Hidden: hidden}
			if names != "" {
				opts.Names = strings.Split(names, ",")
			}
			data, err := aliasgraph.Render(ctx, aliasgraph.ToDOT(set, opts), format)
			if err != nil {
				return err
			}
			if err := writeFile(cmd.OutOrStdout(), data, output); err != nil {
				return err
			}
			if output != "" {
				printSuccess(cmd.ErrOrStderr(), "Alias graph of %s", set.ID)
				printFile(cmd.ErrOrStderr(), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&format, "format", "", "dot, svg, pdf or png (default from the output extension, else dot)")
	cmd.Flags().StringVar(&names, "names", "", "comma-separated names to restrict the graph to")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "include hidden names")

	return cmd
}

// formatFromPath derives the output format from a file extension.
func formatFromPath(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return "dot"
	}
	switch ext := strings.ToLower(path[i+1:]); ext {
	case "svg", "pdf", "png", "dot":
		return ext
	case "gv":
		return "dot"
	}
	return "dot"
}
