package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/iconfinder/pkg/customise"
	"github.com/matzehuels/iconfinder/pkg/errors"
)

func (c *CLI) iconCommand() *cobra.Command {
	var (
		rotate string
		flip   string
		cust   customise.Customisations
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "icon <prefix:name>",
		Short: "Resolve an icon and apply customisations",
		Long: `Resolve an icon name, alias or transformed alias, apply rotation, flips,
color and size, and print what to render: the body name, the combined
transform and the query parameters for the Iconify SVG endpoint.`,
		Example: `  iconfinder icon mdi:arrow-right
  iconfinder icon mdi:home --rotate 90deg --flip horizontal --color red`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, name, ok := strings.Cut(args[0], ":")
			if !ok {
				return errors.New(errors.ErrCodeInvalidInput, "icon %q must be written as prefix:name", args[0])
			}
			if err := errors.ValidateIconName(name); err != nil {
				return err
			}
			r, err := customise.ParseRotation(rotate)
			if err != nil {
				return err
			}
			cust.Rotate = r
			for _, f := range strings.Split(flip, ",") {
				switch strings.TrimSpace(f) {
				case "":
				case "horizontal", "h":
					cust.HFlip = true
				case "vertical", "v":
					cust.VFlip = true
				default:
					return errors.New(errors.ErrCodeInvalidInput, "invalid flip %q", f)
				}
			}

			s, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			sel, err := s.finder.Select(cmd.Context(), s.provider, prefix, name, cust)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			params := sel.Customisations.Params().Encode()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Name      string `json:"name"`
					Render    string `json:"render"`
					Transform any    `json:"transform"`
					Params    string `json:"params,omitempty"`
				}{sel.Name, sel.Render, sel.Transform, params})
			}

			printSuccess(out, "%s:%s", sel.Prefix, sel.Name)
			printKeyValue(out, "Render", sel.Render)
			if !sel.Transform.IsZero() {
				printKeyValue(out, "Transform", fmt.Sprintf("rotate %d°, hflip %t, vflip %t",
					sel.Transform.Rotate*90, sel.Transform.HFlip, sel.Transform.VFlip))
			}
			if params != "" {
				printKeyValue(out, "Params", params)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rotate, "rotate", "", "rotation: quarter turns (1), degrees (90deg) or percent (25%)")
	cmd.Flags().StringVar(&flip, "flip", "", "flip: horizontal, vertical or both comma-separated")
	cmd.Flags().StringVar(&cust.Color, "color", "", "icon color")
	cmd.Flags().StringVar(&cust.Width, "width", "", "icon width")
	cmd.Flags().StringVar(&cust.Height, "height", "", "icon height")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}
