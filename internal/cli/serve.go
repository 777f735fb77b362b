package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/iconfinder/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		preload []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON HTTP API",
		Long: `Run the JSON HTTP API over the configured providers.

Icon sets listed with --preload (or finder.preload in the config) are loaded
before the server starts accepting requests. The server stops gracefully on
SIGINT or SIGTERM.`,
		Example: `  iconfinder serve --addr :9000 --preload mdi,tabler`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			opts := server.Options{
				Addr:         s.cfg.Server.Addr,
				ReadTimeout:  s.cfg.Server.ReadTimeout,
				WriteTimeout: s.cfg.Server.WriteTimeout,
				Logger:       loggerFromContext(cmd.Context()),
				Provider:     s.provider,
				Preload:      s.cfg.Finder.Preload,
			}
			if addr != "" {
				opts.Addr = addr
			}
			if len(preload) > 0 {
				opts.Preload = preload
			}
			return server.New(s.finder, opts).ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringSliceVar(&preload, "preload", nil, "icon set prefixes to load at startup")

	return cmd
}
