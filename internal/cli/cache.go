package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/iconfinder/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the API response cache",
	}

	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the cache backend and its size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cc, _, err := cfg.OpenCache(cmd.Context())
			if err != nil {
				return err
			}
			defer cc.Close()

			out := cmd.OutOrStdout()
			printKeyValue(out, "Backend", cfg.Cache.Backend)
			printKeyValue(out, "TTL", cfg.Cache.TTL.String())
			if cfg.Cache.Scope != "" {
				printKeyValue(out, "Scope", cfg.Cache.Scope)
			}
			switch cc := cc.(type) {
			case *cache.FileCache:
				stats, err := cc.Stats()
				if err != nil {
					return err
				}
				printKeyValue(out, "Directory", cc.Dir())
				printKeyValue(out, "Entries", fmt.Sprint(stats.Entries))
				printKeyValue(out, "Size", formatBytes(stats.Bytes))
			case *cache.MemoryCache:
				printKeyValue(out, "Entries", fmt.Sprint(cc.Len()))
			default:
				if cfg.Cache.URL != "" {
					printKeyValue(out, "URL", cfg.Cache.URL)
				}
			}
			return nil
		},
	}
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			cc, _, err := cfg.OpenCache(ctx)
			if err != nil {
				return err
			}
			defer cc.Close()

			n, err := cache.Clear(ctx, cc)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if n == 0 {
				printInfo(out, "Cache is empty")
				return nil
			}
			printSuccess(out, "Cleared %d cached entries", n)
			if fc, ok := cc.(*cache.FileCache); ok {
				printDetail(out, "Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.Cache.Dir)
			return nil
		},
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
