package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/iconfinder/pkg/buildinfo"
	"github.com/matzehuels/iconfinder/pkg/cache"
	"github.com/matzehuels/iconfinder/pkg/config"
	"github.com/matzehuels/iconfinder/pkg/errors"
	"github.com/matzehuels/iconfinder/pkg/finder"
	"github.com/matzehuels/iconfinder/pkg/observability"
	"github.com/matzehuels/iconfinder/pkg/providers"
)

const appName = "iconfinder"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	provider   string
	backend    string
	noCache    bool
	verbose    bool
	logFormat  string
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level, "text")}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Browse, filter and search Iconify icon sets",
		Long:         `iconfinder loads Iconify icon sets from the public API, self-hosted API mirrors or local JSON files, and lets you filter them by keyword, category, prefix and suffix.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			c.setFormat(c.logFormat)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/iconfinder/config.toml)")
	pf.StringVarP(&c.provider, "provider", "p", "", "provider name (default from config)")
	pf.StringVar(&c.backend, "cache", "", "cache backend: file, memory, redis, mongo or none")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable the response cache")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&c.logFormat, "log-format", "", "log format: text, json or logfmt")

	root.AddCommand(c.collectionsCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.iconCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.providersCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration and applies the global flags.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.provider != "" {
		cfg.Finder.Provider = c.provider
	}
	if c.backend != "" {
		cfg.Cache.Backend = c.backend
	}
	if c.noCache {
		cfg.Cache.Backend = cache.BackendNone
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !c.verbose && cfg.Log.Level != "" {
		c.SetLogLevel(parseLevel(cfg.Log.Level))
	}
	if c.logFormat == "" {
		c.setFormat(cfg.Log.Format)
	}
	return cfg, nil
}

// setFormat switches the log format and, in verbose mode, routes the
// observability hooks to the new logger.
func (c *CLI) setFormat(format string) {
	if format != "" && format != "text" {
		c.Logger = newLogger(os.Stderr, c.Logger.GetLevel(), format)
	}
	if c.verbose {
		observability.NewLogHooks(c.Logger).Install()
	}
}

// session is everything a command needs to query icon data.
type session struct {
	cfg      *config.Config
	cache    cache.Cache
	registry *providers.Registry
	finder   *finder.Finder
	provider string
}

// open loads the configuration and builds the cache, registry and finder.
// The configured logger replaces the one in the command's context. Callers
// must Close the session.
func (c *CLI) open(cmd *cobra.Command) (*session, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	ctx := cmd.Context()
	cc, keyer, err := cfg.OpenCache(ctx)
	if err != nil {
		return nil, err
	}
	reg, err := cfg.Registry(cc, keyer)
	if err != nil {
		cc.Close()
		return nil, err
	}
	provider := providers.Resolve(cfg.Finder.Provider)
	if _, ok := reg.Get(provider); !ok {
		cc.Close()
		return nil, errors.New(errors.ErrCodeInvalidProvider, "unknown provider %q", provider)
	}
	c.Logger.Debug("session", "provider", provider, "cache", cfg.Cache.Backend)
	return &session{
		cfg:      cfg,
		cache:    cc,
		registry: reg,
		finder:   finder.New(reg, finder.Options{Logger: c.Logger, PerPage: cfg.Finder.PerPage}),
		provider: provider,
	}, nil
}

func (s *session) Close() {
	s.finder.Close()
	if err := s.cache.Close(); err != nil {
		log.Warn("close cache", "err", err)
	}
}

// writeFile writes data to path, or to w when path is empty.
func writeFile(w io.Writer, data []byte, path string) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
