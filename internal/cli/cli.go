package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/photogrid/pkg/buildinfo"
	"github.com/matzehuels/photogrid/pkg/cache"
	"github.com/matzehuels/photogrid/pkg/commit"
	"github.com/matzehuels/photogrid/pkg/config"
	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/integrations/photoprism"
	"github.com/matzehuels/photogrid/pkg/observability"
	"github.com/matzehuels/photogrid/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "photogrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	server     string
	refresh    bool
	noCache    bool

	cfg   *config.Config
	stats *observability.Counters // set while debug logging is on
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "photogrid lays out, browses and batch-edits a photo gallery",
		Long: `photogrid is a command-line client for a servlet-based photo gallery.

It computes responsive layouts and image fits, browses the gallery, edits
single pictures or whole selections, manages access tokens and uploads new
pictures. A small preview server exposes the layout and batch computations
over HTTP.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			if c.Logger.GetLevel() <= log.DebugLevel {
				c.stats = &observability.Counters{}
				observability.Install(c.stats)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.stats == nil {
				return
			}
			c.Logger.Debug("totals", c.stats.Snapshot().KeyVals()...)
			observability.Reset()
			c.stats = nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default: ~/.config/photogrid/config.toml)")
	pf.StringVarP(&c.server, "server", "s", "", "gallery server URL (overrides config)")
	pf.BoolVar(&c.refresh, "refresh", false, "bypass cached responses")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable the response cache")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.fitCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.tokensCommand())
	root.AddCommand(c.uploadCommand())
	root.AddCommand(c.locationsCommand())
	root.AddCommand(c.runsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

// loadConfig loads the configuration once per process.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.server != "" {
		cfg.Server.URL = c.server
	}
	if c.noCache {
		cfg.Cache.Backend = "none"
	}
	c.cfg = cfg
	return cfg, nil
}

// serverURL returns the configured server or a helpful error.
func (c *CLI) serverURL() (string, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.Server.URL == "" {
		return "", errors.New(errors.ErrCodeInvalidConfig,
			"no gallery server configured (use --server or set server.url in the config file)")
	}
	return cfg.Server.URL, nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	switch cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL, cfg.Cache.RedisPrefix)
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) newJournal(ctx context.Context) (commit.Journal, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	switch cfg.Journal.Backend {
	case "none":
		return commit.NopJournal{}, nil
	case "mongo":
		return commit.NewMongoJournal(ctx, cfg.Journal.MongoURI, cfg.Journal.MongoDatabase)
	}
	dir := cfg.Journal.Dir
	if dir == "" {
		data, err := dataDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(data, "runs")
	}
	return commit.NewFileJournal(dir)
}

func (c *CLI) sessionStore() (*session.CLIStore, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, fmt.Errorf("get config dir: %w", err)
	}
	return session.NewCLIStore(filepath.Join(dir, "sessions"))
}

// client is a gallery client plus the resources it holds.
type client struct {
	*photoprism.Client
	server string
	cache  cache.Cache
	store  *session.CLIStore
}

func (cl *client) Close() error { return cl.cache.Close() }

// saveJar persists the client's current token jar.
func (cl *client) saveJar(ctx context.Context) error {
	return cl.store.SaveJar(ctx, cl.server, cl.Jar())
}

// newClient connects to the configured server with the saved token jar.
func (c *CLI) newClient(ctx context.Context) (*client, error) {
	server, err := c.serverURL()
	if err != nil {
		return nil, err
	}
	cfg, _ := c.loadConfig()

	store, err := c.sessionStore()
	if err != nil {
		return nil, err
	}
	jar, err := store.Jar(ctx, server)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	ch, err := c.newCache(ctx)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	pc, err := photoprism.New(server, photoprism.Options{
		Cache:   ch,
		TTL:     cfg.Cache.TTL,
		Timeout: cfg.Server.Timeout,
		Retries: cfg.Server.Retries,
		Refresh: c.refresh,
		Jar:     jar,
		Logger:  c.Logger,
	})
	if err != nil {
		_ = ch.Close()
		return nil, err
	}
	c.Logger.Debug("client ready", "server", server, "tokens", jar.Len(), "cache", cfg.Cache.Backend)
	return &client{Client: pc, server: server, cache: ch, store: store}, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/photogrid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// dataDir returns the data directory (~/.local/share/photogrid/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// reauthHint adds the redeem hint to errors that need a new token.
func reauthHint(err error) error {
	if errors.NeedsReauth(err) {
		return fmt.Errorf("%w\n  the server wants a token: run '%s tokens redeem CODE'", err, appName)
	}
	return err
}
