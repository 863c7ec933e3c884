// Package cli implements the lifelist command-line interface.
//
// This package provides commands for querying observed-taxa life lists,
// browsing them interactively, exporting taxonomy diagrams, serving the HTTP
// API, and managing the response cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - list: Run a query and print its paginated life list
//   - taxon: Look up a single taxon
//   - browse: Page through a life list interactively
//   - graph: Export the filtered taxonomy as Graphviz DOT or SVG
//   - serve: Run the HTTP session API
//   - cache: Manage the response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/naturelab/lifelist/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/naturelab/lifelist/pkg/buildinfo"
	"github.com/naturelab/lifelist/pkg/cache"
	"github.com/naturelab/lifelist/pkg/config"
	"github.com/naturelab/lifelist/pkg/inat"
	"github.com/naturelab/lifelist/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "lifelist"

// app holds shared state for all commands: the resolved configuration plus
// the persistent flags that shape it.
type app struct {
	cfg        config.Config
	configPath string
	verbose    bool
	noCache    bool
}

// Execute runs the lifelist CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext; --verbose (-v) raises it to debug level. Configuration
// is resolved before any command runs: built-in defaults, then the config
// file, then command flags.
func Execute() error {
	a := &app{}

	root := &cobra.Command{
		Use:          appName,
		Short:        "Lifelist assembles and explores observed-taxa life lists",
		Long:         `Lifelist runs natural-language queries like "my birds from home" against iNaturalist, filters the observed taxa by rank, and presents them as paginated, navigable lists.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if a.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
			return a.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/lifelist/config.toml)")
	root.PersistentFlags().BoolVar(&a.noCache, "no-cache", false, "disable response caching")

	root.AddCommand(a.listCommand())
	root.AddCommand(a.taxonCommand())
	root.AddCommand(a.browseCommand())
	root.AddCommand(a.graphCommand())
	root.AddCommand(a.serveCommand())
	root.AddCommand(a.cacheCommand())
	root.AddCommand(a.completionCommand())

	return root.ExecuteContext(context.Background())
}

// loadConfig resolves the effective configuration from defaults and the
// config file. A missing file leaves the defaults in place.
func (a *app) loadConfig() error {
	path := a.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			a.cfg = config.Default()
			return nil
		}
	}
	overlay, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	a.cfg = config.Resolve(overlay)
	return nil
}

// newRunner builds the pipeline runner for a command invocation, backed by
// the configured cache.
func (a *app) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	backend, err := a.newCache(ctx)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewDefaultKeyer()
	if a.cfg.API.CacheBackend == "redis" {
		// Redis instances are often shared, so claim a key namespace.
		keyer = cache.NewScopedKeyer(keyer, "lifelist:")
	}
	client := inat.NewClient(backend, a.cfg.API.CacheTTL,
		inat.WithBaseURL(a.cfg.API.BaseURL), inat.WithKeyer(keyer))
	return pipeline.NewRunner(client, backend, keyer, loggerFromContext(ctx)), nil
}

// newCache constructs the cache backend named by the configuration.
// Backends that cannot be reached degrade to no caching rather than failing
// the command.
func (a *app) newCache(ctx context.Context) (cache.Cache, error) {
	if a.noCache {
		return cache.NewNullCache(), nil
	}
	switch a.cfg.API.CacheBackend {
	case "memory":
		return cache.NewMemoryCache(), nil
	case "redis":
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: a.cfg.API.RedisAddr})
		if err != nil {
			loggerFromContext(ctx).Warn("redis unavailable, caching disabled", "addr", a.cfg.API.RedisAddr, "err", err)
			return cache.NewNullCache(), nil
		}
		return c, nil
	case "none":
		return cache.NewNullCache(), nil
	default:
		dir := a.cfg.API.CacheDir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	}
}

// pipelineOptions translates the display configuration into pipeline options
// for one query argument.
func (a *app) pipelineOptions(argument string, refresh bool) pipeline.Options {
	return pipeline.Options{
		Argument: argument,
		Defaults: inat.Defaults{
			Login:       a.cfg.User.Login,
			HomePlaceID: a.cfg.User.HomePlaceID,
		},
		Policy:     a.cfg.Display.Policy,
		PerPage:    a.cfg.Display.PerPage,
		Sort:       a.cfg.Display.Sort,
		Order:      a.cfg.Display.Order,
		WithURL:    a.cfg.Display.WithURL,
		WithTaxa:   true,
		WithIndex:  a.cfg.Display.WithIndex,
		WithDirect: a.cfg.Display.WithDirect,
		WithCommon: a.cfg.Display.WithCommon,
		Refresh:    refresh,
	}
}

// cacheDir returns the cache directory using XDG standard (~/.cache/lifelist/).
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
