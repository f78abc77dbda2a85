// Package cli implements the techradar command-line interface.
package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/pkg/buildinfo"
	"github.com/matzehuels/techradar/pkg/cache"
	"github.com/matzehuels/techradar/pkg/config"
	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/httputil"
	"github.com/matzehuels/techradar/pkg/pipeline"
	"github.com/matzehuels/techradar/pkg/source"
	"github.com/matzehuels/techradar/pkg/source/mongo"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "techradar"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	envFiles   []string
}

// New creates a CLI that logs to w at level.
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
		Use:          appName,
		Short:        "Render technology radars from a spreadsheet",
		Long:         `techradar loads radar entries from a published spreadsheet, a file or a database and renders them as a four-quadrant technology radar.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" if present)")
	root.PersistentFlags().StringSliceVar(&c.envFiles, "env-file", nil, "dotenv files to load (default .env if present)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	root.AddCommand(c.versionCommand())

	return root
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(buildinfo.String())
		},
	}
}

// =============================================================================
// Wiring
// =============================================================================

// loadConfig reads the config file and environment chosen by the root flags.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath, c.envFiles...)
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	ch, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, newKeyer(cfg.Radar), c.Logger), nil
}

func newCache(ctx context.Context, cc config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cc.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cc.RedisAddr, appName+":")
	default:
		fc, err := cache.NewFileCache(cc.Dir)
		if err != nil {
			// A read-only home is not fatal.
			return cache.NewNullCache(), nil
		}
		return fc, nil
	}
}

// newKeyer scopes cache keys by radar title so radars sharing a backend
// never collide.
func newKeyer(rc config.RadarConfig) cache.Keyer {
	if rc.Title == "" {
		return cache.NewDefaultKeyer()
	}
	slug := strings.Join(strings.Fields(strings.ToLower(rc.Title)), "-")
	return cache.NewScopedKeyer(nil, "radar:"+slug+":")
}

// sourceFlags are the per-command overrides of [config.SourceConfig].
type sourceFlags struct {
	url      string
	htmlURL  string
	file     string
	noSample bool
	refresh  bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.url, "url", "", "CSV export URL of the radar sheet")
	cmd.Flags().StringVar(&f.htmlURL, "html-url", "", "published HTML URL of the radar sheet")
	cmd.Flags().StringVar(&f.file, "file", "", "local CSV, HTML, YAML or JSON file")
	cmd.Flags().BoolVar(&f.noSample, "no-sample", false, "fail instead of falling back to sample data")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass cached source data")
}

func (f *sourceFlags) apply(sc *config.SourceConfig) error {
	if f.url != "" {
		sc.URL = f.url
	}
	if f.htmlURL != "" {
		sc.HTMLURL = f.htmlURL
	}
	if f.file != "" {
		if err := errors.ValidatePath(f.file); err != nil {
			return err
		}
		sc.File = f.file
	}
	if f.noSample {
		sc.NoSample = true
	}
	return nil
}

// newSource builds the fallback chain for sc. The returned cleanup closes a
// database connection when one was opened.
func (c *CLI) newSource(ctx context.Context, sc config.SourceConfig, runner *pipeline.Runner, refresh bool) (source.Source, func()) {
	cleanup := func() {}

	var primary []source.Source
	if sc.Mongo.URI != "" {
		m, err := mongo.Connect(ctx, sc.Mongo.URI, sc.Mongo.Database, sc.Mongo.Collection)
		if err != nil {
			c.Logger.Warn("mongo unavailable, skipping", "error", err)
		} else {
			primary = append(primary, m)
			cleanup = func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = m.Close(closeCtx)
			}
		}
	}

	proxies := sc.Proxies
	if proxies == nil {
		proxies = source.DefaultProxies
	}
	client := httputil.NewClient(runner.Cache,
		map[string]string{"User-Agent": buildinfo.UserAgent()},
		httputil.WithRetry(sc.Attempts, httputil.DefaultBackoff),
	)
	chain := source.NewChain(source.Settings{
		CSVURL:   sc.URL,
		HTMLURL:  sc.HTMLURL,
		Proxies:  proxies,
		File:     sc.File,
		Primary:  primary,
		NoSample: sc.NoSample,
		Refresh:  refresh,
	}, client, runner.Keyer, c.Logger)
	return chain, cleanup
}

// baseOptions maps the config onto pipeline options.
func baseOptions(cfg config.Config) pipeline.Options {
	return pipeline.Options{
		Title:     cfg.Radar.Title,
		Subtitle:  cfg.Radar.Subtitle,
		Rings:     cfg.Radar.Rings,
		Quadrants: cfg.Radar.Quadrants,
		Width:     cfg.Render.Width,
		Height:    cfg.Render.Height,
		Style:     cfg.Render.Style,
		Seed:      cfg.Render.Seed,
		Formats:   cfg.Render.Formats,
	}
}
