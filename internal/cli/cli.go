package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nestindex/pkg/buildinfo"
	"github.com/matzehuels/nestindex/pkg/cache"
	"github.com/matzehuels/nestindex/pkg/observability"
	"github.com/matzehuels/nestindex/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "nestindex"
)

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
	Config Config

	configPath  string
	metricsPath string
	counters    *observability.Counters
	metrics     *observability.Metrics
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Nestindex computes nesting indices of double occurrence words",
		Long: `Nestindex reduces double occurrence words by repeatedly deleting maximal
return and repeat words, and reports the fewest rounds needed to reach the
empty word. Words may be read linearly or as circular words.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.teardown()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/nestindex/config.toml)")
	root.PersistentFlags().StringVar(&c.metricsPath, "metrics", "", "write Prometheus metrics to this file after the run")

	// Register all subcommands
	root.AddCommand(c.indexCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.countCommand())
	root.AddCommand(c.isosCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and registers observability hooks.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))

	c.counters = &observability.Counters{}
	hooks := observability.MultiPipelineHooks{c.counters}
	cacheHooks := observability.MultiCacheHooks{c.counters}
	if c.metricsPath != "" {
		c.metrics = observability.NewMetrics()
		hooks = append(hooks, c.metrics)
		cacheHooks = append(cacheHooks, c.metrics)
	}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(cacheHooks)
	return nil
}

// teardown logs run counters and writes the metrics file if requested.
func (c *CLI) teardown() error {
	if c.counters != nil && c.counters.Evaluations.Load() > 0 {
		c.Logger.Debug("run counters",
			"evaluations", c.counters.Evaluations.Load(),
			"failures", c.counters.Failures.Load(),
			"rounds", c.counters.Rounds.Load(),
			"cache_hits", c.counters.CacheHits.Load(),
			"cache_misses", c.counters.CacheMisses.Load(),
			"engine_time", c.counters.EvalTime())
	}
	if c.metrics == nil {
		return nil
	}
	if err := c.metrics.WriteFile(c.metricsPath); err != nil {
		return err
	}
	c.Logger.Debug("wrote metrics", "path", c.metricsPath)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(noCache || c.Config.NoCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.Current().Scope()+":")
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// newCache opens the configured cache backend. A missing home directory
// disables caching instead of failing the command.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return c.openBackend(c.Config.CacheBackend, dir)
}

// openBackend opens one cache backend rooted at dir. Badger keeps its
// files in a subdirectory so both backends can share dir.
func (c *CLI) openBackend(backend, dir string) (cache.Cache, error) {
	if backend == backendBadger {
		return cache.NewBadgerCache(cache.BadgerConfig{
			Dir:    filepath.Join(dir, "badger"),
			Logger: c.Logger,
		})
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/nestindex/).
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

// configDir returns the config directory using XDG standard (~/.config/nestindex/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// evalFlags are the evaluation flags shared by several commands.
type evalFlags struct {
	circular  bool
	reversals bool
	policy    string
	noDedupe  bool
	jobs      int
	noCache   bool
	refresh   bool
}

// register adds the flags to cmd. Jobs is only offered where words are
// evaluated concurrently.
func (f *evalFlags) register(cmd *cobra.Command, withJobs bool) {
	fl := cmd.Flags()
	fl.BoolVarP(&f.circular, "circular", "c", false, "treat the word as circular (minimum over rotations)")
	fl.BoolVarP(&f.reversals, "reversals", "r", false, "with --circular, also consider rotations of the reversed word")
	fl.StringVar(&f.policy, "policy", "", "sequence selection policy: tau or sigma (default tau)")
	fl.BoolVar(&f.noDedupe, "no-dedupe", false, "keep structurally equal words in the search frontier")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	fl.BoolVar(&f.refresh, "refresh", false, "recompute results even if cached")
	if withJobs {
		fl.IntVarP(&f.jobs, "jobs", "j", 0, "number of words evaluated concurrently (default GOMAXPROCS)")
	}
}

// pipelineOptions merges config file values with the flags set on cmd.
func (c *CLI) pipelineOptions(cmd *cobra.Command, f *evalFlags) (pipeline.Options, error) {
	cfg := c.Config
	ttl, err := cfg.TTL()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Circular:  cfg.Circular,
		Reversals: cfg.Reversals,
		Policy:    cfg.Policy,
		Dedupe:    cfg.Dedupe,
		Jobs:      cfg.Jobs,
		Refresh:   f.refresh,
		CacheTTL:  ttl,
		Logger:    c.Logger,
	}
	changed := cmd.Flags().Changed
	if changed("circular") {
		opts.Circular = f.circular
	}
	if changed("reversals") {
		opts.Reversals = f.reversals
	}
	if changed("policy") {
		opts.Policy = f.policy
	}
	if changed("no-dedupe") {
		opts.Dedupe = !f.noDedupe
	}
	if changed("jobs") {
		opts.Jobs = f.jobs
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	logOptions(c.Logger, opts)
	return opts, nil
}
