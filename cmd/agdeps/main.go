package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"agdeps/internal/core/app"
	"agdeps/internal/core/config"
	"agdeps/internal/data/history"
	"agdeps/internal/shared/observability"
	"agdeps/internal/shared/version"
	"agdeps/internal/ui/report"
)

var (
	configPath  = flag.String("config", "./agdeps.toml", "Path to config file")
	srcRoot     = flag.String("src", "", "Source root to analyze (overrides config)")
	outputDir   = flag.String("out", "", "Output directory for artifacts (overrides config)")
	maxNodes    = flag.Int("max-nodes", 0, "Node budget for the graph visualization (overrides config)")
	topCount    = flag.Int("top", 0, "Rows per ranking table in the report (overrides config)")
	trends      = flag.Bool("trends", false, "Print recent run history as TSV and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("agdeps v%s\n", version.Version)
		os.Exit(0)
	}

	// Setup logging. Artifacts and the summary go to stdout-adjacent
	// files, logs go to stderr.
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg := loadConfig()
	config.ApplyEnvOverrides(cfg)

	if *srcRoot != "" {
		cfg.SourceRoot = *srcRoot
	}
	if flag.NArg() > 0 {
		cfg.SourceRoot = flag.Arg(0)
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *maxNodes > 0 {
		cfg.Graph.MaxNodes = *maxNodes
	}
	if *topCount > 0 {
		cfg.Report.TopCount = *topCount
	}
	if err := config.Validate(cfg); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if *trends {
		if err := printTrends(cfg); err != nil {
			slog.Error("failed to render trends", "error", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	tp, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: version.Version,
		OTLPEndpoint:   cfg.Observability.OTLPEndpoint,
		SampleRate:     cfg.Observability.SampleRate,
	})
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
	} else {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				slog.Warn("tracer shutdown failed", "error", err)
			}
		}()
	}

	service := app.NewService(cfg, logger)
	if store := openHistory(cfg); store != nil {
		defer store.Close()
		service.SetHistory(store)
	}

	result, err := service.Run(ctx)
	if err != nil {
		slog.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	printSummary(result)
}

// loadConfig loads the configured file, falling back to the example
// config and then to built-in defaults when the default path has no
// file. An explicit -config path must exist.
func loadConfig() *config.Config {
	cfg, err := config.Load(*configPath)
	if err == nil {
		return cfg
	}
	if *configPath == "./agdeps.toml" && errors.Is(err, fs.ErrNotExist) {
		cfg, err = config.Load("./agdeps.example.toml")
		if err == nil {
			return cfg
		}
		if errors.Is(err, fs.ErrNotExist) {
			return config.Default()
		}
	}
	slog.Error("failed to load config", "error", err)
	os.Exit(1)
	return nil
}

// openHistory opens the run-history store when enabled. A corrupt
// database is recreated once; any other failure only disables history
// for this run.
func openHistory(cfg *config.Config) *history.Store {
	if !cfg.History.Enabled {
		return nil
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil && history.IsCorruptError(err) {
		slog.Warn("history database is corrupt, recreating", "path", cfg.History.Path)
		if rmErr := os.Remove(cfg.History.Path); rmErr == nil {
			store, err = history.Open(cfg.History.Path)
		}
	}
	if err != nil {
		slog.Warn("history disabled for this run", "path", cfg.History.Path, "error", err)
		return nil
	}
	return store
}

func printTrends(cfg *config.Config) error {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	snapshots, err := store.LoadRecent(cfg.History.TrendLimit)
	if err != nil {
		return err
	}
	out, err := report.RenderTrendTSV(snapshots)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
