package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"agdeps/internal/core/config"
	"agdeps/internal/core/errors"
	"agdeps/internal/core/ports"
	"agdeps/internal/data/history"
	"agdeps/internal/engine/graph"
	"agdeps/internal/engine/parser"
	"agdeps/internal/shared/diag"
	"agdeps/internal/shared/observability"
	"agdeps/internal/shared/util"
	"agdeps/internal/ui/report"
)

// Warnings echoed to the log are rate limited; the collector still
// counts every occurrence for the run summary.
const (
	warnEchoRate  = 5.0
	warnEchoBurst = 20
)

// Service runs the full analysis pipeline: discover source files,
// extract imports, build the dependency graph, compute depths and
// rankings, and write the report and graph artifacts.
type Service struct {
	cfg       *config.Config
	logger    *slog.Logger
	collector *diag.Collector
	scanner   *Scanner
	extractor ports.ImportExtractor
	history   ports.HistorySink
}

// RunResult summarizes one completed analysis run.
type RunResult struct {
	RunID        string
	SourceRoot   string
	ModuleCount  int
	FileCount    int
	EdgeCount    int
	ExternalRefs int
	Stats        graph.DepthStats
	Cycles       [][]string
	Hubs         []graph.RankedModule
	Warnings     int
	ReportPath   string
	GraphPath    string
	Duration     time.Duration
	HistorySaved bool
}

func NewService(cfg *config.Config, logger *slog.Logger) *Service {
	collector := diag.NewCollector(warnEchoRate, warnEchoBurst, logger)

	precedence := parser.PrecedenceMostPermissive
	if cfg.Imports.VisibilityPrecedence == config.PrecedenceFirstWins {
		precedence = parser.PrecedenceFirstWins
	}

	return &Service{
		cfg:       cfg,
		logger:    logger,
		collector: collector,
		scanner: &Scanner{
			PlainExt:    cfg.Scan.PlainExtension,
			LiterateExt: cfg.Scan.LiterateExtension,
			Exclude:     cfg.Scan.Exclude,
			Diag:        collector,
		},
		extractor: parser.NewExtractor(precedence, collector.Warn),
	}
}

// SetHistory attaches a snapshot sink. Without one the history stage is
// skipped even when enabled in the configuration.
func (s *Service) SetHistory(sink ports.HistorySink) {
	s.history = sink
}

// Run executes the pipeline once and returns its summary. The returned
// error carries a domain code suitable for exit-status mapping.
func (s *Service) Run(ctx context.Context) (*RunResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "service.Run")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)
	started := time.Now()
	logger.Info("analysis started", "source_root", s.cfg.SourceRoot)

	var files []DiscoveredFile
	if err := s.runStage(ctx, "discover", func(ctx context.Context) error {
		var err error
		files, err = s.scanner.Discover(s.cfg.SourceRoot)
		return err
	}); err != nil {
		return nil, err
	}
	logger.Debug("discovery finished", "files", len(files))

	var records []parser.ModuleRecord
	if err := s.runStage(ctx, "parse", func(ctx context.Context) error {
		records = s.parseAll(ctx, files)
		return ctx.Err()
	}); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.AddContext(
			errors.New(errors.CodeNoModules, "no Agda modules found under source root"),
			errors.CtxPath, s.cfg.SourceRoot)
	}
	logger.Debug("parsing finished", "modules", len(records))

	var g *graph.DependencyGraph
	if err := s.runStage(ctx, "build-graph", func(context.Context) error {
		g = graph.Build(records)
		return nil
	}); err != nil {
		return nil, err
	}

	var depths *graph.DepthResult
	if err := s.runStage(ctx, "compute-depths", func(context.Context) error {
		depths = graph.ComputeDepths(g)
		return nil
	}); err != nil {
		return nil, err
	}

	foundational := graph.RankFoundational(g)
	hubs := graph.RankHubs(g)
	deep := graph.RankDeepChains(depths)
	stats := depths.Stats()

	var reportContent, dotContent string
	if err := s.runStage(ctx, "render", func(context.Context) error {
		categories := make(map[string]int, 8)
		for _, name := range g.ModuleNames() {
			categories[parser.Category(name)]++
		}
		reportContent = report.NewMarkdownGenerator().Generate(report.MarkdownData{
			GeneratedFor: s.generatedFor(),
			TotalModules: g.ModuleCount(),
			Stats:        stats,
			Foundational: foundational,
			Hubs:         hubs,
			DeepChains:   deep,
			Cycles:       depths.Cycles,
			Categories:   categories,
			TopCount:     s.cfg.Report.TopCount,
		})
		dotContent = report.NewDOTGenerator().Generate(report.DOTData{
			Graph:        g,
			Depths:       depths,
			Foundational: foundational,
			Hubs:         hubs,
			DeepChains:   deep,
			MaxNodes:     s.cfg.Graph.MaxNodes,
			Colors:       s.cfg.Graph.CategoryColors,
		})
		return nil
	}); err != nil {
		return nil, err
	}

	var reportPath, dotPath string
	if err := s.runStage(ctx, "write", func(context.Context) error {
		var err error
		reportPath, dotPath, err = s.writeArtifacts(reportContent, dotContent)
		return err
	}); err != nil {
		return nil, err
	}

	historySaved := false
	if s.cfg.History.Enabled && s.history != nil {
		if err := s.runStage(ctx, "history", func(context.Context) error {
			return s.history.SaveSnapshot(history.RunSnapshot{
				RunID:         runID,
				Timestamp:     time.Now().UTC(),
				SourceRoot:    s.cfg.SourceRoot,
				ModuleCount:   g.ModuleCount(),
				FileCount:     len(files),
				EdgeCount:     g.EdgeCount(),
				ExternalCount: g.ExternalRefCount(),
				MaxDepth:      stats.Max,
				AvgDepth:      stats.Avg,
				CycleCount:    len(depths.Cycles),
				WarningCount:  s.collector.Total(),
				Duration:      time.Since(started),
			})
		}); err != nil {
			s.collector.Warn("history snapshot failed", "error", err)
		} else {
			historySaved = true
		}
	}

	s.flushMetrics(g, depths, stats)
	s.collector.LogSummary()

	result := &RunResult{
		RunID:        runID,
		SourceRoot:   s.cfg.SourceRoot,
		ModuleCount:  g.ModuleCount(),
		FileCount:    len(files),
		EdgeCount:    g.EdgeCount(),
		ExternalRefs: g.ExternalRefCount(),
		Stats:        stats,
		Cycles:       depths.Cycles,
		Hubs:         hubs,
		Warnings:     s.collector.Total(),
		ReportPath:   reportPath,
		GraphPath:    dotPath,
		Duration:     time.Since(started),
		HistorySaved: historySaved,
	}
	logger.Info("analysis completed",
		"modules", result.ModuleCount,
		"edges", result.EdgeCount,
		"cycles", len(result.Cycles),
		"max_depth", result.Stats.Max,
		"duration", result.Duration)
	return result, nil
}

// runStage wraps a pipeline stage with a span and a duration metric.
func (s *Service) runStage(ctx context.Context, stage string, fn func(context.Context) error) error {
	ctx, span := observability.Tracer.Start(ctx, stage)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	observability.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.RecordError(span, err)
	}
	return err
}

func (s *Service) flushMetrics(g *graph.DependencyGraph, depths *graph.DepthResult, stats graph.DepthStats) {
	observability.GraphModules.Set(float64(g.ModuleCount()))
	observability.GraphEdges.Set(float64(g.EdgeCount()))
	observability.ExternalRefs.Set(float64(g.ExternalRefCount()))
	observability.CycleCount.Set(float64(len(depths.Cycles)))
	observability.MaxDepth.Set(float64(stats.Max))
	observability.WarningsTotal.Add(float64(s.collector.Total()))
	observability.HeapAllocMB.Set(float64(util.GetHeapAllocMB()))

	if path := s.cfg.Observability.MetricsFile; path != "" {
		if err := observability.WriteTextfile(path); err != nil {
			s.collector.Warn("write metrics textfile failed", "path", path, "error", err)
		}
	}
}

func (s *Service) generatedFor() string {
	if s.cfg.ProjectName != "" {
		return s.cfg.ProjectName
	}
	return s.cfg.SourceRoot
}
