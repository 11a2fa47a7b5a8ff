package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"agdeps/internal/core/config"
	"agdeps/internal/core/errors"
	"agdeps/internal/data/history"
)

type captureSink struct {
	snapshots []history.RunSnapshot
	err       error
}

func (c *captureSink) SaveSnapshot(snapshot history.RunSnapshot) error {
	if c.err != nil {
		return c.err
	}
	c.snapshots = append(c.snapshots, snapshot)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"Base.agda": "module Base where\n",
		"Core.agda": "module Core where\n\nopen import Base public\nimport Agda.Primitive\n",
		"Top.lagda.md": "# Top\n\nProse is ignored, even this line:\nimport Prose.Trap\n\n" +
			"```agda\nmodule Top where\n\nopen import Core\n```\n",
		"Loop/A.agda":    "module Loop.A where\n\nimport Loop.B\n",
		"Loop/B.agda":    "module Loop.B where\n\nimport Loop.A\n",
		"dist/Skip.agda": "module Skip where\n\nimport Base\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll failed: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}
	return root
}

func fixtureConfig(t *testing.T, root string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.ProjectName = "Testlib"
	cfg.SourceRoot = root
	cfg.OutputDir = t.TempDir()
	cfg.Scan.Exclude = []string{"dist/**"}
	cfg.Scan.Workers = 2
	return cfg
}

func TestService_RunProducesArtifacts(t *testing.T) {
	root := writeFixtureTree(t)
	cfg := fixtureConfig(t, root)
	cfg.Report.File = "report.md"
	cfg.Graph.File = "graph.dot"

	service := NewService(cfg, testLogger())
	result, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.RunID == "" {
		t.Error("Expected a run ID to be assigned")
	}
	if result.FileCount != 5 {
		t.Errorf("Expected 5 discovered files, got %d", result.FileCount)
	}
	if result.ModuleCount != 5 {
		t.Errorf("Expected 5 modules, got %d", result.ModuleCount)
	}
	if result.EdgeCount != 4 {
		t.Errorf("Expected 4 edges, got %d", result.EdgeCount)
	}
	if result.ExternalRefs != 1 {
		t.Errorf("Expected 1 external reference, got %d", result.ExternalRefs)
	}
	if result.Stats.Max != 2 {
		t.Errorf("Expected max depth 2, got %d", result.Stats.Max)
	}
	if result.Stats.OnCycle != 2 {
		t.Errorf("Expected 2 modules on cycles, got %d", result.Stats.OnCycle)
	}
	wantCycles := [][]string{{"Loop.A", "Loop.B", "Loop.A"}}
	if !reflect.DeepEqual(result.Cycles, wantCycles) {
		t.Errorf("Expected cycles %v, got %v", wantCycles, result.Cycles)
	}
	if result.Warnings != 0 {
		t.Errorf("Expected no warnings, got %d", result.Warnings)
	}

	wantReport := filepath.Join(cfg.OutputDir, "report.md")
	if result.ReportPath != wantReport {
		t.Errorf("Expected report path %q, got %q", wantReport, result.ReportPath)
	}
	reportContent, err := os.ReadFile(result.ReportPath)
	if err != nil {
		t.Fatalf("ReadFile report failed: %v", err)
	}
	wantPrefix := "# Agda Module Dependency Analysis Report\n\n**Generated for:** Testlib\n\n**Total modules analyzed:** 5\n\n"
	if !strings.HasPrefix(string(reportContent), wantPrefix) {
		t.Errorf("Report does not start with expected header:\n%s", reportContent[:min(len(reportContent), 200)])
	}
	if !strings.Contains(string(reportContent), "`Loop.A → Loop.B → Loop.A`") {
		t.Error("Expected report to list the Loop cycle")
	}

	dotContent, err := os.ReadFile(result.GraphPath)
	if err != nil {
		t.Fatalf("ReadFile graph failed: %v", err)
	}
	if !strings.HasPrefix(string(dotContent), "digraph AgdaDependencies {\n") {
		t.Error("Graph file does not start with the DOT header")
	}
	if !strings.Contains(string(dotContent), `"Core" -> "Base" [style=bold]`) {
		t.Error("Expected a bold edge for the public Core -> Base import")
	}
}

func TestService_RunLiterateProseIsIgnored(t *testing.T) {
	root := writeFixtureTree(t)
	service := NewService(fixtureConfig(t, root), testLogger())

	result, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Prose.Trap sits outside the fenced block, so it must not show up
	// as an external reference.
	if result.ExternalRefs != 1 {
		t.Errorf("Expected 1 external reference, got %d", result.ExternalRefs)
	}
}

func TestService_RunMissingRoot(t *testing.T) {
	cfg := fixtureConfig(t, filepath.Join(t.TempDir(), "nope"))
	service := NewService(cfg, testLogger())

	_, err := service.Run(context.Background())
	if err == nil {
		t.Fatal("Expected an error for a missing source root")
	}
	if !errors.IsCode(err, errors.CodeMissingRoot) {
		t.Errorf("Expected code %q, got %v", errors.CodeMissingRoot, err)
	}
}

func TestService_RunNoModules(t *testing.T) {
	cfg := fixtureConfig(t, t.TempDir())
	service := NewService(cfg, testLogger())

	_, err := service.Run(context.Background())
	if err == nil {
		t.Fatal("Expected an error for an empty source root")
	}
	if !errors.IsCode(err, errors.CodeNoModules) {
		t.Errorf("Expected code %q, got %v", errors.CodeNoModules, err)
	}
}

func TestService_RunSavesHistorySnapshot(t *testing.T) {
	root := writeFixtureTree(t)
	cfg := fixtureConfig(t, root)
	cfg.History.Enabled = true

	sink := &captureSink{}
	service := NewService(cfg, testLogger())
	service.SetHistory(sink)

	result, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !result.HistorySaved {
		t.Error("Expected HistorySaved to be true")
	}
	if len(sink.snapshots) != 1 {
		t.Fatalf("Expected 1 snapshot, got %d", len(sink.snapshots))
	}

	snapshot := sink.snapshots[0]
	if snapshot.RunID != result.RunID {
		t.Errorf("Expected snapshot run ID %q, got %q", result.RunID, snapshot.RunID)
	}
	if snapshot.ModuleCount != 5 {
		t.Errorf("Expected snapshot module count 5, got %d", snapshot.ModuleCount)
	}
	if snapshot.CycleCount != 1 {
		t.Errorf("Expected snapshot cycle count 1, got %d", snapshot.CycleCount)
	}
	if snapshot.MaxDepth != 2 {
		t.Errorf("Expected snapshot max depth 2, got %d", snapshot.MaxDepth)
	}
}

func TestService_RunHistoryFailureDoesNotAbort(t *testing.T) {
	root := writeFixtureTree(t)
	cfg := fixtureConfig(t, root)
	cfg.History.Enabled = true

	sink := &captureSink{err: errors.New(errors.CodeHistory, "disk full")}
	service := NewService(cfg, testLogger())
	service.SetHistory(sink)

	result, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.HistorySaved {
		t.Error("Expected HistorySaved to be false")
	}
	if result.Warnings == 0 {
		t.Error("Expected the failed snapshot to be recorded as a warning")
	}
}

func TestService_RunDeterministicArtifacts(t *testing.T) {
	root := writeFixtureTree(t)

	render := func() (string, string) {
		cfg := fixtureConfig(t, root)
		service := NewService(cfg, testLogger())
		result, err := service.Run(context.Background())
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		reportContent, err := os.ReadFile(result.ReportPath)
		if err != nil {
			t.Fatalf("ReadFile report failed: %v", err)
		}
		dotContent, err := os.ReadFile(result.GraphPath)
		if err != nil {
			t.Fatalf("ReadFile graph failed: %v", err)
		}
		return string(reportContent), string(dotContent)
	}

	firstReport, firstDot := render()
	secondReport, secondDot := render()
	if firstReport != secondReport {
		t.Error("Expected identical report output across runs")
	}
	if firstDot != secondDot {
		t.Error("Expected identical graph output across runs")
	}
}

func TestService_RunCancelledContext(t *testing.T) {
	root := writeFixtureTree(t)
	service := NewService(fixtureConfig(t, root), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := service.Run(ctx); err == nil {
		t.Fatal("Expected an error for a cancelled context")
	}
}
