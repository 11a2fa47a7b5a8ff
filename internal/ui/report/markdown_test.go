package report

import (
	"strings"
	"testing"

	"agdeps/internal/engine/graph"
)

func sampleMarkdownData() MarkdownData {
	return MarkdownData{
		GeneratedFor: "src",
		TotalModules: 4,
		Stats:        graph.DepthStats{Max: 2, Avg: 1.25, Shallow: 4},
		Foundational: []graph.RankedModule{{Name: "1Lab.Type", Value: 0}, {Name: "Data.Bool", Value: 1}},
		Hubs:         []graph.RankedModule{{Name: "1Lab.Type", Value: 3}},
		DeepChains:   []graph.RankedModule{{Name: "Cat.Base", Value: 2}},
		Categories:   map[string]int{"1Lab": 2, "Cat": 1, "Data": 1},
		TopCount:     20,
	}
}

func TestMarkdownGenerator_Layout(t *testing.T) {
	out := NewMarkdownGenerator().Generate(sampleMarkdownData())

	opening := "# Agda Module Dependency Analysis Report\n\n**Generated for:** src\n\n**Total modules analyzed:** 4\n\n"
	if !strings.HasPrefix(out, opening) {
		t.Fatalf("unexpected report opening:\n%s", out)
	}

	for _, want := range []string{
		"## Overview Statistics\n\n- **Maximum dependency depth:** 2\n- **Average dependency depth:** 1.25\n- **Shallow modules (depth 0-5):** 4\n- **Medium modules (depth 6-15):** 0\n- **Deep modules (depth 16+):** 0\n\n",
		"## Foundational Modules\n\nThese modules have the fewest dependencies and form the foundation of the library:\n\n| Module | Import Count |\n|--------|-------------|\n| `1Lab.Type` | 0 |\n| `Data.Bool` | 1 |\n",
		"## Hub Modules\n\nThese modules are imported by many others and serve as central concepts:\n\n| Module | Dependent Count |\n|--------|----------------|\n| `1Lab.Type` | 3 |\n",
		"## Deep Dependency Chains\n\nModules with the longest dependency chains:\n\n| Module | Chain Depth |\n|--------|------------|\n| `Cat.Base` | 2 |\n",
		"## Module Organization\n\nModule distribution by top-level category:\n\n| Category | Count |\n|----------|-------|\n| `1Lab/` | 2 |\n| `Cat/` | 1 |\n| `Data/` | 1 |\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing section %q in report:\n%s", want, out)
		}
	}

	if strings.Contains(out, "## Dependency Cycles") {
		t.Error("cycle section must be omitted when no cycles exist")
	}
	if strings.Contains(out, "Modules on cycles") {
		t.Error("cycle overview line must be omitted when no cycles exist")
	}
}

func TestMarkdownGenerator_CycleSection(t *testing.T) {
	data := sampleMarkdownData()
	data.Stats.OnCycle = 2
	data.Cycles = [][]string{{"Cat.Base", "Cat.Functor", "Cat.Base"}}

	out := NewMarkdownGenerator().Generate(data)

	if !strings.Contains(out, "- **Modules on cycles:** 2\n") {
		t.Error("expected cycle count in overview")
	}
	if !strings.Contains(out, "## Dependency Cycles") {
		t.Error("expected cycle section")
	}
	if !strings.Contains(out, "- `Cat.Base → Cat.Functor → Cat.Base`\n") {
		t.Errorf("expected rendered cycle path, got:\n%s", out)
	}
	if strings.Index(out, "## Dependency Cycles") > strings.Index(out, "## Module Organization") {
		t.Error("cycle section must come before module organization")
	}
}

func TestMarkdownGenerator_TopCountTrimsTables(t *testing.T) {
	data := sampleMarkdownData()
	data.TopCount = 1

	out := NewMarkdownGenerator().Generate(data)
	if strings.Contains(out, "`Data.Bool`") {
		t.Error("expected foundational table trimmed to one row")
	}
	if !strings.Contains(out, "| `1Lab.Type` | 0 |") {
		t.Error("expected top foundational row to survive trimming")
	}
}

func TestMarkdownGenerator_Deterministic(t *testing.T) {
	gen := NewMarkdownGenerator()
	data := sampleMarkdownData()
	if gen.Generate(data) != gen.Generate(data) {
		t.Fatal("expected identical output for identical input")
	}
}
