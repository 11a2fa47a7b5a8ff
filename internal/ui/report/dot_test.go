package report

import (
	"strings"
	"testing"

	"agdeps/internal/engine/graph"
	"agdeps/internal/engine/parser"
)

func dotFixture() DOTData {
	g := graph.Build([]parser.ModuleRecord{
		{Name: "1Lab.Type", Path: "1Lab/Type.agda", Kind: parser.KindPlain},
		{Name: "1Lab.Path", Path: "1Lab/Path.agda", Kind: parser.KindPlain, Imports: []parser.ImportDeclaration{
			{Module: "1Lab.Type", Visibility: parser.VisibilityPublic, Line: 2},
		}},
		{Name: "Cat.Base", Path: "Cat/Base.lagda.md", Kind: parser.KindLiterate, Imports: []parser.ImportDeclaration{
			{Module: "1Lab.Path", Line: 3},
		}},
		{Name: "Data.Sum", Path: "Data/Sum.agda", Kind: parser.KindPlain, Imports: []parser.ImportDeclaration{
			{Module: "1Lab.Type", Line: 1},
		}},
	})
	depths := graph.ComputeDepths(g)
	return DOTData{
		Graph:        g,
		Depths:       depths,
		Foundational: graph.RankFoundational(g),
		Hubs:         graph.RankHubs(g),
		DeepChains:   graph.RankDeepChains(depths),
		MaxNodes:     100,
		Colors:       map[string]string{"1Lab": "#e8f4f8", "Cat": "#f8f0e8"},
	}
}

func TestDOTGenerator_Layout(t *testing.T) {
	out := NewDOTGenerator().Generate(dotFixture())

	header := "digraph AgdaDependencies {\n  rankdir=LR;\n  node [shape=box, style=rounded];\n  overlap=false;\n  splines=true;\n"
	if !strings.HasPrefix(out, header) {
		t.Fatalf("unexpected header:\n%s", out)
	}
	if !strings.HasSuffix(out, "  }\n}\n") {
		t.Fatalf("unexpected closing:\n%s", out)
	}

	for _, want := range []string{
		`  "1Lab.Type" [label="Type\n(d:0)", fillcolor="#e8f4f8", style="filled,bold"];`,
		`  "Cat.Base" [label="Base\n(d:2)", fillcolor="#f8f0e8", style="filled,bold"];`,
		"  \"1Lab.Path\" -> \"1Lab.Type\" [style=bold];\n",
		"  \"Cat.Base\" -> \"1Lab.Path\";\n",
		"  subgraph cluster_legend {\n    label=\"Legend\";\n    style=filled;\n    color=lightgrey;\n",
		`    "Foundational\nModule" [style=filled,fillcolor="#e8f4f8",shape=box];`,
		`    "Hub\nModule" [style=filled,fillcolor="#f8e8f0",shape=box];`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestDOTGenerator_DefaultColorForUnknownCategory(t *testing.T) {
	out := NewDOTGenerator().Generate(dotFixture())
	if !strings.Contains(out, `  "Data.Sum" [label="Sum\n(d:1)", fillcolor="#ffffff", style="filled,bold"];`) {
		t.Errorf("expected default fill color for unmapped category:\n%s", out)
	}
}

func TestDOTGenerator_CycleStyling(t *testing.T) {
	g := graph.Build([]parser.ModuleRecord{
		{Name: "Cat.A", Path: "Cat/A.agda", Kind: parser.KindPlain, Imports: []parser.ImportDeclaration{
			{Module: "Cat.B", Visibility: parser.VisibilityPublic, Line: 1},
		}},
		{Name: "Cat.B", Path: "Cat/B.agda", Kind: parser.KindPlain, Imports: []parser.ImportDeclaration{
			{Module: "Cat.A", Line: 1},
		}},
	})
	depths := graph.ComputeDepths(g)
	out := NewDOTGenerator().Generate(DOTData{
		Graph:        g,
		Depths:       depths,
		Foundational: graph.RankFoundational(g),
		Hubs:         graph.RankHubs(g),
		DeepChains:   graph.RankDeepChains(depths),
		MaxNodes:     100,
	})

	if !strings.Contains(out, `label="A\n(d:cycle)"`) {
		t.Errorf("expected cycle label on node:\n%s", out)
	}
	if !strings.Contains(out, "  \"Cat.A\" -> \"Cat.B\" [style=bold, color=\"#f87171\"];\n") {
		t.Errorf("expected highlighted public cycle edge:\n%s", out)
	}
	if !strings.Contains(out, "  \"Cat.B\" -> \"Cat.A\" [color=\"#f87171\"];\n") {
		t.Errorf("expected highlighted private cycle edge:\n%s", out)
	}
}

func TestDOTGenerator_NodeBudget(t *testing.T) {
	// Chain A -> B -> C -> D -> E -> F with a budget of 4: two hub
	// slots, one deep chain slot, one foundational slot.
	records := []parser.ModuleRecord{
		{Name: "A", Path: "A.agda", Kind: parser.KindPlain, Imports: []parser.ImportDeclaration{{Module: "B", Line: 1}}},
		{Name: "B", Path: "B.agda", Kind: parser.KindPlain, Imports: []parser.ImportDeclaration{{Module: "C", Line: 1}}},
		{Name: "C", Path: "C.agda", Kind: parser.KindPlain, Imports: []parser.ImportDeclaration{{Module: "D", Line: 1}}},
		{Name: "D", Path: "D.agda", Kind: parser.KindPlain, Imports: []parser.ImportDeclaration{{Module: "E", Line: 1}}},
		{Name: "E", Path: "E.agda", Kind: parser.KindPlain, Imports: []parser.ImportDeclaration{{Module: "F", Line: 1}}},
		{Name: "F", Path: "F.agda", Kind: parser.KindPlain},
	}
	g := graph.Build(records)
	depths := graph.ComputeDepths(g)
	out := NewDOTGenerator().Generate(DOTData{
		Graph:        g,
		Depths:       depths,
		Foundational: graph.RankFoundational(g),
		Hubs:         graph.RankHubs(g),
		DeepChains:   graph.RankDeepChains(depths),
		MaxNodes:     4,
	})

	if got := strings.Count(out, "[label="); got != 4 {
		t.Errorf("expected 4 rendered nodes, got %d:\n%s", got, out)
	}
	for _, want := range []string{`"A" [label=`, `"B" [label=`, `"C" [label=`, `"F" [label=`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s to be selected:\n%s", want, out)
		}
	}
	if strings.Contains(out, `"E" [label=`) {
		t.Errorf("did not expect E inside the budget:\n%s", out)
	}
}

func TestDOTGenerator_Deterministic(t *testing.T) {
	gen := NewDOTGenerator()
	data := dotFixture()
	if gen.Generate(data) != gen.Generate(data) {
		t.Fatal("expected identical output for identical input")
	}
}
