package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"agdeps/internal/engine/graph"
	"agdeps/internal/engine/parser"
)

const defaultNodeColor = "#ffffff"

// DOTData feeds the Graphviz rendering. MaxNodes caps the node count;
// the budget is split half for hubs and a quarter each for deep chains
// and foundational modules, with hubs claiming contested slots first.
type DOTData struct {
	Graph        *graph.DependencyGraph
	Depths       *graph.DepthResult
	Foundational []graph.RankedModule
	Hubs         []graph.RankedModule
	DeepChains   []graph.RankedModule
	MaxNodes     int
	Colors       map[string]string
}

type DOTGenerator struct{}

func NewDOTGenerator() *DOTGenerator {
	return &DOTGenerator{}
}

func (d *DOTGenerator) Generate(data DOTData) string {
	selected := d.selectNodes(data)
	inGraph := make(map[string]bool, len(selected))
	for _, name := range selected {
		inGraph[name] = true
	}
	names := append([]string(nil), selected...)
	sort.Strings(names)

	// Top ten of either ranking render bold, selected or not.
	bold := make(map[string]bool, 20)
	for i := 0; i < len(data.Foundational) && i < 10; i++ {
		bold[data.Foundational[i].Name] = true
	}
	for i := 0; i < len(data.Hubs) && i < 10; i++ {
		bold[data.Hubs[i].Name] = true
	}

	var b strings.Builder
	b.WriteString("digraph AgdaDependencies {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=rounded];\n")
	b.WriteString("  overlap=false;\n")
	b.WriteString("  splines=true;\n\n")

	for _, name := range names {
		depthLabel := "cycle"
		if depth := data.Depths.Depths[name]; depth != graph.CycleDepth {
			depthLabel = strconv.Itoa(depth)
		}
		style := "filled"
		if bold[name] {
			style = "filled,bold"
		}
		b.WriteString(fmt.Sprintf(`  "%s" [label="%s\n(d:%s)", fillcolor="%s", style="%s"];`+"\n",
			name, lastSegment(name), depthLabel, d.colorFor(data.Colors, name), style))
	}
	b.WriteString("\n")

	for _, from := range names {
		for _, edge := range data.Graph.ImportsOf(from) {
			if !inGraph[edge.To] {
				continue
			}
			attrs := make([]string, 0, 2)
			if edge.Public {
				attrs = append(attrs, "style=bold")
			}
			if data.Depths.SharedCycle(from, edge.To) {
				attrs = append(attrs, `color="#f87171"`)
			}
			if len(attrs) == 0 {
				b.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\";\n", from, edge.To))
			} else {
				b.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [%s];\n", from, edge.To, strings.Join(attrs, ", ")))
			}
		}
	}
	b.WriteString("\n")

	b.WriteString("  subgraph cluster_legend {\n")
	b.WriteString("    label=\"Legend\";\n")
	b.WriteString("    style=filled;\n")
	b.WriteString("    color=lightgrey;\n")
	b.WriteString(`    "Foundational\nModule" [style=filled,fillcolor="#e8f4f8",shape=box];` + "\n")
	b.WriteString(`    "Hub\nModule" [style=filled,fillcolor="#f8e8f0",shape=box];` + "\n")
	b.WriteString("  }\n")
	b.WriteString("}\n")
	return b.String()
}

// selectNodes fills the node budget in priority order. A module
// already claimed by an earlier bucket does not consume a later
// bucket's slot twice, so the result never exceeds MaxNodes.
func (d *DOTGenerator) selectNodes(data DOTData) []string {
	selected := make([]string, 0, data.MaxNodes)
	seen := make(map[string]bool, data.MaxNodes)
	pick := func(ranked []graph.RankedModule, quota int) {
		for i := 0; i < len(ranked) && i < quota; i++ {
			name := ranked[i].Name
			if seen[name] {
				continue
			}
			seen[name] = true
			selected = append(selected, name)
		}
	}
	pick(data.Hubs, data.MaxNodes/2)
	pick(data.DeepChains, data.MaxNodes/4)
	pick(data.Foundational, data.MaxNodes/4)
	return selected
}

func (d *DOTGenerator) colorFor(colors map[string]string, name string) string {
	if color, ok := colors[parser.Category(name)]; ok && color != "" {
		return color
	}
	return defaultNodeColor
}

func lastSegment(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
