package report

import (
	"fmt"
	"strings"

	"agdeps/internal/engine/graph"
	"agdeps/internal/shared/util"
)

// MarkdownData carries everything the report needs. Rankings come in
// full; TopCount trims them per table.
type MarkdownData struct {
	GeneratedFor string
	TotalModules int
	Stats        graph.DepthStats
	Foundational []graph.RankedModule
	Hubs         []graph.RankedModule
	DeepChains   []graph.RankedModule
	Cycles       [][]string
	Categories   map[string]int
	TopCount     int
}

type MarkdownGenerator struct{}

func NewMarkdownGenerator() *MarkdownGenerator {
	return &MarkdownGenerator{}
}

// Generate renders the dependency report. Output depends only on the
// data, so identical runs produce identical bytes.
func (m *MarkdownGenerator) Generate(data MarkdownData) string {
	var b strings.Builder

	b.WriteString("# Agda Module Dependency Analysis Report\n\n")
	b.WriteString(fmt.Sprintf("**Generated for:** %s\n\n", data.GeneratedFor))
	b.WriteString(fmt.Sprintf("**Total modules analyzed:** %d\n\n", data.TotalModules))

	m.writeOverview(&b, data.Stats)
	m.writeRanking(&b, "Foundational Modules",
		"These modules have the fewest dependencies and form the foundation of the library:",
		"| Module | Import Count |\n", "|--------|-------------|\n",
		topOf(data.Foundational, data.TopCount))
	m.writeRanking(&b, "Hub Modules",
		"These modules are imported by many others and serve as central concepts:",
		"| Module | Dependent Count |\n", "|--------|----------------|\n",
		topOf(data.Hubs, data.TopCount))
	m.writeRanking(&b, "Deep Dependency Chains",
		"Modules with the longest dependency chains:",
		"| Module | Chain Depth |\n", "|--------|------------|\n",
		topOf(data.DeepChains, data.TopCount))
	m.writeCycles(&b, data.Cycles)
	m.writeCategories(&b, data.Categories)

	return b.String()
}

func (m *MarkdownGenerator) writeOverview(b *strings.Builder, stats graph.DepthStats) {
	b.WriteString("## Overview Statistics\n\n")
	b.WriteString(fmt.Sprintf("- **Maximum dependency depth:** %d\n", stats.Max))
	b.WriteString(fmt.Sprintf("- **Average dependency depth:** %.2f\n", stats.Avg))
	b.WriteString(fmt.Sprintf("- **Shallow modules (depth 0-5):** %d\n", stats.Shallow))
	b.WriteString(fmt.Sprintf("- **Medium modules (depth 6-15):** %d\n", stats.Medium))
	b.WriteString(fmt.Sprintf("- **Deep modules (depth 16+):** %d\n", stats.Deep))
	if stats.OnCycle > 0 {
		b.WriteString(fmt.Sprintf("- **Modules on cycles:** %d\n", stats.OnCycle))
	}
	b.WriteString("\n")
}

func (m *MarkdownGenerator) writeRanking(b *strings.Builder, title, intro, header, separator string, ranked []graph.RankedModule) {
	b.WriteString("## " + title + "\n\n")
	b.WriteString(intro + "\n\n")
	b.WriteString(header)
	b.WriteString(separator)
	for _, entry := range ranked {
		b.WriteString(fmt.Sprintf("| `%s` | %d |\n", entry.Name, entry.Value))
	}
	b.WriteString("\n")
}

func (m *MarkdownGenerator) writeCycles(b *strings.Builder, cycles [][]string) {
	if len(cycles) == 0 {
		return
	}
	b.WriteString("## Dependency Cycles\n\n")
	b.WriteString("These modules import each other and have no finite dependency depth:\n\n")
	for _, cycle := range cycles {
		b.WriteString(fmt.Sprintf("- `%s`\n", strings.Join(cycle, " → ")))
	}
	b.WriteString("\n")
}

func (m *MarkdownGenerator) writeCategories(b *strings.Builder, categories map[string]int) {
	b.WriteString("## Module Organization\n\n")
	b.WriteString("Module distribution by top-level category:\n\n")
	b.WriteString("| Category | Count |\n")
	b.WriteString("|----------|-------|\n")
	for _, category := range util.SortedStringKeys(categories) {
		b.WriteString(fmt.Sprintf("| `%s/` | %d |\n", category, categories[category]))
	}
}

func topOf(ranked []graph.RankedModule, n int) []graph.RankedModule {
	if n > 0 && len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}
