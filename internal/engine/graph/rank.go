package graph

import "sort"

// RankedModule pairs a module with the metric it was ranked by.
type RankedModule struct {
	Name  string
	Value int
}

// RankFoundational orders all modules by ascending internal import
// count. Modules importing nothing come first; ties break by name.
func RankFoundational(g *DependencyGraph) []RankedModule {
	ranked := make([]RankedModule, 0, g.ModuleCount())
	for _, name := range g.ModuleNames() {
		ranked = append(ranked, RankedModule{Name: name, Value: g.ImportCount(name)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value < ranked[j].Value
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// RankHubs orders all modules by descending dependent count, ties by
// name.
func RankHubs(g *DependencyGraph) []RankedModule {
	ranked := make([]RankedModule, 0, g.ModuleCount())
	for _, name := range g.ModuleNames() {
		ranked = append(ranked, RankedModule{Name: name, Value: g.DependentCount(name)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// RankDeepChains orders modules by descending chain depth, ties by
// name. Modules on cycles have no defined depth and are left out.
func RankDeepChains(result *DepthResult) []RankedModule {
	ranked := make([]RankedModule, 0, len(result.Depths))
	for name, depth := range result.Depths {
		if depth == CycleDepth {
			continue
		}
		ranked = append(ranked, RankedModule{Name: name, Value: depth})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}
