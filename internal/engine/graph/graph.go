package graph

import (
	"sort"

	"agdeps/internal/engine/parser"
)

// Edge is one resolved internal import.
type Edge struct {
	From   string
	To     string
	Public bool
	Line   int
}

// DependencyGraph holds the forward and reverse import relations over
// the discovered module set. It is built once per run and read-only
// afterwards; reverse is the exact inverse of forward and both share
// one node set. Names that resolve to no discovered module are recorded
// as externals and never become nodes.
type DependencyGraph struct {
	records   map[string]parser.ModuleRecord
	forward   map[string]map[string]*Edge // from -> to -> edge
	reverse   map[string]map[string]bool  // to -> from
	externals map[string][]string         // importing module -> unresolved names
	edgeCount int
}

// Build consumes the full record set. Duplicate canonical names keep
// the record whose file path sorts first, so filesystem layout never
// makes two runs disagree.
func Build(records []parser.ModuleRecord) *DependencyGraph {
	g := &DependencyGraph{
		records:   make(map[string]parser.ModuleRecord, len(records)),
		forward:   make(map[string]map[string]*Edge, len(records)),
		reverse:   make(map[string]map[string]bool, len(records)),
		externals: make(map[string][]string),
	}

	for _, rec := range records {
		existing, ok := g.records[rec.Name]
		if !ok || rec.Path < existing.Path {
			g.records[rec.Name] = rec
		}
	}

	// Every module is a node in both maps, also when isolated.
	for name := range g.records {
		g.forward[name] = make(map[string]*Edge)
		g.reverse[name] = make(map[string]bool)
	}

	for name, rec := range g.records {
		for _, imp := range rec.Imports {
			if _, internal := g.records[imp.Module]; !internal {
				g.externals[name] = append(g.externals[name], imp.Module)
				continue
			}
			if _, dup := g.forward[name][imp.Module]; dup {
				continue
			}
			g.forward[name][imp.Module] = &Edge{
				From:   name,
				To:     imp.Module,
				Public: imp.Visibility == parser.VisibilityPublic,
				Line:   imp.Line,
			}
			g.reverse[imp.Module][name] = true
			g.edgeCount++
		}
	}

	return g
}

// ModuleNames returns every node name in sorted order.
func (g *DependencyGraph) ModuleNames() []string {
	names := make([]string, 0, len(g.records))
	for name := range g.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (g *DependencyGraph) HasModule(name string) bool {
	_, ok := g.records[name]
	return ok
}

// Record returns the module record backing a node.
func (g *DependencyGraph) Record(name string) (parser.ModuleRecord, bool) {
	rec, ok := g.records[name]
	return rec, ok
}

// ImportsOf returns the resolved internal imports of name, sorted by
// target for deterministic traversal.
func (g *DependencyGraph) ImportsOf(name string) []Edge {
	targets := g.forward[name]
	out := make([]Edge, 0, len(targets))
	for _, edge := range targets {
		out = append(out, *edge)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].To < out[j].To })
	return out
}

// DependentsOf returns the modules importing name, sorted.
func (g *DependencyGraph) DependentsOf(name string) []string {
	sources := g.reverse[name]
	out := make([]string, 0, len(sources))
	for from := range sources {
		out = append(out, from)
	}
	sort.Strings(out)
	return out
}

// ImportCount is the internal forward degree of name.
func (g *DependencyGraph) ImportCount(name string) int {
	return len(g.forward[name])
}

// DependentCount is the reverse degree of name.
func (g *DependencyGraph) DependentCount(name string) int {
	return len(g.reverse[name])
}

// EdgeBetween looks up the resolved edge from one module to another.
func (g *DependencyGraph) EdgeBetween(from, to string) (Edge, bool) {
	edge, ok := g.forward[from][to]
	if !ok {
		return Edge{}, false
	}
	return *edge, true
}

func (g *DependencyGraph) ModuleCount() int {
	return len(g.records)
}

func (g *DependencyGraph) EdgeCount() int {
	return g.edgeCount
}

// Externals returns a copy of the unresolved references, keyed by the
// importing module, in declaration order.
func (g *DependencyGraph) Externals() map[string][]string {
	out := make(map[string][]string, len(g.externals))
	for name, refs := range g.externals {
		out[name] = append([]string(nil), refs...)
	}
	return out
}

// ExternalRefCount totals the unresolved references across all modules.
func (g *DependencyGraph) ExternalRefCount() int {
	n := 0
	for _, refs := range g.externals {
		n += len(refs)
	}
	return n
}
