package graph

import (
	"sort"
	"strings"
)

// CycleDepth marks modules that sit on an import cycle. Their chain
// depth is undefined, so they carry this sentinel instead of a count.
const CycleDepth = -1

// DepthResult holds the memoized chain depth per module plus one
// representative cycle path per strongly connected cluster. Cycle
// paths are closed: the first module is repeated at the end.
type DepthResult struct {
	Depths map[string]int
	Cycles [][]string

	component map[string]int
}

// DepthStats aggregates the depth distribution for reporting.
type DepthStats struct {
	Max     int
	Avg     float64
	Shallow int // depth 0-5
	Medium  int // depth 6-15
	Deep    int // depth 16+
	OnCycle int
}

type depthFrame struct {
	node     string
	children []string
	next     int
}

// ComputeDepths walks the graph with an iterative Tarjan DFS. Each
// strongly connected component is finished after everything reachable
// from it, so a module's depth folds over already-final child depths:
// depth 0 for leaves, otherwise 1 + the deepest child. Members of a
// component with two or more modules are on a cycle and receive
// CycleDepth; a child on a cycle contributes as depth 0, keeping the
// depths of its importers finite. Runs in O(modules + edges).
func ComputeDepths(g *DependencyGraph) *DepthResult {
	res := &DepthResult{
		Depths:    make(map[string]int, g.ModuleCount()),
		component: make(map[string]int),
	}

	index := make(map[string]int, g.ModuleCount())
	lowlink := make(map[string]int, g.ModuleCount())
	onStack := make(map[string]bool, g.ModuleCount())
	var pending []string
	var frames []depthFrame
	counter := 0

	visit := func(name string) {
		index[name] = counter
		lowlink[name] = counter
		counter++
		pending = append(pending, name)
		onStack[name] = true
		frames = append(frames, depthFrame{node: name, children: childNames(g, name)})
	}

	for _, start := range g.ModuleNames() {
		if _, seen := index[start]; seen {
			continue
		}
		visit(start)

		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			if f.next < len(f.children) {
				child := f.children[f.next]
				f.next++
				if _, seen := index[child]; !seen {
					visit(child)
				} else if onStack[child] && index[child] < lowlink[f.node] {
					lowlink[f.node] = index[child]
				}
				continue
			}

			node := f.node
			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := frames[len(frames)-1].node
				if lowlink[node] < lowlink[parent] {
					lowlink[parent] = lowlink[node]
				}
			}
			if lowlink[node] != index[node] {
				continue
			}

			var scc []string
			for {
				member := pending[len(pending)-1]
				pending = pending[:len(pending)-1]
				onStack[member] = false
				scc = append(scc, member)
				if member == node {
					break
				}
			}
			res.finishComponent(g, scc)
		}
	}

	sort.Slice(res.Cycles, func(i, j int) bool {
		return strings.Join(res.Cycles[i], "\x00") < strings.Join(res.Cycles[j], "\x00")
	})
	return res
}

// finishComponent assigns depths for one emitted component. All child
// components were emitted earlier, so their depths are final.
func (r *DepthResult) finishComponent(g *DependencyGraph, scc []string) {
	if len(scc) > 1 {
		id := len(r.Cycles)
		for _, member := range scc {
			r.Depths[member] = CycleDepth
			r.component[member] = id
		}
		r.Cycles = append(r.Cycles, representativeCycle(g, scc))
		return
	}

	node := scc[0]
	depth := 0
	for _, edge := range g.ImportsOf(node) {
		d := r.Depths[edge.To]
		if d < 0 {
			d = 0
		}
		if d+1 > depth {
			depth = d + 1
		}
	}
	r.Depths[node] = depth
}

// representativeCycle extracts one closed path through a component
// with two or more modules. It starts at the smallest name and always
// follows the smallest in-component import, so the same graph yields
// the same path on every run.
func representativeCycle(g *DependencyGraph, scc []string) []string {
	inside := make(map[string]bool, len(scc))
	start := scc[0]
	for _, member := range scc {
		inside[member] = true
		if member < start {
			start = member
		}
	}

	walk := []string{start}
	position := map[string]int{start: 0}
	current := start
	for {
		next := ""
		for _, edge := range g.ImportsOf(current) {
			if inside[edge.To] {
				next = edge.To
				break
			}
		}
		if next == "" {
			// Unreachable: every member of a strongly connected pair
			// keeps an in-component import.
			return append(walk, start)
		}
		if at, seen := position[next]; seen {
			cycle := append([]string(nil), walk[at:]...)
			return append(cycle, next)
		}
		position[next] = len(walk)
		walk = append(walk, next)
		current = next
	}
}

func childNames(g *DependencyGraph, name string) []string {
	edges := g.ImportsOf(name)
	children := make([]string, len(edges))
	for i, edge := range edges {
		children[i] = edge.To
	}
	return children
}

// OnCycle reports whether name carries the cycle sentinel.
func (r *DepthResult) OnCycle(name string) bool {
	return r.Depths[name] == CycleDepth
}

// SharedCycle reports whether both modules sit in the same cyclic
// component, which makes the edge between them part of a cycle.
func (r *DepthResult) SharedCycle(a, b string) bool {
	ca, ok := r.component[a]
	if !ok {
		return false
	}
	cb, ok := r.component[b]
	return ok && ca == cb
}

// Stats folds the depth map into the report aggregates. Modules on
// cycles are counted separately and excluded from the buckets and the
// average.
func (r *DepthResult) Stats() DepthStats {
	var s DepthStats
	sum := 0
	counted := 0
	for _, d := range r.Depths {
		if d == CycleDepth {
			s.OnCycle++
			continue
		}
		counted++
		sum += d
		if d > s.Max {
			s.Max = d
		}
		switch {
		case d <= 5:
			s.Shallow++
		case d <= 15:
			s.Medium++
		default:
			s.Deep++
		}
	}
	if counted > 0 {
		s.Avg = float64(sum) / float64(counted)
	}
	return s
}
