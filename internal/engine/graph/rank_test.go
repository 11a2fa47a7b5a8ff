package graph

import "testing"

func assertRanking(t *testing.T, got, want []RankedModule) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %d ranked modules, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Position %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestRank_Foundational(t *testing.T) {
	g := buildGraph(map[string][]string{
		"A": {"B", "C"},
		"B": {"C"},
		"C": nil,
		"D": nil,
	})

	assertRanking(t, RankFoundational(g), []RankedModule{
		{"C", 0}, {"D", 0}, {"B", 1}, {"A", 2},
	})
}

func TestRank_Hubs(t *testing.T) {
	g := buildGraph(map[string][]string{
		"A": {"B", "C"},
		"B": {"C"},
		"C": nil,
		"D": nil,
	})

	assertRanking(t, RankHubs(g), []RankedModule{
		{"C", 2}, {"B", 1}, {"A", 0}, {"D", 0},
	})
}

func TestRank_DeepChainsSkipCycles(t *testing.T) {
	res := &DepthResult{Depths: map[string]int{
		"A": 2, "D": 2, "B": 1, "C": 0,
		"X": CycleDepth, "Y": CycleDepth,
	}}

	assertRanking(t, RankDeepChains(res), []RankedModule{
		{"A", 2}, {"D", 2}, {"B", 1}, {"C", 0},
	})
}

func TestRank_ExternalRefsDoNotCount(t *testing.T) {
	g := buildGraph(map[string][]string{
		"Data.Nat": {"Agda.Primitive", "Data.Bool"},
		"Data.Bool": nil,
	})

	assertRanking(t, RankFoundational(g), []RankedModule{
		{"Data.Bool", 0}, {"Data.Nat", 1},
	})
}
