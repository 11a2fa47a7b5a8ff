package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"agdeps/internal/core/app"
	"agdeps/internal/engine/graph"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	cycleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

func printSummary(result *app.RunResult) {
	fmt.Println(titleStyle("Agda Dependency Analysis"))
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Analyzed %d files, %d modules, %d edges in %v\n",
		result.FileCount, result.ModuleCount, result.EdgeCount, result.Duration)
	fmt.Printf("Depth: max %d, avg %.2f\n", result.Stats.Max, result.Stats.Avg)

	if len(result.Cycles) > 0 {
		fmt.Println(cycleStyle.Render(fmt.Sprintf("⚠️  FOUND %d DEPENDENCY CYCLES:", len(result.Cycles))))
		for _, c := range result.Cycles {
			fmt.Printf("   %s\n", strings.Join(c, " -> "))
		}
	} else {
		fmt.Println(successStyle.Render("✅ No dependency cycles found."))
	}

	if hubs := rankLeaders(result.Hubs, 5, 1); len(hubs) > 0 {
		fmt.Println("📊 Most depended-on modules:")
		for _, hub := range hubs {
			fmt.Printf("   %s (%d dependents)\n", hub.Name, hub.Value)
		}
	}

	if result.Warnings > 0 {
		fmt.Printf("⚠️  %d warnings during analysis (see logs)\n", result.Warnings)
	}

	fmt.Printf("Report: %s\n", result.ReportPath)
	fmt.Printf("Graph:  %s\n", result.GraphPath)
	if result.HistorySaved {
		fmt.Println(statusStyle.Render(fmt.Sprintf("Run %s recorded in history", result.RunID)))
	}
}

// rankLeaders keeps up to n entries whose value is at least minValue.
// Rankings are pre-sorted, so the first matches are the leaders.
func rankLeaders(ranked []graph.RankedModule, n, minValue int) []graph.RankedModule {
	leaders := make([]graph.RankedModule, 0, n)
	for _, entry := range ranked {
		if entry.Value < minValue {
			continue
		}
		leaders = append(leaders, entry)
		if len(leaders) == n {
			break
		}
	}
	return leaders
}
