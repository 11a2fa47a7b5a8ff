package report

import (
	"fmt"
	"strings"

	"agdeps/internal/data/history"
)

// RenderTrendTSV renders run snapshots as a tab-separated table,
// oldest first, for spreadsheet import or quick terminal diffing.
func RenderTrendTSV(snapshots []history.RunSnapshot) ([]byte, error) {
	var buf strings.Builder

	buf.WriteString("Timestamp\tRun\tSourceRoot\tModules\tFiles\tEdges\tExternals\tMaxDepth\tAvgDepth\tCycles\tWarnings\tDurationMs\n")
	for _, point := range snapshots {
		buf.WriteString(fmt.Sprintf(
			"%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%.2f\t%d\t%d\t%d\n",
			point.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			point.RunID,
			point.SourceRoot,
			point.ModuleCount,
			point.FileCount,
			point.EdgeCount,
			point.ExternalCount,
			point.MaxDepth,
			point.AvgDepth,
			point.CycleCount,
			point.WarningCount,
			point.Duration.Milliseconds(),
		))
	}

	return []byte(buf.String()), nil
}
