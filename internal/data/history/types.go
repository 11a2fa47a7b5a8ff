package history

import "time"

const SchemaVersion = 1

// RunSnapshot is the persisted summary of one analysis run. Snapshots
// are append-only audit records; the analysis pipeline never reads
// them back, they only feed the trends view.
type RunSnapshot struct {
	RunID         string
	SchemaVersion int
	Timestamp     time.Time
	SourceRoot    string
	ModuleCount   int
	FileCount     int
	EdgeCount     int
	ExternalCount int
	MaxDepth      int
	AvgDepth      float64
	CycleCount    int
	WarningCount  int
	Duration      time.Duration
}
