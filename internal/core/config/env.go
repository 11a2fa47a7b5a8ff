package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// ApplyEnvOverrides applies environment variable overrides to the
// configuration. Pattern: AGDEPS_[SECTION]_[KEY]
// (e.g., AGDEPS_HISTORY_PATH). Applied after file loading and before
// flag overrides, so flags win.
func ApplyEnvOverrides(cfg *Config) {
	setEnvString(&cfg.ProjectName, "AGDEPS_PROJECT_NAME")
	setEnvString(&cfg.SourceRoot, "AGDEPS_SOURCE_ROOT")
	setEnvString(&cfg.OutputDir, "AGDEPS_OUTPUT_DIR")

	// Scan
	setEnvInt(&cfg.Scan.Workers, "AGDEPS_SCAN_WORKERS")

	// Report
	setEnvInt(&cfg.Report.TopCount, "AGDEPS_REPORT_TOP_COUNT")
	setEnvString(&cfg.Report.File, "AGDEPS_REPORT_FILE")

	// Graph
	setEnvInt(&cfg.Graph.MaxNodes, "AGDEPS_GRAPH_MAX_NODES")
	setEnvString(&cfg.Graph.File, "AGDEPS_GRAPH_FILE")

	// History
	setEnvBool(&cfg.History.Enabled, "AGDEPS_HISTORY_ENABLED")
	setEnvString(&cfg.History.Path, "AGDEPS_HISTORY_PATH")
	setEnvInt(&cfg.History.TrendLimit, "AGDEPS_HISTORY_TREND_LIMIT")

	// Observability
	setEnvString(&cfg.Observability.MetricsFile, "AGDEPS_OBSERVABILITY_METRICS_FILE")
	setEnvString(&cfg.Observability.OTLPEndpoint, "AGDEPS_OBSERVABILITY_OTLP_ENDPOINT")
	setEnvFloat64(&cfg.Observability.SampleRate, "AGDEPS_OBSERVABILITY_SAMPLE_RATE")
	setEnvString(&cfg.Observability.ServiceName, "AGDEPS_OBSERVABILITY_SERVICE_NAME")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		log.Printf("Applying env override: %s=%s", key, val)
		*target = val
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = b
		}
	}
}

func setEnvFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = f
		}
	}
}
