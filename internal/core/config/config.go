package config

// Config drives one analysis run. Flags may override the top-level paths
// and the graph/report cutoffs after loading.
type Config struct {
	ProjectName string `toml:"project_name"`
	SourceRoot  string `toml:"source_root"`
	OutputDir   string `toml:"output_dir"`

	Scan          Scan          `toml:"scan"`
	Imports       Imports       `toml:"imports"`
	Report        Report        `toml:"report"`
	Graph         Graph         `toml:"graph"`
	History       History       `toml:"history"`
	Observability Observability `toml:"observability"`
}

type Scan struct {
	PlainExtension    string   `toml:"plain_extension"`
	LiterateExtension string   `toml:"literate_extension"`
	Exclude           []string `toml:"exclude"`
	Workers           int      `toml:"workers"`
}

type Imports struct {
	// VisibilityPrecedence decides which visibility survives when one
	// module declares the same import both plainly and as a re-export:
	// "most-permissive" (public wins) or "first-wins".
	VisibilityPrecedence string `toml:"visibility_precedence"`
}

type Report struct {
	TopCount int    `toml:"top_count"`
	File     string `toml:"file"`
}

type Graph struct {
	MaxNodes       int               `toml:"max_nodes"`
	File           string            `toml:"file"`
	CategoryColors map[string]string `toml:"category_colors"`
}

type History struct {
	Enabled    bool   `toml:"enabled"`
	Path       string `toml:"path"`
	TrendLimit int    `toml:"trend_limit"`
}

type Observability struct {
	MetricsFile  string  `toml:"metrics_file"`
	OTLPEndpoint string  `toml:"otlp_endpoint"`
	SampleRate   float64 `toml:"sample_rate"`
	ServiceName  string  `toml:"service_name"`
}

const (
	PrecedenceMostPermissive = "most-permissive"
	PrecedenceFirstWins      = "first-wins"
)

// Default returns a config carrying only defaults, for runs without a
// config file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.SourceRoot == "" {
		cfg.SourceRoot = "src"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	if cfg.Scan.PlainExtension == "" {
		cfg.Scan.PlainExtension = ".agda"
	}
	if cfg.Scan.LiterateExtension == "" {
		cfg.Scan.LiterateExtension = ".lagda.md"
	}

	if cfg.Imports.VisibilityPrecedence == "" {
		cfg.Imports.VisibilityPrecedence = PrecedenceMostPermissive
	}

	if cfg.Report.TopCount == 0 {
		cfg.Report.TopCount = 20
	}
	if cfg.Report.File == "" {
		cfg.Report.File = "dependency_report.md"
	}

	if cfg.Graph.MaxNodes == 0 {
		cfg.Graph.MaxNodes = 100
	}
	if cfg.Graph.File == "" {
		cfg.Graph.File = "dependency_graph.dot"
	}
	if len(cfg.Graph.CategoryColors) == 0 {
		cfg.Graph.CategoryColors = map[string]string{
			"1Lab":     "#e8f4f8",
			"Prim":     "#f0e8f8",
			"Cat":      "#f8f0e8",
			"Algebra":  "#e8f8f0",
			"Data":     "#f8e8f0",
			"Order":    "#f0f8e8",
			"Homotopy": "#f8f8e8",
		}
	}

	if cfg.History.Path == "" {
		cfg.History.Path = "agdeps_history.db"
	}
	if cfg.History.TrendLimit == 0 {
		cfg.History.TrendLimit = 10
	}

	if cfg.Observability.SampleRate == 0 {
		cfg.Observability.SampleRate = 1.0
	}
	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = "agdeps"
	}
}
