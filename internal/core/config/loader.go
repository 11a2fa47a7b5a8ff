package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	applyDefaults(&cfg)
	normalize(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalize(cfg *Config) {
	cfg.ProjectName = strings.TrimSpace(cfg.ProjectName)
	cfg.SourceRoot = strings.TrimSpace(cfg.SourceRoot)
	cfg.OutputDir = strings.TrimSpace(cfg.OutputDir)
	cfg.Imports.VisibilityPrecedence = strings.ToLower(strings.TrimSpace(cfg.Imports.VisibilityPrecedence))

	patterns := make([]string, 0, len(cfg.Scan.Exclude))
	for _, p := range cfg.Scan.Exclude {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		patterns = append(patterns, p)
	}
	cfg.Scan.Exclude = patterns
}

// Validate is also applied after flag overrides in cmd, so it must hold
// for any mutation path, not only Load.
func Validate(cfg *Config) error {
	if cfg.SourceRoot == "" {
		return fmt.Errorf("source_root must not be empty")
	}
	if cfg.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}

	if err := validateExtensions(cfg); err != nil {
		return err
	}

	switch cfg.Imports.VisibilityPrecedence {
	case PrecedenceMostPermissive, PrecedenceFirstWins:
	default:
		return fmt.Errorf("imports.visibility_precedence must be one of: %s, %s",
			PrecedenceMostPermissive, PrecedenceFirstWins)
	}

	if cfg.Report.TopCount <= 0 {
		return fmt.Errorf("report.top_count must be positive, got %d", cfg.Report.TopCount)
	}
	if cfg.Graph.MaxNodes <= 0 {
		return fmt.Errorf("graph.max_nodes must be positive, got %d", cfg.Graph.MaxNodes)
	}
	if cfg.Scan.Workers < 0 {
		return fmt.Errorf("scan.workers must not be negative, got %d", cfg.Scan.Workers)
	}

	for _, pattern := range cfg.Scan.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("scan.exclude pattern %q does not compile: %w", pattern, err)
		}
	}

	if cfg.History.TrendLimit <= 0 {
		return fmt.Errorf("history.trend_limit must be positive, got %d", cfg.History.TrendLimit)
	}
	if cfg.History.Enabled && cfg.History.Path == "" {
		return fmt.Errorf("history.path must not be empty when history is enabled")
	}

	if cfg.Observability.SampleRate < 0 || cfg.Observability.SampleRate > 1 {
		return fmt.Errorf("observability.sample_rate must be within [0, 1], got %g", cfg.Observability.SampleRate)
	}

	return nil
}

func validateExtensions(cfg *Config) error {
	plain := cfg.Scan.PlainExtension
	literate := cfg.Scan.LiterateExtension
	if !strings.HasPrefix(plain, ".") {
		return fmt.Errorf("scan.plain_extension must start with a dot, got %q", plain)
	}
	if !strings.HasPrefix(literate, ".") {
		return fmt.Errorf("scan.literate_extension must start with a dot, got %q", literate)
	}
	if plain == literate {
		return fmt.Errorf("scan.plain_extension and scan.literate_extension must differ")
	}
	if strings.HasSuffix(literate, plain) {
		return fmt.Errorf("scan.literate_extension %q must not end with scan.plain_extension %q", literate, plain)
	}
	return nil
}
