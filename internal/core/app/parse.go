package app

import (
	"context"
	"os"
	"runtime"
	"sort"
	"sync"

	"agdeps/internal/engine/parser"
	"agdeps/internal/shared/observability"
)

// parseAll reads and extracts every discovered file using a small worker
// pool. Results are sorted by module name so downstream stages see the
// same order on every run regardless of worker scheduling.
func (s *Service) parseAll(ctx context.Context, files []DiscoveredFile) []parser.ModuleRecord {
	if len(files) == 0 {
		return nil
	}

	workers := s.cfg.Scan.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan DiscoveredFile)
	out := make(chan parser.ModuleRecord, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				if record, ok := s.parseFile(file); ok {
					out <- record
				}
			}
		}()
	}

feed:
	for _, file := range files {
		select {
		case jobs <- file:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	close(out)

	records := make([]parser.ModuleRecord, 0, len(files))
	for record := range out {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records
}

// parseFile turns one discovered file into a module record. Unreadable
// files are skipped with a warning so one bad file never aborts a run.
func (s *Service) parseFile(file DiscoveredFile) (parser.ModuleRecord, bool) {
	content, err := os.ReadFile(file.Path)
	if err != nil {
		s.collector.Warn("read source file failed", "path", file.Path, "error", err)
		return parser.ModuleRecord{}, false
	}

	name := parser.ModuleNameFromRelPath(file.RelPath, file.Kind, s.cfg.Scan.PlainExtension, s.cfg.Scan.LiterateExtension)
	imports := s.extractor.Extract(content, file.RelPath, file.Kind, name)
	observability.ParsedFiles.WithLabelValues(file.Kind.String()).Inc()

	return parser.ModuleRecord{
		Name:    name,
		Path:    file.RelPath,
		Kind:    file.Kind,
		Imports: imports,
	}, true
}
