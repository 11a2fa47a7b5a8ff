package ports

import (
	"agdeps/internal/data/history"
	"agdeps/internal/engine/parser"
)

// ImportExtractor abstracts per-file import extraction.
type ImportExtractor interface {
	Extract(content []byte, path string, kind parser.FileKind, moduleName string) []parser.ImportDeclaration
}

// HistorySink abstracts run-snapshot persistence so the analysis
// pipeline never depends on the concrete SQLite store.
type HistorySink interface {
	SaveSnapshot(snapshot history.RunSnapshot) error
}
