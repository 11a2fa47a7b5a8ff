package app

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"agdeps/internal/core/errors"
	"agdeps/internal/engine/parser"
	"agdeps/internal/shared/diag"
	"agdeps/internal/shared/util"
)

// DiscoveredFile is one recognized source file under the root.
type DiscoveredFile struct {
	Path    string // path as walked, rooted at the scan root
	RelPath string // slash-normalized path relative to the root
	Kind    parser.FileKind
}

// Scanner walks a source root and yields the files the pipeline will
// parse. Output order is not significant; downstream sorts by canonical
// module name.
type Scanner struct {
	PlainExt    string
	LiterateExt string
	Exclude     []string
	Diag        *diag.Collector
}

// Discover returns every recognized source file under root. A missing
// root is a fatal domain error; an existing but empty root yields an
// empty slice and the caller decides. Walk errors below the root and
// unmatched exclude patterns are warnings, never fatal.
func (s *Scanner) Discover(root string) ([]DiscoveredFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.AddContext(
				errors.New(errors.CodeMissingRoot, "source root does not exist"),
				errors.CtxPath, root)
		}
		return nil, errors.AddContext(
			errors.Wrap(err, errors.CodeMissingRoot, "source root is not accessible"),
			errors.CtxPath, root)
	}
	if !info.IsDir() {
		return nil, errors.AddContext(
			errors.New(errors.CodeMissingRoot, "source root is not a directory"),
			errors.CtxPath, root)
	}

	excludes := make([]glob.Glob, 0, len(s.Exclude))
	for _, pattern := range s.Exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			s.warn("invalid exclude pattern skipped", "pattern", pattern, "error", err)
			continue
		}
		excludes = append(excludes, g)
	}

	var files []DiscoveredFile
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			s.warn("walk error, subtree skipped", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = util.NormalizePatternPath(rel)

		if d.IsDir() {
			for _, g := range excludes {
				if g.Match(rel) || g.Match(rel+"/") {
					return filepath.SkipDir
				}
			}
			return nil
		}

		kind, ok := s.kindOf(path)
		if !ok {
			return nil
		}
		for _, g := range excludes {
			if g.Match(rel) {
				return nil
			}
		}

		files = append(files, DiscoveredFile{Path: path, RelPath: rel, Kind: kind})
		return nil
	})
	if walkErr != nil {
		return nil, errors.AddContext(
			errors.Wrap(walkErr, errors.CodeMissingRoot, "walk source root"),
			errors.CtxPath, root)
	}
	return files, nil
}

// kindOf classifies a path into the closed kind set. The literate
// extension is checked first since extensions are suffixes and config
// validation only guarantees they do not swallow each other one way.
func (s *Scanner) kindOf(path string) (parser.FileKind, bool) {
	switch {
	case strings.HasSuffix(path, s.LiterateExt):
		return parser.KindLiterate, true
	case strings.HasSuffix(path, s.PlainExt):
		return parser.KindPlain, true
	default:
		return 0, false
	}
}

func (s *Scanner) warn(msg string, args ...any) {
	if s.Diag != nil {
		s.Diag.Warn(msg, args...)
	}
}
