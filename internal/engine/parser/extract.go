package parser

// WarnFunc receives recoverable extraction diagnostics in slog key/value
// style. Extraction never fails a file; it only warns and moves on.
type WarnFunc func(msg string, args ...any)

// Extractor turns raw file content into the surviving import list of a
// module. It is stateless across files and safe for concurrent use.
type Extractor struct {
	Precedence Precedence
	Warn       WarnFunc
}

func NewExtractor(prec Precedence, warn WarnFunc) *Extractor {
	return &Extractor{Precedence: prec, Warn: warn}
}

// Extract scans content according to kind and returns the deduplicated,
// declaration-ordered imports of the module. Duplicates collapse to the
// first occurrence (earliest line); the kept visibility follows the
// configured precedence. Self imports are dropped with a warning.
func (e *Extractor) Extract(content []byte, path string, kind FileKind, moduleName string) []ImportDeclaration {
	var lines []codeLine
	switch kind {
	case KindLiterate:
		lines = literateLines(string(content))
	default:
		lines = plainLines(string(content))
	}

	raw := scanImports(lines, path, e.warnf)

	decls := make([]ImportDeclaration, 0, len(raw))
	index := make(map[string]int, len(raw))
	for _, imp := range raw {
		if imp.module == moduleName {
			e.warnf("self import dropped", "module", moduleName, "path", path, "line", imp.line)
			continue
		}

		visibility := VisibilityPrivate
		if imp.public {
			visibility = VisibilityPublic
		}

		at, seen := index[imp.module]
		if !seen {
			index[imp.module] = len(decls)
			decls = append(decls, ImportDeclaration{
				Module:     imp.module,
				Visibility: visibility,
				Line:       imp.line,
			})
			continue
		}

		if e.Precedence == PrecedenceMostPermissive && visibility == VisibilityPublic {
			decls[at].Visibility = VisibilityPublic
		}
	}
	return decls
}

func (e *Extractor) warnf(msg string, args ...any) {
	if e.Warn != nil {
		e.Warn(msg, args...)
	}
}
