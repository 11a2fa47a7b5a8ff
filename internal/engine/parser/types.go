package parser

import "strings"

// FileKind is the closed set of recognized source flavors. Dispatch on
// it is exhaustive: there is no open registration of further kinds.
type FileKind int

const (
	KindPlain FileKind = iota
	KindLiterate
)

func (k FileKind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindLiterate:
		return "literate"
	default:
		return "unknown"
	}
}

type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityPublic
)

func (v Visibility) String() string {
	if v == VisibilityPublic {
		return "public"
	}
	return "private"
}

// Precedence selects which visibility survives when one module declares
// the same import more than once with differing visibilities.
type Precedence int

const (
	// PrecedenceMostPermissive keeps public if any duplicate was public.
	PrecedenceMostPermissive Precedence = iota
	// PrecedenceFirstWins keeps the visibility of the earliest declaration.
	PrecedenceFirstWins
)

// ImportDeclaration is one surviving import of a module, after
// deduplication. Line is 1-based and refers to the original document,
// also for literate files.
type ImportDeclaration struct {
	Module     string
	Visibility Visibility
	Line       int
}

// ModuleRecord is one discovered source file. Immutable once built.
type ModuleRecord struct {
	Name    string
	Path    string
	Kind    FileKind
	Imports []ImportDeclaration
}

// ModuleNameFromRelPath derives the canonical module name from a path
// relative to the source root: the kind's extension is stripped and path
// separators become dots, so Cat/Base.agda names the module Cat.Base.
func ModuleNameFromRelPath(relPath string, kind FileKind, plainExt, literateExt string) string {
	name := strings.ReplaceAll(relPath, "\\", "/")
	switch kind {
	case KindLiterate:
		name = strings.TrimSuffix(name, literateExt)
	default:
		name = strings.TrimSuffix(name, plainExt)
	}
	return strings.ReplaceAll(name, "/", ".")
}

// Category returns the first segment of a canonical module name, the
// grouping key for report and graph styling.
func Category(moduleName string) string {
	if i := strings.IndexByte(moduleName, '.'); i >= 0 {
		return moduleName[:i]
	}
	return moduleName
}
