package parser

import (
	"regexp"
	"strings"
)

// codeLine is one line of effective source text together with its
// 1-based position in the original document.
type codeLine struct {
	text string
	num  int
}

var (
	// Import statements: optional `open`, the keyword, a dotted module
	// path, then an optional trailing clause (hiding/renaming/using/as
	// lists, `public`). The trailing clause is consumed so it can never
	// be mistaken for another import.
	importLineRe = regexp.MustCompile(`^\s*(open\s+)?import\s+([\p{L}\p{N}_.]+)(\s+.*)?$`)

	// Lines that lead with the import keyword but fail importLineRe are
	// malformed, not silently ignored prose.
	importLeadRe = regexp.MustCompile(`^\s*(open\s+)?import(\s|$)`)

	publicWordRe = regexp.MustCompile(`\bpublic\b`)
)

// plainLines treats the whole document as source.
func plainLines(content string) []codeLine {
	lines := strings.Split(content, "\n")
	out := make([]codeLine, len(lines))
	for i, line := range lines {
		out[i] = codeLine{text: line, num: i + 1}
	}
	return out
}

type rawImport struct {
	module string
	public bool
	line   int
}

// scanImports extracts import statements from effective source lines.
// Comment lines are skipped; malformed import lines are reported through
// warn and scanning continues with the next line.
func scanImports(lines []codeLine, path string, warn WarnFunc) []rawImport {
	var out []rawImport
	for _, line := range lines {
		trimmed := strings.TrimSpace(line.text)
		if strings.HasPrefix(trimmed, "--") {
			continue
		}

		m := importLineRe.FindStringSubmatch(line.text)
		if m == nil {
			if importLeadRe.MatchString(line.text) {
				warn("malformed import statement skipped", "path", path, "line", line.num)
			}
			continue
		}

		// Visibility is decided by the trailing clause only, so module
		// names containing the word "public" stay private.
		public := publicWordRe.MatchString(m[3])
		out = append(out, rawImport{module: m[2], public: public, line: line.num})
	}
	return out
}
