package parser

import "strings"

// literateLines isolates embedded code regions from a literate document
// in document order: visibly fenced ```agda blocks and blocks hidden
// inside HTML comments (`<!-- ```agda ... ``` -->`). Comment markup is
// transparent, so a hidden fence is extracted exactly once. Reported
// line numbers are positions in the original document.
func literateLines(content string) []codeLine {
	var out []codeLine
	inCode := false
	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if inCode {
			if strings.HasPrefix(trimmed, "```") {
				inCode = false
				continue
			}
			out = append(out, codeLine{text: line, num: i + 1})
			continue
		}
		// A fence opener may share its line with the comment opener,
		// as in `<!-- ```agda`.
		if trimmed == "```agda" || strings.HasSuffix(trimmed, "```agda") {
			inCode = true
		}
	}
	return out
}
