package extractor

import "strings"

// blockSpan is the byte range of a block body between its braces.
type blockSpan struct {
	start int
	end   int
	line  int // 1-based line of the opening brace
	found bool
}

// findBlock locates the first block introduced by keyword and returns
// the span of its body. The closing brace is found by tracking brace
// depth, so a nested block inside the body does not end the span
// early. Text behind // line comments is ignored for both keyword and
// brace matching, so a decoy brace in a comment cannot truncate the
// block either.
func findBlock(doc, keyword string) blockSpan {
	line := 1
	inComment := false
	for i := 0; i < len(doc); i++ {
		c := doc[i]
		if c == '\n' {
			line++
			inComment = false
			continue
		}
		if inComment {
			continue
		}
		if c == '/' && i+1 < len(doc) && doc[i+1] == '/' {
			inComment = true
			continue
		}
		if !strings.HasPrefix(doc[i:], keyword) {
			continue
		}
		if i > 0 && isIdentChar(doc[i-1]) {
			continue
		}
		j := i + len(keyword)
		for j < len(doc) && (doc[j] == ' ' || doc[j] == '\t') {
			j++
		}
		if j >= len(doc) || doc[j] != '{' {
			continue
		}
		return scanBody(doc, j, line)
	}
	return blockSpan{}
}

// scanBody walks from the opening brace to its matching close.
// An unterminated block degrades to everything up to EOF; the grammar
// inside is matched line by line, so trailing garbage only produces
// skipped lines.
func scanBody(doc string, open int, line int) blockSpan {
	depth := 1
	inComment := false
	for i := open + 1; i < len(doc); i++ {
		switch {
		case doc[i] == '\n':
			inComment = false
		case inComment:
		case doc[i] == '/' && i+1 < len(doc) && doc[i+1] == '/':
			inComment = true
		case doc[i] == '{':
			depth++
		case doc[i] == '}':
			depth--
			if depth == 0 {
				return blockSpan{start: open + 1, end: i, line: line, found: true}
			}
		}
	}
	return blockSpan{start: open + 1, end: len(doc), line: line, found: true}
}

func isIdentChar(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// stripLineComment removes a trailing // comment. Block comments are
// not handled.
func stripLineComment(line string) string {
	if idx := strings.Index(line, "//"); idx >= 0 {
		return line[:idx]
	}
	return line
}
