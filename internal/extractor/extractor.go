// Package extractor parses the aliases block out of a devicetree
// overlay and classifies each alias by its target's device class.
//
// Only the flat assignment grammar inside the block is parsed; the
// surrounding document structure is opaque. Extraction is best-effort:
// lines that do not match the grammar are skipped, not reported.
package extractor

import (
	"fmt"
	"os"
	"strings"
)

// Extract returns one record per alias assignment inside the first
// aliases block of the document, in source order. A document without an
// aliases block yields an empty slice; the caller decides whether that
// is fatal (see HasAliasesBlock to tell the two cases apart).
func Extract(document string) []AliasRecord {
	span := findBlock(document, "aliases")
	if !span.found {
		return nil
	}

	var records []AliasRecord
	lineNum := span.line
	for _, raw := range strings.Split(document[span.start:span.end], "\n") {
		line := stripLineComment(raw)
		if m := matchAssignment(line); m != nil {
			records = append(records, AliasRecord{
				Name:   m[0],
				Target: m[1],
				Class:  ClassifyTarget(m[1]),
				Line:   lineNum,
			})
		}
		lineNum++
	}
	return records
}

// HasAliasesBlock reports whether the document contains an aliases
// block at all, so callers can distinguish "no block" from "block with
// nothing usable in it".
func HasAliasesBlock(document string) bool {
	return findBlock(document, "aliases").found
}

// ExtractFile reads a document from disk and extracts its alias
// records.
func ExtractFile(path string) ([]AliasRecord, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Extract(string(content)), nil
}
