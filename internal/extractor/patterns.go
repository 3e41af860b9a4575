package extractor

import "regexp"

var (
	// Pattern: <name> = &<target>; (reference sigil optional)
	assignmentPattern = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=\s*&?([A-Za-z_][A-Za-z0-9_]*)\s*;`)
)

// matchAssignment returns [name, target] if the line is an alias
// assignment. The line must have its trailing comment stripped first.
func matchAssignment(line string) []string {
	if m := assignmentPattern.FindStringSubmatch(line); m != nil {
		return []string{m[1], m[2]}
	}
	return nil
}
