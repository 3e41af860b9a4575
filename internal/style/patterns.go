package style

import "regexp"

var (
	// Pattern: #define NAME
	macroPattern = regexp.MustCompile(`^\s*#define\s+([a-zA-Z_][a-zA-Z0-9_]*)`)

	// Pattern: [static] [inline] <type> name(
	functionPattern = regexp.MustCompile(`^\s*(?:static\s+)?(?:inline\s+)?[a-zA-Z_][a-zA-Z0-9_\s\*]*\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`)

	// Pattern: [static] [const] <type> name = or name;
	variablePattern = regexp.MustCompile(`^\s*(?:static\s+)?(?:const\s+)?[a-zA-Z_][a-zA-Z0-9_\s\*]+\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*(=|;)`)

	// Pattern: typedef ... name;
	typedefPattern = regexp.MustCompile(`^\s*typedef\s+.*\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*;`)
)

// Control-flow keywords the function pattern misreads as call sites.
var controlKeywords = map[string]bool{
	"if":     true,
	"for":    true,
	"while":  true,
	"switch": true,
	"return": true,
}

// matchMacro returns the macro name if the line is a #define.
func matchMacro(line string) string {
	if m := macroPattern.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}

// matchFunction returns the function name if the line looks like a
// function declaration or definition.
func matchFunction(line string) string {
	if m := functionPattern.FindStringSubmatch(line); m != nil {
		if controlKeywords[m[1]] {
			return ""
		}
		return m[1]
	}
	return ""
}

// matchVariable returns the variable name if the line looks like a
// variable declaration.
func matchVariable(line string) string {
	if m := variablePattern.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}

// matchTypedef returns the introduced name if the line is a typedef.
func matchTypedef(line string) string {
	if m := typedefPattern.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}
