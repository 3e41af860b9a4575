// Package style is the C naming-convention linter for the lab source
// trees. It extracts named declarations from .c/.h files by regex and
// evaluates OPA rego naming rules against them. It shares no data
// model with the overlay transcoder and is invoked on its own.
package style

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Declaration is one named C declaration found by the scanner.
type Declaration struct {
	Kind string `json:"kind"` // "macro", "function", "variable", "typedef"
	Name string `json:"name"`
	File string `json:"file"`
	Line int    `json:"line"`
	Text string `json:"text"` // the source line, for reporting
}

// Input is the data handed to the rego policies.
type Input struct {
	Declarations []Declaration `json:"declarations"`
}

// ExtractFile scans one C source file for named declarations.
// Include directives and struct/enum/union declaration lines are
// skipped, matching the legacy linter's blind spots.
func ExtractFile(path string) ([]Declaration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var decls []Declaration
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		stripped := strings.TrimSpace(line)

		if strings.HasPrefix(stripped, "#include") {
			continue
		}
		if strings.HasPrefix(stripped, "struct ") ||
			strings.HasPrefix(stripped, "enum ") ||
			strings.HasPrefix(stripped, "union ") {
			continue
		}

		// First matching kind wins. Typedef is checked before the
		// function and variable patterns: the typedef keyword is
		// unambiguous, and typedef lines also happen to match the
		// broader patterns.
		if name := matchMacro(line); name != "" {
			decls = append(decls, Declaration{Kind: "macro", Name: name, File: path, Line: lineNum, Text: stripped})
			continue
		}
		if name := matchTypedef(line); name != "" {
			decls = append(decls, Declaration{Kind: "typedef", Name: name, File: path, Line: lineNum, Text: stripped})
			continue
		}
		if name := matchFunction(line); name != "" {
			decls = append(decls, Declaration{Kind: "function", Name: name, File: path, Line: lineNum, Text: stripped})
			continue
		}
		if name := matchVariable(line); name != "" {
			decls = append(decls, Declaration{Kind: "variable", Name: name, File: path, Line: lineNum, Text: stripped})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return decls, nil
}

// FindSourceFiles returns the .c/.h files under path, which may itself
// be a single file. Results are sorted so lint output is stable.
func FindSourceFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		if isSourceFile(path) {
			return []string{path}, nil
		}
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries, keep walking
		}
		if !d.IsDir() && isSourceFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", path, err)
	}

	sort.Strings(files)
	return files, nil
}

func isSourceFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".c" || ext == ".h"
}
