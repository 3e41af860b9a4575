// cstyle checks lab C sources against the course naming conventions:
// macros UPPER_CASE, functions and variables snake_case, typedef names
// suffixed _t. It is independent of the overlay transcoder and exits
// nonzero when violations exist.
package main

import (
	"fmt"
	"os"

	"github.com/amelia-cook/simoverlay/internal/config"
	"github.com/amelia-cook/simoverlay/internal/style"
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: cstyle <file.c|file.h|directory>")
		os.Exit(2)
	}
	target := os.Args[1]

	if _, err := os.Stat(target); err != nil {
		fmt.Fprintf(os.Stderr, "Error: '%s' does not exist.\n", target)
		os.Exit(2)
	}

	cfg, err := config.Load(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load config: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	files, err := style.FindSourceFiles(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println("No .c or .h files found.")
		return
	}

	var input style.Input
	for _, f := range files {
		if cfg.ShouldIgnoreFile(f) {
			continue
		}
		decls, err := style.ExtractFile(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		input.Declarations = append(input.Declarations, decls...)
	}

	engine, err := style.NewEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := engine.Evaluate(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	result = style.Apply(cfg, result)

	for _, v := range result.Violations {
		fmt.Printf("\n%s:%d\n", v.File, v.Line)
		fmt.Printf("  %s\n", v.Text)
		fmt.Printf("  ^-- %s\n", v.Message)
	}

	if result.Summary.TotalViolations > 0 {
		fmt.Printf("\nFound %d naming violation(s).\n", result.Summary.TotalViolations)
		os.Exit(1)
	}
	fmt.Println("No naming violations found.")
}
