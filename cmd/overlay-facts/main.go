// overlay-facts extracts the alias records from a board overlay and
// prints them, together with the planned simulated peripherals, as
// JSON fact tables for build tooling.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/amelia-cook/simoverlay/internal/config"
	"github.com/amelia-cook/simoverlay/internal/extractor"
	"github.com/amelia-cook/simoverlay/internal/facts"
	"github.com/amelia-cook/simoverlay/internal/generator"
)

func main() {
	output := flag.String("output", "", "write facts JSON to file (default: stdout)")
	flag.StringVar(output, "o", "", "write facts JSON to file (shorthand)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: overlay-facts [--output file] <input_overlay>")
		os.Exit(2)
	}

	inPath := args[0]
	cfg, err := config.Load(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	records, err := extractor.ExtractFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gen := generator.New(generator.Options{
		BasePin:    cfg.Overlay.BasePin,
		Controller: cfg.Overlay.Controller,
	})
	tables := facts.BuildTables(records, gen.Plan(records))

	if *output != "" {
		if err := writeJSON(*output, tables); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing facts: %v\n", err)
			os.Exit(1)
		}
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tables); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding facts: %v\n", err)
		os.Exit(1)
	}
}

func writeJSON(path string, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
