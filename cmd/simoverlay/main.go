// simoverlay translates a board overlay's aliases block into a
// native_sim overlay declaring simulated GPIO LEDs and buttons, so
// firmware written against led0/button0-style aliases runs unmodified
// on the host simulator.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/amelia-cook/simoverlay/internal/config"
	"github.com/amelia-cook/simoverlay/internal/pipeline"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	case "init":
		runInit()
		return
	}

	verbose := false
	jsonOut := false
	configPath := ""

parse:
	for len(args) > 0 {
		switch args[0] {
		case "-v", "--verbose":
			verbose = true
			args = args[1:]
		case "--json":
			jsonOut = true
			args = args[1:]
		case "-c", "--config":
			if len(args) < 2 {
				printUsage()
				os.Exit(2)
			}
			configPath = args[1]
			args = args[2:]
		default:
			if strings.HasPrefix(args[0], "-") {
				fmt.Fprintf(os.Stderr, "Unknown option: %s\n", args[0])
				printUsage()
				os.Exit(2)
			}
			break parse
		}
	}

	if len(args) != 2 {
		printUsage()
		os.Exit(2)
	}
	inPath, outPath := args[0], args[1]

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config %s: %v\n", configPath, err)
			os.Exit(1)
		}
	} else {
		cfg, err = config.Load(inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load config: %v (using defaults)\n", err)
			cfg = config.DefaultConfig()
		}
	}

	p := pipeline.New(cfg)
	p.Verbose = verbose

	result, err := p.Run(inPath, outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if verbose {
		fmt.Printf("Records found: %d\n", result.RecordsFound)
		fmt.Printf("Peripherals emitted: %d (%d leds, %d buttons, %d misc)\n",
			result.Emitted, result.LEDs, result.Buttons, result.Misc)
		if len(result.Pins) > 0 {
			fmt.Printf("Pins: %d..%d\n", result.Pins[0], result.Pins[len(result.Pins)-1])
		}
	}
	fmt.Printf("Generated native_sim overlay with aliases: %s\n", strings.Join(result.Aliases, ", "))
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: simoverlay [options] <input_overlay> <output_overlay>

Commands:
  init              Create a simoverlay.json configuration file

Options:
  -v, --verbose     Enable verbose output
  -c, --config      Specify config file: simoverlay -c config.json <in> <out>
  --json            Print the run result as JSON to stdout
  -h, --help        Show this help message

Configuration:
  simoverlay looks for configuration in:
    1. ./simoverlay.json
    2. ./.simoverlay.json
    3. ~/.config/simoverlay/config.json

  Run 'simoverlay init' to create a default configuration file.`)
}

func runInit() {
	configPath := "simoverlay.json"

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config file %s already exists. Overwrite? [y/N]: ", configPath)
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return
		}
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created %s\n", configPath)
	fmt.Println("\nEdit this file to configure:")
	fmt.Println("  - Output shape (nested overlay vs. fixed-slot listing)")
	fmt.Println("  - Base pin and slot policy")
	fmt.Println("  - Unknown-class and missing-block handling")
}
