// Package pipeline wires extraction, contract validation and
// generation for one input/output pair. A pipeline run is single-pass
// and synchronous: read the whole document, transform, write the whole
// result. Runs share no state, so batch callers can run one pipeline
// per board without pin collisions.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/amelia-cook/simoverlay/internal/config"
	"github.com/amelia-cook/simoverlay/internal/extractor"
	"github.com/amelia-cook/simoverlay/internal/generator"
	"github.com/amelia-cook/simoverlay/internal/validator"
)

var (
	// ErrMissingAliasBlock reports an input with no aliases block,
	// under the "fail" policy.
	ErrMissingAliasBlock = errors.New("no aliases block found")

	// ErrNoAliases reports that zero usable alias assignments
	// remained, in a mode that requires at least one.
	ErrNoAliases = errors.New("no aliases parsed")
)

// Pipeline runs the alias-to-overlay transform. Construct one per
// invocation; Run never mutates the config.
type Pipeline struct {
	Config  *config.Config
	Verbose bool

	// Stderr receives diagnostics; defaults to os.Stderr.
	Stderr *os.File
}

// Result summarizes one transform run.
type Result struct {
	Input        string   `json:"input"`
	Output       string   `json:"output"`
	RecordsFound int      `json:"records_found"`
	Emitted      int      `json:"emitted"`
	LEDs         int      `json:"leds"`
	Buttons      int      `json:"buttons"`
	Misc         int      `json:"misc"`
	Pins         []int    `json:"pins"`
	Aliases      []string `json:"aliases"`
	Warnings     []string `json:"warnings,omitempty"`
}

// New creates a pipeline from a config, falling back to defaults when
// cfg is nil.
func New(cfg *config.Config) *Pipeline {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Pipeline{Config: cfg, Stderr: os.Stderr}
}

// Run transforms inPath into outPath. Every rejected or skipped input
// element produces a diagnostic; nothing is recovered silently. On any
// error the output file is left untouched (output is written once,
// atomically, after generation succeeds).
func (p *Pipeline) Run(inPath, outPath string) (*Result, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", inPath, err)
	}
	document := string(data)

	result := &Result{Input: inPath, Output: outPath}
	opts := p.generatorOptions()

	if !extractor.HasAliasesBlock(document) {
		if p.Config.Overlay.OnMissingBlock == config.MissingBlockFail || opts.Shape == generator.ShapePairs {
			return nil, fmt.Errorf("%s: %w", inPath, ErrMissingAliasBlock)
		}
		p.warnf(result, "%s: no aliases block found, emitting empty overlay", inPath)
	}

	records := extractor.Extract(document)
	if records == nil {
		records = []extractor.AliasRecord{}
	}
	result.RecordsFound = len(records)

	v, err := validator.New()
	if err != nil {
		return nil, fmt.Errorf("creating validator: %w", err)
	}
	if err := v.ValidateRecords(records); err != nil {
		return nil, fmt.Errorf("record contract: %w", err)
	}

	p.warnDuplicates(result, records)
	records = p.applyUnknownPolicy(result, records)

	var output string
	switch opts.Shape {
	case generator.ShapePairs:
		output, err = p.renderPairs(result, opts, records, inPath)
	default:
		output, err = p.renderDocument(result, opts, records)
	}
	if err != nil {
		return nil, err
	}

	if err := writeAtomic(outPath, output); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outPath, err)
	}

	return result, nil
}

// renderDocument emits the nested native_sim overlay.
func (p *Pipeline) renderDocument(result *Result, opts generator.Options, records []extractor.AliasRecord) (string, error) {
	gen := generator.New(opts)
	plan := gen.Plan(records)

	ov, err := validator.NewOverlayValidator()
	if err != nil {
		return "", fmt.Errorf("creating overlay validator: %w", err)
	}
	if err := ov.Validate(overlaySummary(p.Config.Overlay.BasePin, plan)); err != nil {
		return "", fmt.Errorf("overlay contract: %w", err)
	}

	pins := make([]int, 0, len(plan))
	for _, per := range plan {
		pins = append(pins, per.Pin)
	}
	if err := validator.CheckPinRun(p.Config.Overlay.BasePin, pins); err != nil {
		return "", fmt.Errorf("overlay contract: %w", err)
	}

	result.Emitted = len(plan)
	result.Pins = pins
	for _, per := range plan {
		switch per.Class {
		case extractor.ClassLED:
			result.LEDs++
		case extractor.ClassButton:
			result.Buttons++
		default:
			result.Misc++
		}
	}
	for _, r := range records {
		result.Aliases = append(result.Aliases, r.Name)
	}

	return gen.Generate(records).String(), nil
}

// renderPairs emits the fixed-slot flat listing. Zero usable records
// is fatal here: the build system depends on the fixed pin mapping.
func (p *Pipeline) renderPairs(result *Result, opts generator.Options, records []extractor.AliasRecord, inPath string) (string, error) {
	policy := opts.Slots
	if !policy.Fixed() {
		policy = generator.FixedSlots(4, policy.Classes...)
	}

	byClass := make(map[extractor.Class][]string)
	usable := 0
	for _, r := range records {
		if !policy.Tracks(r.Class) {
			p.warnf(result, "alias %s targets %s (class %s), not tracked in fixed-slot mode, skipped", r.Name, r.Target, r.Class)
			continue
		}
		byClass[r.Class] = append(byClass[r.Class], r.Name)
		usable++
	}

	if usable == 0 {
		return "", fmt.Errorf("%s: %w", inPath, ErrNoAliases)
	}

	var b strings.Builder
	for _, class := range policy.Classes {
		names := byClass[class]
		if len(names) > policy.N {
			p.warnf(result, "more than %d %s aliases, keeping the first %d", policy.N, class, policy.N)
		}
		filled := generator.FillSlots(names, policy.N)
		pairs := generator.GeneratePairs(strings.ToUpper(string(class)), filled)
		b.WriteString(generator.RenderPairs(pairs))
		result.Emitted += len(pairs)
		result.Aliases = append(result.Aliases, filled...)
	}
	return b.String(), nil
}

// applyUnknownPolicy handles records whose target matches no known
// class prefix. Both policies diagnose; "drop" removes the record,
// "keep" passes it through untyped (it still consumes a pin).
func (p *Pipeline) applyUnknownPolicy(result *Result, records []extractor.AliasRecord) []extractor.AliasRecord {
	keep := p.Config.Overlay.OnUnknown == config.UnknownKeep

	out := records[:0:0]
	for _, r := range records {
		if r.Class == extractor.ClassUnknown {
			if keep {
				p.warnf(result, "alias %s targets %s: unknown device class, kept untyped", r.Name, r.Target)
			} else {
				p.warnf(result, "alias %s targets %s: unknown device class, dropped", r.Name, r.Target)
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// warnDuplicates flags alias names bound more than once. Both records
// are preserved and both appear in the output; the warning makes the
// conflicting redirects visible downstream.
func (p *Pipeline) warnDuplicates(result *Result, records []extractor.AliasRecord) {
	seen := make(map[string]int)
	for _, r := range records {
		seen[r.Name]++
		if seen[r.Name] == 2 {
			p.warnf(result, "alias %s is defined more than once; all definitions are emitted", r.Name)
		}
	}
}

// generatorOptions resolves the string-typed config modes into the
// generator's option types once per run.
func (p *Pipeline) generatorOptions() generator.Options {
	opts := generator.Options{
		BasePin:    p.Config.Overlay.BasePin,
		Controller: p.Config.Overlay.Controller,
		Polarity:   generator.PolarityByClass,
		Slots:      generator.SlotsUnbounded(),
	}
	if p.Config.Overlay.Polarity == config.PolarityUniform {
		opts.Polarity = generator.PolarityUniform
	}
	if p.Config.Overlay.Shape == config.ShapePairs {
		classes := make([]extractor.Class, 0, len(p.Config.Overlay.SlotClasses))
		for _, c := range p.Config.Overlay.SlotClasses {
			classes = append(classes, extractor.Class(c))
		}
		opts.Shape = generator.ShapePairs
		opts.Slots = generator.FixedSlots(p.Config.Overlay.Slots, classes...)
	}
	return opts
}

func (p *Pipeline) warnf(result *Result, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	result.Warnings = append(result.Warnings, msg)
	stderr := p.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	fmt.Fprintf(stderr, "Warning: %s\n", msg)
}

func overlaySummary(basePin int, plan []generator.Peripheral) map[string]interface{} {
	counts := map[string]int{"leds": 0, "buttons": 0, "misc": 0}
	for _, p := range plan {
		switch p.Class {
		case extractor.ClassLED:
			counts["leds"]++
		case extractor.ClassButton:
			counts["buttons"]++
		default:
			counts["misc"]++
		}
	}
	if plan == nil {
		plan = []generator.Peripheral{}
	}
	return map[string]interface{}{
		"base_pin":    basePin,
		"peripherals": plan,
		"counts":      counts,
	}
}

// writeAtomic writes content to path via a temp file and rename, so a
// failed run never leaves a partial output file in place.
func writeAtomic(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".simoverlay-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
