// Package config loads the JSON configuration shared by simoverlay and
// cstyle. Everything has a default; a missing config file is never an
// error.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Shape values for OverlayConfig.Shape.
const (
	ShapeDocument = "document"
	ShapePairs    = "pairs"
)

// Polarity values for OverlayConfig.Polarity.
const (
	PolarityByClass = "by-class"
	PolarityUniform = "uniform"
)

// Policy values for OverlayConfig.OnUnknown.
const (
	UnknownDrop = "drop"
	UnknownKeep = "keep"
)

// Policy values for OverlayConfig.OnMissingBlock.
const (
	MissingBlockEmpty = "empty"
	MissingBlockFail  = "fail"
)

// Config is the top-level configuration.
type Config struct {
	// Overlay configures the alias-to-overlay transform.
	Overlay OverlayConfig `json:"overlay,omitempty"`

	// Style configures the C naming linter.
	Style StyleConfig `json:"style,omitempty"`
}

// OverlayConfig selects the transform's pipeline variant. Slot-count
// policy and output shape are independent options resolved once when
// the pipeline is constructed.
type OverlayConfig struct {
	// BasePin is the first simulated GPIO pin number.
	BasePin int `json:"basePin,omitempty"`

	// Slots is the per-class slot count; 0 means unbounded.
	Slots int `json:"slots,omitempty"`

	// SlotClasses names the classes tracked in fixed-slot mode.
	// Classes not listed are reported as skipped, never silently
	// dropped.
	SlotClasses []string `json:"slotClasses,omitempty"`

	// Shape is "document" (nested overlay) or "pairs" (flat listing).
	Shape string `json:"shape,omitempty"`

	// Polarity is "by-class" (buttons active-low) or "uniform".
	Polarity string `json:"polarity,omitempty"`

	// OnUnknown is "drop" or "keep" for unclassified targets. Both
	// print a diagnostic naming the alias and target.
	OnUnknown string `json:"onUnknown,omitempty"`

	// OnMissingBlock is "empty" or "fail" when the input has no
	// aliases block. The pairs shape is always fatal on zero usable
	// records regardless, because the build system depends on the
	// fixed pin map.
	OnMissingBlock string `json:"onMissingBlock,omitempty"`

	// Controller is the simulated GPIO controller phandle.
	Controller string `json:"controller,omitempty"`
}

// StyleConfig configures the C naming linter.
type StyleConfig struct {
	// Rules maps rule names to severity: "off", "warning", "error".
	Rules map[string]string `json:"rules,omitempty"`

	// IgnorePatterns is a list of file patterns to skip entirely.
	IgnorePatterns []string `json:"ignorePatterns,omitempty"`
}

// DefaultConfig matches the legacy pipeline: unbounded nested-document
// output, pins from 10 on gpio0, unknown targets dropped with a
// warning, missing block tolerated, LEDs tracked in fixed-slot mode.
func DefaultConfig() *Config {
	return &Config{
		Overlay: OverlayConfig{
			BasePin:        10,
			Slots:          0,
			SlotClasses:    []string{"led"},
			Shape:          ShapeDocument,
			Polarity:       PolarityByClass,
			OnUnknown:      UnknownDrop,
			OnMissingBlock: MissingBlockEmpty,
			Controller:     "gpio0",
		},
		Style: StyleConfig{
			Rules:          map[string]string{},
			IgnorePatterns: []string{},
		},
	}
}

// Load finds and loads the configuration file.
// Search order:
//  1. ./simoverlay.json (current working directory)
//  2. ./.simoverlay.json (current working directory)
//  3. <rootPath>/simoverlay.json (if rootPath is a different directory)
//  4. ~/.config/simoverlay/config.json
//
// Returns DefaultConfig if no config file is found.
func Load(rootPath string) (*Config, error) {
	cwd, _ := os.Getwd()

	searchPaths := []string{
		filepath.Join(cwd, "simoverlay.json"),
		filepath.Join(cwd, ".simoverlay.json"),
	}

	if info, err := os.Stat(rootPath); err == nil && info.IsDir() {
		absRoot, _ := filepath.Abs(rootPath)
		if absRoot != cwd {
			searchPaths = append(searchPaths,
				filepath.Join(rootPath, "simoverlay.json"),
				filepath.Join(rootPath, ".simoverlay.json"),
			)
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, ".config", "simoverlay", "config.json"))
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	return DefaultConfig(), nil
}

// LoadFile loads configuration from a specific file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// applyDefaults fills in missing configuration with defaults.
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Overlay.BasePin == 0 {
		c.Overlay.BasePin = def.Overlay.BasePin
	}
	if len(c.Overlay.SlotClasses) == 0 {
		c.Overlay.SlotClasses = def.Overlay.SlotClasses
	}
	if c.Overlay.Shape == "" {
		c.Overlay.Shape = def.Overlay.Shape
	}
	if c.Overlay.Polarity == "" {
		c.Overlay.Polarity = def.Overlay.Polarity
	}
	if c.Overlay.OnUnknown == "" {
		c.Overlay.OnUnknown = def.Overlay.OnUnknown
	}
	if c.Overlay.OnMissingBlock == "" {
		c.Overlay.OnMissingBlock = def.Overlay.OnMissingBlock
	}
	if c.Overlay.Controller == "" {
		c.Overlay.Controller = def.Overlay.Controller
	}

	if c.Style.Rules == nil {
		c.Style.Rules = make(map[string]string)
	}
}

// Validate rejects unknown mode strings early, before the pipeline is
// constructed around them.
func (c *Config) Validate() error {
	switch c.Overlay.Shape {
	case ShapeDocument, ShapePairs:
	default:
		return fmt.Errorf("unknown overlay shape %q", c.Overlay.Shape)
	}
	switch c.Overlay.Polarity {
	case PolarityByClass, PolarityUniform:
	default:
		return fmt.Errorf("unknown polarity mode %q", c.Overlay.Polarity)
	}
	switch c.Overlay.OnUnknown {
	case UnknownDrop, UnknownKeep:
	default:
		return fmt.Errorf("unknown onUnknown policy %q", c.Overlay.OnUnknown)
	}
	switch c.Overlay.OnMissingBlock {
	case MissingBlockEmpty, MissingBlockFail:
	default:
		return fmt.Errorf("unknown onMissingBlock policy %q", c.Overlay.OnMissingBlock)
	}
	if c.Overlay.Slots < 0 {
		return fmt.Errorf("slots must be >= 0, got %d", c.Overlay.Slots)
	}
	for rule, severity := range c.Style.Rules {
		switch severity {
		case "off", "warning", "error":
		default:
			return fmt.Errorf("rule %s: unknown severity %q", rule, severity)
		}
	}
	return nil
}

// Save writes the configuration to a file.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetRuleSeverity returns the severity for a rule, or the default if
// not configured.
func (c *Config) GetRuleSeverity(rule string, defaultSeverity string) string {
	if severity, ok := c.Style.Rules[rule]; ok {
		return severity
	}
	return defaultSeverity
}

// IsRuleEnabled returns true if the rule is not set to "off".
func (c *Config) IsRuleEnabled(rule string) bool {
	if severity, ok := c.Style.Rules[rule]; ok {
		return severity != "off"
	}
	return true
}

// ShouldIgnoreFile checks if the linter should skip a file entirely.
func (c *Config) ShouldIgnoreFile(filePath string) bool {
	for _, pattern := range c.Style.IgnorePatterns {
		if matched, _ := filepath.Match(pattern, filePath); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, filepath.Base(filePath)); matched {
			return true
		}
	}
	return false
}
