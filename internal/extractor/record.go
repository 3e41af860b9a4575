package extractor

import "strings"

// Class is the device class derived from an alias target's identifier.
type Class string

const (
	ClassLED     Class = "led"
	ClassButton  Class = "button"
	ClassUnknown Class = "unknown"
)

// ClassifyTarget derives the device class from a target identifier.
// Matching is a case-insensitive prefix test and nothing else; a target
// that matches neither known prefix is ClassUnknown.
func ClassifyTarget(target string) Class {
	t := strings.ToLower(target)
	switch {
	case strings.HasPrefix(t, "led"):
		return ClassLED
	case strings.HasPrefix(t, "button"):
		return ClassButton
	default:
		return ClassUnknown
	}
}

// AliasRecord is one alias assignment parsed from the aliases block.
// Records are plain values; duplicate names in the source are kept as
// separate records, never merged.
type AliasRecord struct {
	Name   string `json:"name"`
	Target string `json:"target"`
	Class  Class  `json:"class"`
	Line   int    `json:"line"`
}
