package generator

import "github.com/amelia-cook/simoverlay/internal/extractor"

// OutputShape selects how a transform renders its result.
type OutputShape int

const (
	// ShapeDocument emits a nested native_sim overlay document.
	ShapeDocument OutputShape = iota

	// ShapePairs emits the flat set(KEY value) listing the legacy
	// build wrapper consumes.
	ShapePairs
)

// SlotPolicy bounds how many records per class are emitted.
// The zero value is unbounded: exactly as many peripherals as records.
type SlotPolicy struct {
	// N is the slot count per tracked class; 0 means unbounded.
	N int

	// Classes are the device classes tracked in fixed-slot mode.
	// Records of untracked classes are reported by the caller, not
	// silently discarded here.
	Classes []extractor.Class
}

// SlotsUnbounded emits one peripheral per record.
func SlotsUnbounded() SlotPolicy { return SlotPolicy{} }

// FixedSlots reserves exactly n slots per tracked class, truncating
// extra records and padding short classes with placeholders.
func FixedSlots(n int, classes ...extractor.Class) SlotPolicy {
	if len(classes) == 0 {
		classes = []extractor.Class{extractor.ClassLED}
	}
	return SlotPolicy{N: n, Classes: classes}
}

// Fixed reports whether the policy is a fixed-slot policy.
func (p SlotPolicy) Fixed() bool { return p.N > 0 }

// Tracks reports whether the policy tracks the given class.
func (p SlotPolicy) Tracks(c extractor.Class) bool {
	for _, tc := range p.Classes {
		if tc == c {
			return true
		}
	}
	return false
}

// PolarityMode selects the active level of generated peripherals.
type PolarityMode int

const (
	// PolarityByClass wires LEDs active-high and buttons active-low.
	PolarityByClass PolarityMode = iota

	// PolarityUniform wires everything active-high.
	PolarityUniform
)

// Options configure a Generator. They are resolved once at
// construction; a Generator never mutates them afterwards.
type Options struct {
	// BasePin is the first simulated GPIO pin number.
	BasePin int

	// Slots is the per-class slot policy for the pairs shape.
	Slots SlotPolicy

	// Shape selects the output rendering.
	Shape OutputShape

	// Polarity selects the active level per class.
	Polarity PolarityMode

	// Controller is the phandle of the simulated GPIO controller.
	Controller string
}

// DefaultOptions matches the legacy pipeline: pins from 10 on gpio0,
// unbounded nested-document output, buttons active-low.
func DefaultOptions() Options {
	return Options{
		BasePin:    10,
		Controller: "gpio0",
		Polarity:   PolarityByClass,
	}
}
