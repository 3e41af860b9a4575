// Package generator synthesizes a native_sim overlay from classified
// alias records: an alias-redirect block, one peripheral container per
// device class, and a trailer enabling the simulated GPIO controller.
package generator

import (
	"strconv"
	"strings"

	"github.com/amelia-cook/simoverlay/internal/extractor"
)

// Peripheral is one planned simulated device node: the resolved name,
// container, pin and polarity of a record before rendering.
type Peripheral struct {
	Alias     string          `json:"alias"`
	Node      string          `json:"node"`
	Label     string          `json:"label"`
	Class     extractor.Class `json:"class"`
	Pin       int             `json:"pin"`
	ActiveLow bool            `json:"active_low"`
	Container string          `json:"container"`
}

// Generator renders alias records into overlay output. Construct one
// per invocation; it holds no state beyond its options.
type Generator struct {
	opts Options
}

// New creates a Generator. An empty controller name falls back to the
// default simulated controller.
func New(opts Options) *Generator {
	if opts.Controller == "" {
		opts.Controller = "gpio0"
	}
	return &Generator{opts: opts}
}

// classGroup fixes the emission order and naming of each container.
// LEDs are always numbered before buttons, regardless of declaration
// order in the source; untyped records come last.
type classGroup struct {
	class      extractor.Class
	container  string
	compatible string
	childStem  string
}

var classGroups = []classGroup{
	{extractor.ClassLED, "sim_leds", "gpio-leds", "led"},
	{extractor.ClassButton, "sim_buttons", "gpio-keys", "button"},
	{extractor.ClassUnknown, "sim_misc", "gpio-misc", "misc"},
}

// Plan computes the grouped, pin-assigned emission order without
// rendering text. Pins come from a single counter shared across all
// groups, so they form one contiguous run starting at the base pin.
func (g *Generator) Plan(records []extractor.AliasRecord) []Peripheral {
	pins := NewPinCounter(g.opts.BasePin)

	var plan []Peripheral
	for _, grp := range classGroups {
		for _, r := range records {
			if r.Class != grp.class {
				continue
			}
			pin := pins.Next()
			plan = append(plan, Peripheral{
				Alias:     r.Name,
				Node:      nodeName(grp.childStem, pin),
				Label:     "SIM_" + strings.ToUpper(r.Name),
				Class:     r.Class,
				Pin:       pin,
				ActiveLow: g.activeLow(r.Class),
				Container: grp.container,
			})
		}
	}
	return plan
}

func (g *Generator) activeLow(c extractor.Class) bool {
	return g.opts.Polarity == PolarityByClass && c == extractor.ClassButton
}

// Generate emits the full overlay document for the given records.
// The aliases sub-block keeps input order; peripheral containers are
// grouped by class in Plan order. Empty input still yields a
// well-formed document: root block, empty aliases, enable trailer.
func (g *Generator) Generate(records []extractor.AliasRecord) *Document {
	plan := g.Plan(records)

	doc := &Document{}
	doc.Append("/ {")
	doc.Append("    aliases {")
	for _, r := range records {
		doc.Appendf("        %s = &sim_%s;", r.Name, r.Name)
	}
	doc.Append("    };")

	for _, grp := range classGroups {
		members := containerPlan(plan, grp.container)
		if len(members) == 0 {
			continue
		}
		doc.Append("")
		doc.Appendf("    %s {", grp.container)
		doc.Appendf("        compatible = \"%s\";", grp.compatible)
		doc.Append("")
		for _, p := range members {
			doc.Appendf("        sim_%s: %s {", p.Alias, p.Node)
			doc.Appendf("            gpios = <&%s %d %s>;", g.opts.Controller, p.Pin, polarityFlag(p.ActiveLow))
			doc.Appendf("            label = \"%s\";", p.Label)
			doc.Append("        };")
			doc.Append("")
		}
		doc.Append("    };")
	}

	doc.Append("};")
	doc.Append("")
	doc.Appendf("&%s {", g.opts.Controller)
	doc.Append("    status = \"okay\";")
	doc.Append("};")
	return doc
}

func containerPlan(plan []Peripheral, container string) []Peripheral {
	var out []Peripheral
	for _, p := range plan {
		if p.Container == container {
			out = append(out, p)
		}
	}
	return out
}

func nodeName(stem string, pin int) string {
	return stem + "_" + strconv.Itoa(pin)
}

func polarityFlag(activeLow bool) string {
	if activeLow {
		return "GPIO_ACTIVE_LOW"
	}
	return "GPIO_ACTIVE_HIGH"
}
