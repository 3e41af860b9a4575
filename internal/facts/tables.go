// Package facts flattens one overlay transform into relational rows
// for build tooling that wants the alias map and pin assignments as
// JSON rather than devicetree text.
package facts

import (
	"github.com/amelia-cook/simoverlay/internal/extractor"
	"github.com/amelia-cook/simoverlay/internal/generator"
)

// Tables is the relational view of one transform. Each slice is a
// relation with flat rows.
type Tables struct {
	Aliases     []AliasRow      `json:"aliases"`
	Peripherals []PeripheralRow `json:"peripherals"`
}

// AliasRow is one alias assignment as extracted from the source.
type AliasRow struct {
	Name   string `json:"name"`
	Target string `json:"target"`
	Class  string `json:"class"`
	Line   int    `json:"line"`
}

// PeripheralRow is one planned simulated device node.
type PeripheralRow struct {
	Node      string `json:"node"`
	Container string `json:"container"`
	Label     string `json:"label"`
	Alias     string `json:"alias"`
	Class     string `json:"class"`
	Pin       int    `json:"pin"`
	ActiveLow bool   `json:"active_low"`
}

// BuildTables converts extracted records and the generator plan into
// the relational model. Rows keep their source order: aliases in
// declaration order, peripherals in emission (pin) order.
func BuildTables(records []extractor.AliasRecord, plan []generator.Peripheral) Tables {
	tables := Tables{
		Aliases:     []AliasRow{},
		Peripherals: []PeripheralRow{},
	}

	for _, r := range records {
		tables.Aliases = append(tables.Aliases, AliasRow{
			Name:   r.Name,
			Target: r.Target,
			Class:  string(r.Class),
			Line:   r.Line,
		})
	}

	for _, p := range plan {
		tables.Peripherals = append(tables.Peripherals, PeripheralRow{
			Node:      p.Node,
			Container: p.Container,
			Label:     p.Label,
			Alias:     p.Alias,
			Class:     string(p.Class),
			Pin:       p.Pin,
			ActiveLow: p.ActiveLow,
		})
	}

	return tables
}
