package facts

import (
	"encoding/json"
	"testing"

	"github.com/amelia-cook/simoverlay/internal/extractor"
	"github.com/amelia-cook/simoverlay/internal/generator"
)

func TestBuildTables(t *testing.T) {
	records := []extractor.AliasRecord{
		{Name: "ledtest", Target: "led0", Class: extractor.ClassLED, Line: 3},
		{Name: "btn", Target: "button3", Class: extractor.ClassButton, Line: 4},
	}

	gen := generator.New(generator.DefaultOptions())
	tables := BuildTables(records, gen.Plan(records))

	if len(tables.Aliases) != 2 {
		t.Fatalf("got %d alias rows, want 2", len(tables.Aliases))
	}
	if tables.Aliases[0].Name != "ledtest" || tables.Aliases[0].Class != "led" {
		t.Errorf("alias row 0 = %+v", tables.Aliases[0])
	}

	if len(tables.Peripherals) != 2 {
		t.Fatalf("got %d peripheral rows, want 2", len(tables.Peripherals))
	}
	if tables.Peripherals[0].Pin != 10 || tables.Peripherals[0].Container != "sim_leds" {
		t.Errorf("peripheral row 0 = %+v", tables.Peripherals[0])
	}
	if tables.Peripherals[1].Pin != 11 || !tables.Peripherals[1].ActiveLow {
		t.Errorf("peripheral row 1 = %+v", tables.Peripherals[1])
	}
}

// Empty tables serialize as empty arrays, not null, so downstream JSON
// consumers can index unconditionally.
func TestBuildTablesEmptyJSON(t *testing.T) {
	tables := BuildTables(nil, nil)

	data, err := json.Marshal(tables)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"aliases":[],"peripherals":[]}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}
