package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amelia-cook/simoverlay/internal/config"
)

func writeInput(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "board.overlay")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func runPipeline(t *testing.T, cfg *config.Config, content string) (*Result, string, error) {
	t.Helper()
	dir := t.TempDir()
	inPath := writeInput(t, dir, content)
	outPath := filepath.Join(dir, "native_sim.overlay")

	result, err := New(cfg).Run(inPath, outPath)
	if err != nil {
		return nil, outPath, err
	}

	output, readErr := os.ReadFile(outPath)
	if readErr != nil {
		t.Fatalf("read output: %v", readErr)
	}
	return result, string(output), nil
}

func TestRunLEDAndButton(t *testing.T) {
	result, output, err := runPipeline(t, nil, `/ {
	aliases {
		ledtest = &led0;
		btn = &button3;
	};
};`)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	for _, want := range []string{
		"ledtest = &sim_ledtest;",
		"btn = &sim_btn;",
		"sim_ledtest: led_10 {",
		"gpios = <&gpio0 10 GPIO_ACTIVE_HIGH>;",
		"sim_btn: button_11 {",
		"gpios = <&gpio0 11 GPIO_ACTIVE_LOW>;",
		`label = "SIM_LEDTEST";`,
		`label = "SIM_BTN";`,
		`status = "okay";`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\n%s", want, output)
		}
	}

	if result.RecordsFound != 2 || result.Emitted != 2 {
		t.Errorf("result = %+v, want 2 records in and out", result)
	}
	if result.LEDs != 1 || result.Buttons != 1 {
		t.Errorf("counts = %d leds, %d buttons, want 1/1", result.LEDs, result.Buttons)
	}
	if len(result.Pins) != 2 || result.Pins[0] != 10 || result.Pins[1] != 11 {
		t.Errorf("pins = %v, want [10 11]", result.Pins)
	}
}

func TestRunIdempotent(t *testing.T) {
	document := `aliases {
	a = &led0;
	b = &button0;
};`

	_, first, err := runPipeline(t, nil, document)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	_, second, err := runPipeline(t, nil, document)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first != second {
		t.Error("identical input produced different output")
	}
}

func TestRunMissingBlockEmptyPolicy(t *testing.T) {
	result, output, err := runPipeline(t, nil, "/ {\n\tchosen {\n\t};\n};")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !strings.Contains(output, "aliases {") || !strings.Contains(output, `status = "okay";`) {
		t.Errorf("empty overlay malformed:\n%s", output)
	}
	if strings.Contains(output, "sim_leds") || strings.Contains(output, "sim_buttons") {
		t.Errorf("empty input emitted peripheral containers:\n%s", output)
	}
	if len(result.Warnings) == 0 {
		t.Error("missing block produced no diagnostic")
	}
}

func TestRunMissingBlockFailPolicy(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Overlay.OnMissingBlock = config.MissingBlockFail

	_, _, err := runPipeline(t, cfg, "/ {\n};")
	if !errors.Is(err, ErrMissingAliasBlock) {
		t.Fatalf("err = %v, want ErrMissingAliasBlock", err)
	}
}

// The fixed-slot listing is what the build system's pin map depends
// on, so a missing block is fatal there and no output file may exist.
func TestRunPairsMissingBlockFatal(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Overlay.Shape = config.ShapePairs

	dir := t.TempDir()
	inPath := writeInput(t, dir, "/ {\n};")
	outPath := filepath.Join(dir, "slots.cmake")

	_, err := New(cfg).Run(inPath, outPath)
	if !errors.Is(err, ErrMissingAliasBlock) {
		t.Fatalf("err = %v, want ErrMissingAliasBlock", err)
	}
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("output file written despite fatal error")
	}
}

func TestRunPairsNoUsableAliasesFatal(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Overlay.Shape = config.ShapePairs

	_, _, err := runPipeline(t, cfg, "aliases {\n\tnot an assignment\n};")
	if !errors.Is(err, ErrNoAliases) {
		t.Fatalf("err = %v, want ErrNoAliases", err)
	}
}

func TestRunFiveLEDsDocumentShape(t *testing.T) {
	result, output, err := runPipeline(t, nil, `aliases {
	l1 = &led0;
	l2 = &led1;
	l3 = &led2;
	l4 = &led3;
	l5 = &led4;
};`)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if result.Emitted != 5 {
		t.Errorf("emitted %d peripherals, want all 5", result.Emitted)
	}
	for _, want := range []string{"led_10", "led_11", "led_12", "led_13", "led_14"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing node %s", want)
		}
	}
}

func TestRunFiveLEDsPairsShape(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Overlay.Shape = config.ShapePairs

	result, output, err := runPipeline(t, cfg, `aliases {
	l1 = &led0;
	l2 = &led1;
	l3 = &led2;
	l4 = &led3;
	l5 = &led4;
};`)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := "set(LED1 l1)\nset(LED2 l2)\nset(LED3 l3)\nset(LED4 l4)\n"
	if output != want {
		t.Errorf("pairs output = %q, want %q", output, want)
	}
	if len(result.Warnings) == 0 {
		t.Error("truncation produced no diagnostic")
	}
}

func TestRunPairsPadsShortBoard(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Overlay.Shape = config.ShapePairs

	_, output, err := runPipeline(t, cfg, "aliases {\n\theartbeat = &led0;\n};")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := "set(LED1 heartbeat)\nset(LED2 unused2)\nset(LED3 unused3)\nset(LED4 unused4)\n"
	if output != want {
		t.Errorf("pairs output = %q, want %q", output, want)
	}
}

func TestRunUnknownClassDropped(t *testing.T) {
	result, output, err := runPipeline(t, nil, `aliases {
	ok = &led0;
	mystery = &foo0;
};`)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if strings.Contains(output, "mystery") {
		t.Errorf("dropped alias still present in output:\n%s", output)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "foo0") && strings.Contains(w, "mystery") {
			found = true
		}
	}
	if !found {
		t.Errorf("no diagnostic naming the unknown target, warnings = %v", result.Warnings)
	}
}

func TestRunUnknownClassKept(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Overlay.OnUnknown = config.UnknownKeep

	result, output, err := runPipeline(t, cfg, `aliases {
	ok = &led0;
	mystery = &foo0;
};`)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !strings.Contains(output, "sim_mystery: misc_11 {") {
		t.Errorf("kept unknown alias missing from output:\n%s", output)
	}
	if len(result.Warnings) == 0 {
		t.Error("kept unknown produced no diagnostic")
	}
	if result.Misc != 1 {
		t.Errorf("misc count = %d, want 1", result.Misc)
	}
}

func TestRunDuplicateAliasesPreserved(t *testing.T) {
	result, output, err := runPipeline(t, nil, `aliases {
	x = &led0;
	x = &led1;
};`)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if got := strings.Count(output, "x = &sim_x;"); got != 2 {
		t.Errorf("redirect emitted %d times, want 2 (both definitions kept)", got)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "x") && strings.Contains(w, "more than once") {
			found = true
		}
	}
	if !found {
		t.Errorf("no duplicate diagnostic, warnings = %v", result.Warnings)
	}
}

func TestRunMissingInputFile(t *testing.T) {
	dir := t.TempDir()
	_, err := New(nil).Run(filepath.Join(dir, "nope.overlay"), filepath.Join(dir, "out.overlay"))
	if err == nil {
		t.Fatal("Run() on missing input: want error, got nil")
	}
	if !strings.Contains(err.Error(), "nope.overlay") {
		t.Errorf("error does not name the failing path: %v", err)
	}
}
