// Package validator is the contract guard between extraction and
// generation. Extracted records and the generator's structural plan
// are checked against embedded CUE schemas; a mismatch crashes the
// pipeline immediately instead of letting it emit a structurally wrong
// overlay that the build system would only reject much later.
package validator

import (
	"embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed records_schema.cue
var recordsSchemaFS embed.FS

//go:embed overlay_schema.cue
var overlaySchemaFS embed.FS

// Validator validates extracted alias records against the CUE schema
// contract.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// New creates a Validator with the embedded records schema.
func New() (*Validator, error) {
	ctx := cuecontext.New()

	schemaBytes, err := recordsSchemaFS.ReadFile("records_schema.cue")
	if err != nil {
		return nil, fmt.Errorf("loading embedded schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaBytes)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// ValidateRecords checks that the extracted records conform to the
// #Records definition. Returns nil if valid, or a detailed error.
func (v *Validator) ValidateRecords(records interface{}) error {
	return unify(v.ctx, v.schema, "#Records", map[string]interface{}{"records": records})
}

// ValidationErrors returns every individual schema error for the given
// records, for diagnostics that name each offending field.
func (v *Validator) ValidationErrors(records interface{}) []string {
	err := v.ValidateRecords(records)
	if err == nil {
		return nil
	}

	var errs []string
	for _, e := range errors.Errors(err) {
		errs = append(errs, e.Error())
	}
	return errs
}

// OverlayValidator validates the generator's structural plan against
// the overlay schema, plus the pin-run invariant CUE cannot express.
type OverlayValidator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewOverlayValidator creates a validator for generated overlays.
func NewOverlayValidator() (*OverlayValidator, error) {
	ctx := cuecontext.New()

	schemaBytes, err := overlaySchemaFS.ReadFile("overlay_schema.cue")
	if err != nil {
		return nil, fmt.Errorf("loading overlay schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaBytes)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling overlay schema: %w", schema.Err())
	}

	return &OverlayValidator{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// Validate checks a structural summary (base pin, planned peripherals,
// per-class counts) against #Overlay.
func (v *OverlayValidator) Validate(summary interface{}) error {
	return unify(v.ctx, v.schema, "#Overlay", summary)
}

// CheckPinRun verifies that pins form a contiguous ascending run
// starting at basePin with no duplicates. The pin sequence is assigned
// by a single counter, so any gap or repeat means the generator's plan
// is broken.
func CheckPinRun(basePin int, pins []int) error {
	for i, pin := range pins {
		want := basePin + i
		if pin != want {
			return fmt.Errorf("pin run broken at index %d: got %d, want %d", i, pin, want)
		}
	}
	return nil
}

func unify(ctx *cue.Context, schema cue.Value, defPath string, data interface{}) error {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling data to JSON: %w", err)
	}

	dataValue := ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return fmt.Errorf("compiling data as CUE: %w", dataValue.Err())
	}

	def := schema.LookupPath(cue.ParsePath(defPath))
	if def.Err() != nil {
		return fmt.Errorf("looking up %s definition: %w", defPath, def.Err())
	}

	unified := def.Unify(dataValue)
	if err := unified.Validate(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}
