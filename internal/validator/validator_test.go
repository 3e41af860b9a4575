package validator

import (
	"testing"
)

// TestRecordContractEnforcement exercises the CUE contract on
// extracted records: present fields must match the schema exactly.
func TestRecordContractEnforcement(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}

	tests := []struct {
		name    string
		records []interface{}
		wantErr bool
	}{
		{
			name:    "empty_records",
			records: []interface{}{},
			wantErr: false,
		},
		{
			name: "valid_records",
			records: []interface{}{
				map[string]interface{}{
					"name": "ledtest", "target": "led0", "class": "led", "line": 3,
				},
				map[string]interface{}{
					"name": "btn", "target": "button3", "class": "button", "line": 4,
				},
			},
			wantErr: false,
		},
		{
			name: "invalid_class",
			records: []interface{}{
				map[string]interface{}{
					"name": "x", "target": "led0", "class": "blinkenlight", "line": 1,
				},
			},
			wantErr: true, // not in the class enum
		},
		{
			name: "empty_target",
			records: []interface{}{
				map[string]interface{}{
					"name": "x", "target": "", "class": "led", "line": 1,
				},
			},
			wantErr: true,
		},
		{
			name: "name_not_an_identifier",
			records: []interface{}{
				map[string]interface{}{
					"name": "0bad", "target": "led0", "class": "led", "line": 1,
				},
			},
			wantErr: true,
		},
		{
			name: "line_below_one",
			records: []interface{}{
				map[string]interface{}{
					"name": "x", "target": "led0", "class": "led", "line": 0,
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRecords(tt.records)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRecords() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOverlayContract(t *testing.T) {
	v, err := NewOverlayValidator()
	if err != nil {
		t.Fatalf("Failed to create overlay validator: %v", err)
	}

	peripheral := func(label string, pin int) map[string]interface{} {
		return map[string]interface{}{
			"alias":      "ledtest",
			"node":       "led_10",
			"label":      label,
			"class":      "led",
			"pin":        pin,
			"active_low": false,
			"container":  "sim_leds",
		}
	}

	tests := []struct {
		name    string
		summary map[string]interface{}
		wantErr bool
	}{
		{
			name: "valid_summary",
			summary: map[string]interface{}{
				"base_pin":    10,
				"peripherals": []interface{}{peripheral("SIM_LEDTEST", 10)},
				"counts":      map[string]interface{}{"leds": 1, "buttons": 0, "misc": 0},
			},
			wantErr: false,
		},
		{
			name: "label_missing_prefix",
			summary: map[string]interface{}{
				"base_pin":    10,
				"peripherals": []interface{}{peripheral("LEDTEST", 10)},
				"counts":      map[string]interface{}{"leds": 1, "buttons": 0, "misc": 0},
			},
			wantErr: true,
		},
		{
			name: "negative_pin",
			summary: map[string]interface{}{
				"base_pin":    10,
				"peripherals": []interface{}{peripheral("SIM_LEDTEST", -1)},
				"counts":      map[string]interface{}{"leds": 1, "buttons": 0, "misc": 0},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.summary)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckPinRun(t *testing.T) {
	if err := CheckPinRun(10, []int{10, 11, 12}); err != nil {
		t.Errorf("contiguous run rejected: %v", err)
	}
	if err := CheckPinRun(10, nil); err != nil {
		t.Errorf("empty run rejected: %v", err)
	}
	if err := CheckPinRun(10, []int{10, 12}); err == nil {
		t.Error("gap in pin run not detected")
	}
	if err := CheckPinRun(10, []int{10, 10}); err == nil {
		t.Error("duplicate pin not detected")
	}
	if err := CheckPinRun(10, []int{11, 12}); err == nil {
		t.Error("wrong base pin not detected")
	}
}

func TestValidationErrorsNamesEveryFailure(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}

	records := []interface{}{
		map[string]interface{}{
			"name": "0bad", "target": "", "class": "led", "line": 1,
		},
	}

	errs := v.ValidationErrors(records)
	if len(errs) == 0 {
		t.Fatal("ValidationErrors() returned nothing for invalid records")
	}

	if valid := v.ValidationErrors([]interface{}{}); valid != nil {
		t.Errorf("ValidationErrors() = %v for valid records, want nil", valid)
	}
}
