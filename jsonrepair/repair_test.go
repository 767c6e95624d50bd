package jsonrepair_test

import (
	"encoding/json"
	"testing"

	"github.com/flowkit-plugins/docintel/jsonrepair"
)

func TestRepair_ValidInputUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "object", input: `{"a": 1, "b": [2, 3]}`},
		{name: "array", input: `[1, 2, 3]`},
		{name: "nested with odd spacing", input: "{\n  \"a\" : {\n    \"b\" : 2\n  }\n}"},
		{name: "string containing braces", input: `{"text": "}}}"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jsonrepair.Repair(tt.input); got != tt.input {
				t.Errorf("Repair() = %q, want input unchanged", got)
			}
		})
	}
}

func TestRepair_MissingClosers(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "one missing brace", input: `{"a": {"b": 1}`},
		{name: "two missing braces", input: `{"a": {"b": {"c": 1}`},
		{name: "missing bracket then brace", input: `{"a": [1, 2`},
		{name: "trailing whitespace before cut", input: `{"a": [1, 2]` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := jsonrepair.Repair(tt.input)
			if !json.Valid([]byte(got)) {
				t.Errorf("Repair() = %q, still not valid JSON", got)
			}
		})
	}
}

func TestRepair_SurplusClosers(t *testing.T) {
	got := jsonrepair.Repair(`{"a": 1}}`)
	if !json.Valid([]byte(got)) {
		t.Fatalf("Repair() = %q, still not valid JSON", got)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded["a"] != float64(1) {
		t.Errorf("got a = %v, want 1", decoded["a"])
	}
}

func TestRepair_InvisibleCharacters(t *testing.T) {
	input := "\uFEFF{\"a\":\u200B 1}\r\n"
	got := jsonrepair.Repair(input)
	if !json.Valid([]byte(got)) {
		t.Fatalf("Repair() = %q, still not valid JSON", got)
	}
}

func TestRepair_OverclosedProperties(t *testing.T) {
	// The observed malformation: one surplus brace directly after a flat
	// properties object.
	input := `{"type": "object", "properties": {"name": "string"}}, "required": ["name"]}`
	got := jsonrepair.Repair(input)
	if !json.Valid([]byte(got)) {
		t.Fatalf("Repair() = %q, still not valid JSON", got)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if _, ok := decoded["properties"]; !ok {
		t.Errorf("repaired JSON lost the properties key: %q", got)
	}
}

func TestRepair_UnrepairableReturnsOriginal(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "plain prose", input: "this is not json at all"},
		{name: "broken mid-string", input: `{"a": "unterminated`},
		{name: "empty", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The contract is the original string, not a further-mutated
			// intermediate.
			if got := jsonrepair.Repair(tt.input); got != tt.input {
				t.Errorf("Repair() = %q, want original input %q", got, tt.input)
			}
		})
	}
}
