package host_test

import (
	"strings"
	"testing"

	"github.com/flowkit-plugins/docintel/host"
)

func paramExec(params map[string]any) host.Execution {
	return host.NewLocal(nil, host.WithParameters(params))
}

func TestStringParameter(t *testing.T) {
	exec := paramExec(map[string]any{"model": "docintel-ocr-latest", "count": 3})

	if got := host.StringParameter(exec, "model", 0, "fallback"); got != "docintel-ocr-latest" {
		t.Errorf("got %q, want the set value", got)
	}
	if got := host.StringParameter(exec, "missing", 0, "fallback"); got != "fallback" {
		t.Errorf("got %q, want fallback for missing parameter", got)
	}
	if got := host.StringParameter(exec, "count", 0, "fallback"); got != "fallback" {
		t.Errorf("got %q, want fallback for wrong type", got)
	}
}

func TestBoolParameter(t *testing.T) {
	exec := paramExec(map[string]any{"flag": true})

	if !host.BoolParameter(exec, "flag", 0, false) {
		t.Error("got false, want the set value")
	}
	if !host.BoolParameter(exec, "missing", 0, true) {
		t.Error("got false, want default true for missing parameter")
	}
}

func TestIntParameter(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]any
		want   int
	}{
		{name: "int value", params: map[string]any{"n": 7}, want: 7},
		{name: "json float value", params: map[string]any{"n": float64(7)}, want: 7},
		{name: "missing", params: map[string]any{}, want: 42},
		{name: "wrong type", params: map[string]any{"n": "7"}, want: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := host.IntParameter(paramExec(tt.params), "n", 0, 42); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestObjectParameter(t *testing.T) {
	exec := paramExec(map[string]any{
		"asMap":    map[string]any{"type": "object"},
		"asString": `{"type": "object"}`,
		"broken":   `{"type": `,
		"number":   5,
	})

	for _, name := range []string{"asMap", "asString"} {
		obj, err := host.ObjectParameter(exec, name, 0)
		if err != nil {
			t.Fatalf("ObjectParameter(%s) failed: %v", name, err)
		}
		if obj["type"] != "object" {
			t.Errorf("ObjectParameter(%s) = %v, want type=object", name, obj)
		}
	}

	if obj, err := host.ObjectParameter(exec, "missing", 0); err != nil || len(obj) != 0 {
		t.Errorf("ObjectParameter(missing) = %v, %v; want empty map and no error", obj, err)
	}

	if _, err := host.ObjectParameter(exec, "broken", 0); err == nil {
		t.Error("ObjectParameter(broken) succeeded, want parse error")
	} else if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error %v does not name the parameter", err)
	}

	if _, err := host.ObjectParameter(exec, "number", 0); err == nil {
		t.Error("ObjectParameter(number) succeeded, want type error")
	}
}
