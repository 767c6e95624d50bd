package schemagen_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/flowkit-plugins/docintel/core/item"
	"github.com/flowkit-plugins/docintel/host"
	"github.com/flowkit-plugins/docintel/nodes/schemagen"
)

func schemagenExec(params map[string]any) host.Execution {
	merged := map[string]any{
		"inputType":   "url",
		"documentUrl": "https://example.com/sample.pdf",
	}
	for k, v := range params {
		merged[k] = v
	}
	return host.NewLocal([]item.Item{{JSON: map[string]any{}}}, host.WithParameters(merged))
}

func TestBuildRequest(t *testing.T) {
	req, err := schemagen.Node{}.BuildRequest(context.Background(), schemagenExec(map[string]any{
		"instructions": "focus on line items",
	}), 0)
	if err != nil {
		t.Fatalf("BuildRequest() failed: %v", err)
	}
	if req.Method != http.MethodPost || req.URL != "/v1/information-extraction/schema-generation" {
		t.Errorf("got %s %s, want the schema-generation endpoint", req.Method, req.URL)
	}

	var body map[string]any
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["instructions"] != "focus on line items" {
		t.Errorf("got %v, want instructions forwarded", body["instructions"])
	}
}

func TestBuildRequest_OmitsEmptyInstructions(t *testing.T) {
	req, err := schemagen.Node{}.BuildRequest(context.Background(), schemagenExec(nil), 0)
	if err != nil {
		t.Fatalf("BuildRequest() failed: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if _, ok := body["instructions"]; ok {
		t.Errorf("got %v, want no instructions key", body)
	}
}

func TestMapResponse_SchemaMode(t *testing.T) {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{
				"message": map[string]any{
					"role":    "assistant",
					"content": `{"type": "object", "properties": {"total": {"type": "number"}}}`,
				},
				"finish_reason": "stop",
			},
		},
	})

	out, err := schemagen.Node{}.MapResponse(schemagenExec(nil), 0, host.Response{StatusCode: 200, Body: body})
	if err != nil {
		t.Fatalf("MapResponse() failed: %v", err)
	}

	schema, _ := out.JSON["schema"].(map[string]any)
	if schema["type"] != "object" {
		t.Errorf("got %v, want the generated schema object", out.JSON)
	}
}

func TestMapResponse_InvalidSchemaContent(t *testing.T) {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": "not a schema"}},
		},
	})

	if _, err := (schemagen.Node{}).MapResponse(schemagenExec(nil), 0, host.Response{StatusCode: 200, Body: body}); err == nil {
		t.Error("MapResponse() succeeded on non-JSON schema content, want error")
	}
}
