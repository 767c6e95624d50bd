// Package schemagen implements the schema-generation node: given sample
// documents, the vendor proposes an extraction JSON schema. The endpoint
// shares the extraction request shape but takes no response_format.
package schemagen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/flowkit-plugins/docintel/adapter"
	"github.com/flowkit-plugins/docintel/core/descriptor"
	"github.com/flowkit-plugins/docintel/core/envelope"
	"github.com/flowkit-plugins/docintel/core/item"
	"github.com/flowkit-plugins/docintel/host"
	"github.com/flowkit-plugins/docintel/nodes"
	"github.com/flowkit-plugins/docintel/nodes/docsource"
)

const (
	endpoint = "/v1/information-extraction/schema-generation"

	paramModel        = "model"
	paramInstructions = "instructions"

	returnSchema = "schema"

	defaultModel = "docintel-extract-latest"
)

// Node is the schema-generation capability.
type Node struct{}

func init() { adapter.MustRegister(Node{}) }

func (Node) Descriptor() descriptor.Descriptor {
	fields := []descriptor.Field{
		{
			Name:        paramModel,
			DisplayName: "Model",
			Type:        descriptor.FieldString,
			Default:     defaultModel,
		},
	}
	fields = append(fields, docsource.Fields()...)
	fields = append(fields,
		descriptor.Field{
			Name:        paramInstructions,
			DisplayName: "Instructions",
			Type:        descriptor.FieldString,
			Description: "Optional guidance for the generated schema, e.g. which fields matter",
		},
		nodes.ReturnModeField(returnSchema,
			descriptor.Option{Name: "Full Response", Value: nodes.ReturnModeFull},
			descriptor.Option{Name: "Schema", Value: returnSchema, Description: "The generated JSON schema object"},
		),
	)

	return descriptor.Descriptor{
		Name:        "docintelSchemaGen",
		DisplayName: "Docintel Schema Generator",
		Description: "Generate an extraction schema from sample documents",
		Version:     1,
		Inputs:      []string{"main"},
		Outputs:     []string{"main"},
		Credential:  nodes.Credential,
		Fields:      fields,
	}
}

func (Node) BuildRequest(ctx context.Context, exec host.Execution, itemIndex int) (host.Request, error) {
	ref, err := docsource.Resolve(exec, itemIndex)
	if err != nil {
		return host.Request{}, err
	}

	payload := map[string]any{
		"model": host.StringParameter(exec, paramModel, itemIndex, defaultModel),
		"messages": []map[string]any{
			{"role": "user", "content": []map[string]any{ref.MessagePart()}},
		},
	}
	if instructions := host.StringParameter(exec, paramInstructions, itemIndex, ""); instructions != "" {
		payload["instructions"] = instructions
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return host.Request{}, fmt.Errorf("failed to encode schema-generation body: %w", err)
	}

	return host.Request{Method: http.MethodPost, URL: endpoint, Body: body, JSON: true}, nil
}

func (Node) MapResponse(exec host.Execution, itemIndex int, resp host.Response) (item.Item, error) {
	completion, err := envelope.Parse(resp.Body)
	if err != nil {
		return item.Item{}, err
	}

	if host.StringParameter(exec, nodes.ParamReturnMode, itemIndex, returnSchema) == nodes.ReturnModeFull {
		return item.New(itemIndex, envelope.Raw(resp.Body)), nil
	}

	schema, err := completion.ContentObject()
	if err != nil {
		return item.Item{}, fmt.Errorf("generated schema is not valid JSON: %w", err)
	}
	return item.New(itemIndex, map[string]any{"schema": schema}), nil
}
