// Package extract implements the information-extraction node. The vendor
// endpoint takes a chat-style request with a document reference and a
// response_format JSON schema, and answers with a completion envelope whose
// content is the structured extraction.
package extract

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
	"github.com/flowkit-plugins/docintel/jsonrepair"
	"github.com/flowkit-plugins/docintel/nodes"
	"github.com/flowkit-plugins/docintel/nodes/docsource"
)

const (
	endpoint = "/v1/information-extraction"

	paramModel          = "model"
	paramSchemaSource   = "schemaSource"
	paramJSONSchema     = "jsonSchema"
	paramResponseFormat = "responseFormat"

	sourceSchema         = "schema"
	sourceResponseFormat = "responseFormat"

	returnAttributes = "attributes"
	returnText       = "text"

	defaultModel = "docintel-extract-latest"
)

// Node is the information-extraction capability.
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
			Name:        paramSchemaSource,
			DisplayName: "Schema Source",
			Type:        descriptor.FieldOptions,
			Default:     sourceSchema,
			Options: []descriptor.Option{
				{Name: "JSON Schema", Value: sourceSchema, Description: "Provide the extraction schema; the node wraps it into a response format"},
				{Name: "Full Response Format", Value: sourceResponseFormat, Description: "Provide the complete response_format object"},
			},
		},
		descriptor.Field{
			Name:        paramJSONSchema,
			DisplayName: "JSON Schema",
			Type:        descriptor.FieldJSON,
			Required:    true,
			Placeholder: `{"type": "object", "properties": {...}}`,
			DisplayIf:   map[string][]any{paramSchemaSource: {sourceSchema}},
		},
		descriptor.Field{
			Name:        paramResponseFormat,
			DisplayName: "Response Format",
			Type:        descriptor.FieldJSON,
			Required:    true,
			Description: "Complete response_format object as the API expects it; malformed input is repaired on a best-effort basis",
			DisplayIf:   map[string][]any{paramSchemaSource: {sourceResponseFormat}},
		},
		nodes.ReturnModeField(returnAttributes,
			descriptor.Option{Name: "Full Response", Value: nodes.ReturnModeFull},
			descriptor.Option{Name: "Attributes", Value: returnAttributes, Description: "The structured object extracted from the document"},
			descriptor.Option{Name: "Text", Value: returnText, Description: "The raw response content string"},
		),
	)

	return descriptor.Descriptor{
		Name:        "docintelExtract",
		DisplayName: "Docintel Extract",
		Description: "Extract structured information from documents with the Docintel API",
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

	responseFormat, err := resolveResponseFormat(exec, itemIndex)
	if err != nil {
		return host.Request{}, err
	}

	body, err := json.Marshal(map[string]any{
		"model": host.StringParameter(exec, paramModel, itemIndex, defaultModel),
		"messages": []map[string]any{
			{"role": "user", "content": []map[string]any{ref.MessagePart()}},
		},
		"response_format": responseFormat,
	})
	if err != nil {
		return host.Request{}, fmt.Errorf("failed to encode extraction body: %w", err)
	}

	return host.Request{Method: http.MethodPost, URL: endpoint, Body: body, JSON: true}, nil
}

// resolveResponseFormat builds the response_format object from whichever
// schema parameter the node is configured with. A user-supplied schema must
// parse as-is; only the full response-format string gets the repair pass,
// because that is where malformed copy-pasted API output shows up.
func resolveResponseFormat(exec host.Execution, itemIndex int) (map[string]any, error) {
	source := host.StringParameter(exec, paramSchemaSource, itemIndex, sourceSchema)

	if source == sourceResponseFormat {
		raw := host.StringParameter(exec, paramResponseFormat, itemIndex, "")
		if raw == "" {
			return nil, adapter.Userf("response format is empty; set the %q parameter", paramResponseFormat)
		}
		var format map[string]any
		if err := json.Unmarshal([]byte(raw), &format); err != nil {
			repaired := jsonrepair.Repair(raw)
			if repairErr := json.Unmarshal([]byte(repaired), &format); repairErr != nil {
				return nil, &adapter.UserError{Message: "response format is not valid JSON", Cause: err}
			}
		}
		return format, nil
	}

	schema, err := host.ObjectParameter(exec, paramJSONSchema, itemIndex)
	if err != nil {
		return nil, &adapter.UserError{Message: "JSON schema is not valid", Cause: err}
	}
	if len(schema) == 0 {
		return nil, adapter.Userf("JSON schema is empty; set the %q parameter", paramJSONSchema)
	}

	return map[string]any{
		"type": "json_schema",
		"json_schema": map[string]any{
			"name":   "extraction",
			"strict": true,
			"schema": schema,
		},
	}, nil
}

func (Node) MapResponse(exec host.Execution, itemIndex int, resp host.Response) (item.Item, error) {
	completion, err := envelope.Parse(resp.Body)
	if err != nil {
		return item.Item{}, err
	}

	switch host.StringParameter(exec, nodes.ParamReturnMode, itemIndex, returnAttributes) {
	case nodes.ReturnModeFull:
		return item.New(itemIndex, envelope.Raw(resp.Body)), nil
	case returnText:
		return item.New(itemIndex, map[string]any{"text": completion.Content()}), nil
	default:
		attributes, err := completion.ContentObject()
		if err != nil {
			return item.Item{}, err
		}
		return item.New(itemIndex, attributes), nil
	}
}
