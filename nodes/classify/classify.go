// Package classify implements the document-classification node. The vendor
// returns the chosen category as completion content; the finish reason
// doubles as a coarse confidence signal.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/flowkit-plugins/docintel/adapter"
	"github.com/flowkit-plugins/docintel/core/descriptor"
	"github.com/flowkit-plugins/docintel/core/envelope"
	"github.com/flowkit-plugins/docintel/core/item"
	"github.com/flowkit-plugins/docintel/host"
	"github.com/flowkit-plugins/docintel/nodes"
	"github.com/flowkit-plugins/docintel/nodes/docsource"
)

const (
	endpoint = "/v1/document-classification"

	paramModel      = "model"
	paramCategories = "categories"

	returnLabel = "label"

	defaultModel = "docintel-classify-latest"
)

// Node is the document-classification capability.
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
		{
			Name:        paramCategories,
			DisplayName: "Categories",
			Type:        descriptor.FieldString,
			Required:    true,
			Placeholder: "invoice, receipt, contract",
			Description: "Comma-separated list of categories to classify into",
		},
	}
	fields = append(fields, docsource.Fields()...)
	fields = append(fields,
		nodes.ReturnModeField(returnLabel,
			descriptor.Option{Name: "Full Response", Value: nodes.ReturnModeFull},
			descriptor.Option{Name: "Label", Value: returnLabel, Description: "The category label and a confidence indicator"},
		),
	)

	return descriptor.Descriptor{
		Name:        "docintelClassify",
		DisplayName: "Docintel Classifier",
		Description: "Classify documents into user-defined categories",
		Version:     1,
		Inputs:      []string{"main"},
		Outputs:     []string{"main"},
		Credential:  nodes.Credential,
		Fields:      fields,
	}
}

func (Node) BuildRequest(ctx context.Context, exec host.Execution, itemIndex int) (host.Request, error) {
	categories := parseCategories(host.StringParameter(exec, paramCategories, itemIndex, ""))
	if len(categories) == 0 {
		return host.Request{}, adapter.Userf("no categories given; set the %q parameter", paramCategories)
	}

	ref, err := docsource.Resolve(exec, itemIndex)
	if err != nil {
		return host.Request{}, err
	}

	body, err := json.Marshal(map[string]any{
		"model":      host.StringParameter(exec, paramModel, itemIndex, defaultModel),
		"categories": categories,
		"messages": []map[string]any{
			{"role": "user", "content": []map[string]any{ref.MessagePart()}},
		},
	})
	if err != nil {
		return host.Request{}, fmt.Errorf("failed to encode classification body: %w", err)
	}

	return host.Request{Method: http.MethodPost, URL: endpoint, Body: body, JSON: true}, nil
}

func (Node) MapResponse(exec host.Execution, itemIndex int, resp host.Response) (item.Item, error) {
	completion, err := envelope.Parse(resp.Body)
	if err != nil {
		return item.Item{}, err
	}

	if host.StringParameter(exec, nodes.ParamReturnMode, itemIndex, returnLabel) == nodes.ReturnModeFull {
		return item.New(itemIndex, envelope.Raw(resp.Body)), nil
	}

	confidence := "low"
	if completion.FinishReason() == "stop" {
		confidence = "high"
	}

	return item.New(itemIndex, map[string]any{
		"category":   strings.TrimSpace(completion.Content()),
		"confidence": confidence,
	}), nil
}

func parseCategories(raw string) []string {
	var categories []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			categories = append(categories, trimmed)
		}
	}
	return categories
}
