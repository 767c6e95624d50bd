// Package digitize implements the OCR/digitization node. It covers three
// endpoint operations: synchronous digitization, asynchronous submission,
// and result retrieval by request id. Binary input is uploaded as a
// hand-built multipart form; URL input goes as a JSON body.
package digitize

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/flowkit-plugins/docintel/adapter"
	"github.com/flowkit-plugins/docintel/core/descriptor"
	"github.com/flowkit-plugins/docintel/core/item"
	"github.com/flowkit-plugins/docintel/host"
	"github.com/flowkit-plugins/docintel/multipart"
	"github.com/flowkit-plugins/docintel/nodes"
	"github.com/flowkit-plugins/docintel/nodes/docsource"
)

const (
	endpointDigitize      = "/v1/digitization"
	endpointDigitizeAsync = "/v1/digitization/async"
	endpointRequests      = "/v1/digitization/requests/"

	paramOperation = "operation"
	paramModel     = "model"
	paramRequestID = "requestId"

	opDigitize      = "digitize"
	opDigitizeAsync = "digitizeAsync"
	opGetRequest    = "getRequest"

	returnText  = "text"
	returnPages = "pages"

	defaultModel = "docintel-ocr-latest"

	// The digitization endpoint rejects larger uploads; checking here
	// saves the round trip. This is the only size limit in the module.
	maxUploadBytes = 50 * 1024 * 1024
)

// Node is the digitization capability.
type Node struct{}

func init() { adapter.MustRegister(Node{}) }

func (Node) Descriptor() descriptor.Descriptor {
	fields := []descriptor.Field{
		{
			Name:        paramOperation,
			DisplayName: "Operation",
			Type:        descriptor.FieldOptions,
			Default:     opDigitize,
			Options: []descriptor.Option{
				{Name: "Digitize", Value: opDigitize, Description: "Run OCR and wait for the result"},
				{Name: "Digitize (Async)", Value: opDigitizeAsync, Description: "Submit OCR and return a request id"},
				{Name: "Get Request", Value: opGetRequest, Description: "Fetch the result of an async request"},
			},
		},
		{
			Name:        paramModel,
			DisplayName: "Model",
			Type:        descriptor.FieldString,
			Default:     defaultModel,
			DisplayIf:   map[string][]any{paramOperation: {opDigitize, opDigitizeAsync}},
		},
	}
	for _, f := range docsource.Fields() {
		f.DisplayIf = mergeDisplayIf(f.DisplayIf, paramOperation, opDigitize, opDigitizeAsync)
		fields = append(fields, f)
	}
	fields = append(fields,
		descriptor.Field{
			Name:        paramRequestID,
			DisplayName: "Request ID",
			Type:        descriptor.FieldString,
			Required:    true,
			DisplayIf:   map[string][]any{paramOperation: {opGetRequest}},
		},
		nodes.ReturnModeField(returnText,
			descriptor.Option{Name: "Full Response", Value: nodes.ReturnModeFull},
			descriptor.Option{Name: "Text", Value: returnText},
			descriptor.Option{Name: "Pages", Value: returnPages},
		),
		descriptor.Notice("asyncNotice",
			"Async requests return a request id; retrieve the result with the Get Request operation.",
			map[string][]any{paramOperation: {opDigitizeAsync}}),
	)

	return descriptor.Descriptor{
		Name:        "docintelDigitize",
		DisplayName: "Docintel OCR",
		Description: "Digitize documents with the Docintel OCR API",
		Version:     1,
		Inputs:      []string{"main"},
		Outputs:     []string{"main"},
		Credential:  nodes.Credential,
		Fields:      fields,
	}
}

func (Node) BuildRequest(ctx context.Context, exec host.Execution, itemIndex int) (host.Request, error) {
	operation := host.StringParameter(exec, paramOperation, itemIndex, opDigitize)

	switch operation {
	case opDigitize:
		return buildDigitize(exec, itemIndex, endpointDigitize)
	case opDigitizeAsync:
		return buildDigitize(exec, itemIndex, endpointDigitizeAsync)
	case opGetRequest:
		requestID := host.StringParameter(exec, paramRequestID, itemIndex, "")
		if requestID == "" {
			return host.Request{}, adapter.Userf("request ID is empty; set the %q parameter", paramRequestID)
		}
		return host.Request{
			Method: http.MethodGet,
			URL:    endpointRequests + url.PathEscape(requestID),
			JSON:   true,
		}, nil
	default:
		return host.Request{}, adapter.Userf("unknown operation %q", operation)
	}
}

func buildDigitize(exec host.Execution, itemIndex int, endpoint string) (host.Request, error) {
	model := host.StringParameter(exec, paramModel, itemIndex, defaultModel)
	inputType := host.StringParameter(exec, docsource.ParamInputType, itemIndex, docsource.InputBinary)

	if inputType == docsource.InputURL {
		documentURL := host.StringParameter(exec, docsource.ParamDocumentURL, itemIndex, "")
		if documentURL == "" {
			return host.Request{}, adapter.Userf("document URL is empty; set the %q parameter", docsource.ParamDocumentURL)
		}
		body, err := json.Marshal(map[string]any{
			"model": model,
			"document": map[string]any{
				"type":         "document_url",
				"document_url": documentURL,
			},
		})
		if err != nil {
			return host.Request{}, fmt.Errorf("failed to encode digitization body: %w", err)
		}
		return host.Request{Method: http.MethodPost, URL: endpoint, Body: body, JSON: true}, nil
	}

	property := host.StringParameter(exec, docsource.ParamBinaryProperty, itemIndex, "data")
	binary, err := exec.BinaryData(itemIndex, property)
	if err != nil {
		return host.Request{}, &adapter.UserError{
			Message: "no binary data found on item; set the binary property name or switch to URL input",
			Cause:   err,
		}
	}
	if len(binary.Data) > maxUploadBytes {
		return host.Request{}, adapter.Userf("document is %d bytes, above the 50 MB upload limit", len(binary.Data))
	}

	fileName := binary.FileName
	if fileName == "" {
		fileName = "document"
	}

	body, contentType, err := multipart.Build(
		map[string]string{"model": model},
		multipart.File{
			FieldName:   "document",
			FileName:    fileName,
			ContentType: binary.MimeType,
			Data:        binary.Data,
		},
	)
	if err != nil {
		return host.Request{}, fmt.Errorf("failed to build multipart body: %w", err)
	}

	return host.Request{
		Method:  http.MethodPost,
		URL:     endpoint,
		Headers: map[string]string{"Content-Type": contentType},
		Body:    body,
	}, nil
}

func (Node) MapResponse(exec host.Execution, itemIndex int, resp host.Response) (item.Item, error) {
	operation := host.StringParameter(exec, paramOperation, itemIndex, opDigitize)

	var raw map[string]any
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		return item.Item{}, fmt.Errorf("failed to parse digitization response: %w", err)
	}

	// Async submissions always return the request envelope untouched; the
	// return mode applies to results.
	if operation == opDigitizeAsync {
		return item.New(itemIndex, raw), nil
	}

	payload := raw
	if operation == opGetRequest {
		// Pending requests have no result yet; pass the status through.
		result, ok := raw["result"].(map[string]any)
		if !ok {
			return item.New(itemIndex, raw), nil
		}
		payload = result
	}

	switch host.StringParameter(exec, nodes.ParamReturnMode, itemIndex, returnText) {
	case nodes.ReturnModeFull:
		return item.New(itemIndex, raw), nil
	case returnPages:
		pages, ok := payload["pages"].([]any)
		if !ok {
			pages = []any{}
		}
		return item.New(itemIndex, map[string]any{"pages": pages}), nil
	default:
		text, _ := payload["text"].(string)
		return item.New(itemIndex, map[string]any{"text": text}), nil
	}
}

func mergeDisplayIf(conditions map[string][]any, name string, values ...any) map[string][]any {
	merged := map[string][]any{name: values}
	for k, v := range conditions {
		merged[k] = v
	}
	return merged
}
