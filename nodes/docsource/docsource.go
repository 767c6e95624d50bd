// Package docsource resolves a node's document input into the reference the
// vendor API understands: either a plain URL or a base64 data URL built from
// a binary attachment. The extraction, schema-generation, and classification
// nodes all declare the same input-source fields and share this resolution.
package docsource

import (
	"encoding/base64"

	"github.com/flowkit-plugins/docintel/adapter"
	"github.com/flowkit-plugins/docintel/core/descriptor"
	"github.com/flowkit-plugins/docintel/host"
)

// Parameter names shared by nodes that take a document input.
const (
	ParamInputType      = "inputType"
	ParamBinaryProperty = "binaryProperty"
	ParamDocumentURL    = "documentUrl"

	InputBinary = "binary"
	InputURL    = "url"

	defaultBinaryProperty = "data"
	defaultMimeType       = "application/octet-stream"
)

// Reference is a resolved document pointer ready for a message content part.
type Reference struct {
	Kind string // "document_url" or "image_url"
	URL  string // http(s) URL or data URL
}

// MessagePart renders the reference as one entry of a message content array.
func (r Reference) MessagePart() map[string]any {
	return map[string]any{
		"type": r.Kind,
		r.Kind: r.URL,
	}
}

// Fields returns the descriptor fields for document input selection. Nodes
// append them to their own field lists so every document node presents the
// same source controls.
func Fields() []descriptor.Field {
	return []descriptor.Field{
		{
			Name:        ParamInputType,
			DisplayName: "Document Input",
			Type:        descriptor.FieldOptions,
			Default:     InputBinary,
			Options: []descriptor.Option{
				{Name: "Binary File", Value: InputBinary, Description: "Use a binary attachment from the input item"},
				{Name: "URL", Value: InputURL, Description: "Fetch the document from a public URL"},
			},
		},
		{
			Name:        ParamBinaryProperty,
			DisplayName: "Binary Property",
			Type:        descriptor.FieldString,
			Default:     defaultBinaryProperty,
			Description: "Name of the binary property holding the document",
			DisplayIf:   map[string][]any{ParamInputType: {InputBinary}},
		},
		{
			Name:        ParamDocumentURL,
			DisplayName: "Document URL",
			Type:        descriptor.FieldString,
			Placeholder: "https://example.com/invoice.pdf",
			DisplayIf:   map[string][]any{ParamInputType: {InputURL}},
		},
	}
}

// Resolve reads the shared input-source parameters for one item and returns
// the document reference. Image MIME types become image_url references so
// photographed documents route to the vision input; everything else is a
// document_url. Missing input is a UserError.
func Resolve(exec host.Execution, itemIndex int) (Reference, error) {
	inputType := host.StringParameter(exec, ParamInputType, itemIndex, InputBinary)

	if inputType == InputURL {
		url := host.StringParameter(exec, ParamDocumentURL, itemIndex, "")
		if url == "" {
			return Reference{}, adapter.Userf("document URL is empty; set the %q parameter", ParamDocumentURL)
		}
		return Reference{Kind: "document_url", URL: url}, nil
	}

	property := host.StringParameter(exec, ParamBinaryProperty, itemIndex, defaultBinaryProperty)
	binary, err := exec.BinaryData(itemIndex, property)
	if err != nil {
		return Reference{}, &adapter.UserError{
			Message: "no binary data found on item; set the binary property name or switch to URL input",
			Cause:   err,
		}
	}

	mimeType := binary.MimeType
	if mimeType == "" {
		mimeType = defaultMimeType
	}

	kind := "document_url"
	if len(mimeType) >= 6 && mimeType[:6] == "image/" {
		kind = "image_url"
	}

	encoded := base64.StdEncoding.EncodeToString(binary.Data)
	return Reference{Kind: kind, URL: "data:" + mimeType + ";base64," + encoded}, nil
}
