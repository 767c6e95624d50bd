package docsource_test

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/flowkit-plugins/docintel/adapter"
	"github.com/flowkit-plugins/docintel/core/item"
	"github.com/flowkit-plugins/docintel/host"
	"github.com/flowkit-plugins/docintel/nodes/docsource"
)

func TestResolve_URLMode(t *testing.T) {
	exec := host.NewLocal(
		[]item.Item{{JSON: map[string]any{}}},
		host.WithParameters(map[string]any{
			"inputType":   "url",
			"documentUrl": "https://example.com/doc.pdf",
		}),
	)

	ref, err := docsource.Resolve(exec, 0)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if ref.Kind != "document_url" || ref.URL != "https://example.com/doc.pdf" {
		t.Errorf("got %+v, want a document_url reference", ref)
	}

	part := ref.MessagePart()
	if part["type"] != "document_url" || part["document_url"] != ref.URL {
		t.Errorf("got message part %v", part)
	}
}

func TestResolve_URLModeEmptyURL(t *testing.T) {
	exec := host.NewLocal(
		[]item.Item{{JSON: map[string]any{}}},
		host.WithParameters(map[string]any{"inputType": "url"}),
	)

	_, err := docsource.Resolve(exec, 0)
	var userErr *adapter.UserError
	if !errors.As(err, &userErr) {
		t.Errorf("error = %v, want a UserError for empty URL", err)
	}
}

func TestResolve_BinaryBecomesDataURL(t *testing.T) {
	data := []byte("%PDF-1.7 ...")
	exec := host.NewLocal([]item.Item{{
		JSON: map[string]any{},
		Binary: map[string]item.Binary{
			"data": {Data: data, FileName: "a.pdf", MimeType: "application/pdf"},
		},
	}})

	ref, err := docsource.Resolve(exec, 0)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if ref.Kind != "document_url" {
		t.Errorf("got kind %q, want document_url for a PDF", ref.Kind)
	}

	wantPrefix := "data:application/pdf;base64,"
	if !strings.HasPrefix(ref.URL, wantPrefix) {
		t.Fatalf("got URL %q, want %q prefix", ref.URL, wantPrefix)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(ref.URL, wantPrefix))
	if err != nil {
		t.Fatalf("payload is not base64: %v", err)
	}
	if string(decoded) != string(data) {
		t.Errorf("decoded payload %q, want the binary bytes", decoded)
	}
}

func TestResolve_ImageBecomesImageURL(t *testing.T) {
	exec := host.NewLocal([]item.Item{{
		JSON: map[string]any{},
		Binary: map[string]item.Binary{
			"data": {Data: []byte{0xFF, 0xD8}, FileName: "page.jpg", MimeType: "image/jpeg"},
		},
	}})

	ref, err := docsource.Resolve(exec, 0)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if ref.Kind != "image_url" {
		t.Errorf("got kind %q, want image_url for an image MIME type", ref.Kind)
	}
	if part := ref.MessagePart(); part["image_url"] != ref.URL {
		t.Errorf("got message part %v, want image_url entry", part)
	}
}

func TestResolve_CustomBinaryProperty(t *testing.T) {
	exec := host.NewLocal(
		[]item.Item{{
			JSON: map[string]any{},
			Binary: map[string]item.Binary{
				"attachment": {Data: []byte("x")},
			},
		}},
		host.WithParameters(map[string]any{"binaryProperty": "attachment"}),
	)

	if _, err := docsource.Resolve(exec, 0); err != nil {
		t.Errorf("Resolve() with custom property failed: %v", err)
	}
}

func TestResolve_MissingBinary(t *testing.T) {
	exec := host.NewLocal([]item.Item{{JSON: map[string]any{}}})

	_, err := docsource.Resolve(exec, 0)
	var userErr *adapter.UserError
	if !errors.As(err, &userErr) {
		t.Errorf("error = %v, want a UserError for missing binary data", err)
	}
	if !errors.Is(err, host.ErrNoBinaryData) {
		t.Errorf("error = %v, want the host sentinel in the chain", err)
	}
}
