// Package host defines the contract between a node and the workflow host
// runtime: input items, per-item parameter and binary accessors, the
// continue-on-fail flag, and the authenticated HTTP helper the node calls
// endpoints through. Credential resolution, retries, and timeouts all live
// behind that helper; nodes never see raw secrets.
package host

import (
	"context"

	"github.com/flowkit-plugins/docintel/core/item"
)

// Request describes one outbound HTTP call for the host to execute. When
// JSON is set the host adds the application/json content type and the
// response body is expected to be a JSON document; multipart callers set
// their own Content-Type header and leave JSON false.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
	JSON    bool
}

// Response is the raw outcome of an authenticated call.
type Response struct {
	StatusCode int
	Body       []byte
}

// Execution is the host-side view a node receives for one invocation.
type Execution interface {
	// InputItems returns the batch of items to process, in order.
	InputItems() []item.Item

	// Parameter returns the value of a declared configuration field for
	// the given item index. The second return reports whether the
	// parameter was set at all.
	Parameter(name string, itemIndex int) (any, bool)

	// BinaryData returns the named binary attachment of an item.
	BinaryData(itemIndex int, property string) (item.Binary, error)

	// ContinueOnFail reports whether per-item failures should be captured
	// as error output instead of aborting the batch.
	ContinueOnFail() bool

	// Call performs an authenticated HTTP request using the named
	// credential. The host injects auth material and applies its own
	// retry and timeout policy.
	Call(ctx context.Context, credential string, req Request) (Response, error)
}
