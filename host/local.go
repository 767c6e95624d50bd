package host

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/flowkit-plugins/docintel/core/item"
)

const defaultCallTimeout = 120 * time.Second

// Credential is the auth material the local execution injects into calls.
// The production host resolves credentials itself; Local exists so the
// harness command and tests can stand in for it.
type Credential struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// CallFunc replaces the HTTP transport of a Local execution. Tests use it
// to return canned vendor responses without a network.
type CallFunc func(ctx context.Context, credential string, req Request) (Response, error)

// Local is a minimal in-process Execution implementation. Parameters are
// node-level (the same map serves every item index), matching how the host
// evaluates a node's configuration once per run.
type Local struct {
	items          []item.Item
	params         map[string]any
	continueOnFail bool
	credentials    map[string]Credential
	call           CallFunc
	client         *http.Client
}

// LocalOption configures a Local execution.
type LocalOption func(*Local)

// WithParameters sets the node-level parameter map.
func WithParameters(params map[string]any) LocalOption {
	return func(l *Local) { l.params = params }
}

// WithContinueOnFail sets the continue-on-fail flag.
func WithContinueOnFail(v bool) LocalOption {
	return func(l *Local) { l.continueOnFail = v }
}

// WithCredential registers a named credential.
func WithCredential(name string, cred Credential) LocalOption {
	return func(l *Local) { l.credentials[name] = cred }
}

// WithCallFunc overrides the HTTP transport.
func WithCallFunc(fn CallFunc) LocalOption {
	return func(l *Local) { l.call = fn }
}

// WithHTTPClient overrides the default HTTP client used for real calls.
func WithHTTPClient(client *http.Client) LocalOption {
	return func(l *Local) { l.client = client }
}

// NewLocal creates a Local execution over the given input items.
func NewLocal(items []item.Item, opts ...LocalOption) *Local {
	l := &Local{
		items:       items,
		params:      map[string]any{},
		credentials: map[string]Credential{},
		client:      &http.Client{Timeout: defaultCallTimeout},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Local) InputItems() []item.Item { return l.items }

func (l *Local) Parameter(name string, itemIndex int) (any, bool) {
	v, ok := l.params[name]
	return v, ok
}

func (l *Local) BinaryData(itemIndex int, property string) (item.Binary, error) {
	if itemIndex < 0 || itemIndex >= len(l.items) {
		return item.Binary{}, fmt.Errorf("%w: %d", ErrItemIndexOutOfRange, itemIndex)
	}
	bin := l.items[itemIndex].Binary
	if len(bin) == 0 {
		return item.Binary{}, ErrNoBinaryData
	}
	data, ok := bin[property]
	if !ok {
		return item.Binary{}, fmt.Errorf("%w: %q", ErrBinaryPropertyAbsent, property)
	}
	return data, nil
}

func (l *Local) ContinueOnFail() bool { return l.continueOnFail }

// Call executes the request with bearer auth from the named credential.
// Relative URLs are resolved against the credential's base URL so node code
// can address endpoints by path alone.
func (l *Local) Call(ctx context.Context, credential string, req Request) (Response, error) {
	if l.call != nil {
		return l.call(ctx, credential, req)
	}

	cred, ok := l.credentials[credential]
	if !ok {
		return Response{}, fmt.Errorf("%w: %q", ErrCredentialNotFound, credential)
	}

	url := req.URL
	if cred.BaseURL != "" && len(url) > 0 && url[0] == '/' {
		url = cred.BaseURL + url
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, bytes.NewReader(req.Body))
	if err != nil {
		return Response{}, fmt.Errorf("failed to build request: %w", err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.JSON {
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "application/json")
	}
	httpReq.Header.Set("Authorization", "Bearer "+cred.APIKey)

	httpResp, err := l.client.Do(httpReq)
	if err != nil {
		return Response{}, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read response body: %w", err)
	}

	return Response{StatusCode: httpResp.StatusCode, Body: body}, nil
}
