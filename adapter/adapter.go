// Package adapter defines the capability interface every endpoint node
// implements and the shared run loop that drives it. A capability is a pure
// mapping: build one vendor request per input item, hand it to the host's
// authenticated HTTP helper, and reshape the response into an output item.
// The loop owns the item boundary: failures either abort the batch or, when
// the host's continue-on-fail flag is set, become error-shaped output items.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/flowkit-plugins/docintel/core/descriptor"
	"github.com/flowkit-plugins/docintel/core/item"
	"github.com/flowkit-plugins/docintel/host"
	"github.com/flowkit-plugins/docintel/observability"
)

// Capability adapts one vendor endpoint into the host's node interface.
// Implementations hold no per-run state; everything an invocation needs
// comes in through the Execution.
type Capability interface {
	// Descriptor returns the node's static metadata.
	Descriptor() descriptor.Descriptor

	// BuildRequest constructs the vendor request for one input item.
	// Invalid or missing input is reported as a *UserError.
	BuildRequest(ctx context.Context, exec host.Execution, itemIndex int) (host.Request, error)

	// MapResponse reshapes a successful vendor response into the output
	// item for the given source index, honoring the node's return mode.
	MapResponse(exec host.Execution, itemIndex int, resp host.Response) (item.Item, error)
}

// Run processes every input item through the capability sequentially. For
// each item it builds the request, calls the endpoint with the node's
// declared credential, and maps the response. Output always has one item
// per successfully processed input, with pairedItem pointing back at the
// source index. A nil observer disables event emission.
func Run(ctx context.Context, exec host.Execution, capability Capability, observer observability.Observer) ([]item.Item, error) {
	if observer == nil {
		observer = observability.NoOpObserver{}
	}

	desc := capability.Descriptor()
	items := exec.InputItems()

	observer.OnEvent(ctx, observability.NewEvent(
		observability.EventRunStart, observability.LevelInfo, desc.Name,
		map[string]any{"items": len(items)},
	))

	out := make([]item.Item, 0, len(items))
	for i := range items {
		result, err := runItem(ctx, exec, capability, desc, i)
		if err != nil {
			if exec.ContinueOnFail() {
				observer.OnEvent(ctx, observability.NewEvent(
					observability.EventItemCaptured, observability.LevelWarning, desc.Name,
					map[string]any{"item": i, "error": err.Error()},
				))
				out = append(out, item.NewError(i, err))
				continue
			}
			observer.OnEvent(ctx, observability.NewEvent(
				observability.EventItemError, observability.LevelError, desc.Name,
				map[string]any{"item": i, "error": err.Error()},
			))
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, result)
	}

	observer.OnEvent(ctx, observability.NewEvent(
		observability.EventRunComplete, observability.LevelInfo, desc.Name,
		map[string]any{"items": len(out)},
	))

	return out, nil
}

func runItem(ctx context.Context, exec host.Execution, capability Capability, desc descriptor.Descriptor, index int) (item.Item, error) {
	req, err := capability.BuildRequest(ctx, exec, index)
	if err != nil {
		return item.Item{}, err
	}

	resp, err := exec.Call(ctx, desc.Credential, req)
	if err != nil {
		return item.Item{}, &APIError{Message: err.Error()}
	}
	if resp.StatusCode >= 400 {
		return item.Item{}, &APIError{StatusCode: resp.StatusCode, Message: upstreamMessage(resp.Body)}
	}

	return capability.MapResponse(exec, index, resp)
}

// upstreamMessage extracts a human-readable message from an error response
// body, falling back to the raw body text.
func upstreamMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		switch {
		case envelope.Message != "":
			return envelope.Message
		case envelope.Detail != "":
			return envelope.Detail
		case envelope.Error.Message != "":
			return envelope.Error.Message
		}
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return string(body)
}
