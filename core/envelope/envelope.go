// Package envelope decodes the chat-completion-shaped responses returned by
// the vendor's LLM-backed endpoints (information extraction, schema
// generation, classification). Accessors substitute empty defaults for
// missing pieces instead of failing; the digitization endpoints return flat
// objects and do not use this package.
package envelope

import (
	"encoding/json"
	"fmt"
)

// Completion is the vendor's chat-completion response envelope.
type Completion struct {
	ID      string `json:"id,omitempty"`
	Object  string `json:"object,omitempty"`
	Created int64  `json:"created,omitempty"`
	Model   string `json:"model,omitempty"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason,omitempty"`
	} `json:"choices"`
	Usage map[string]any `json:"usage,omitempty"`
}

// Parse decodes a completion envelope from JSON bytes.
func Parse(body []byte) (*Completion, error) {
	var completion Completion
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, fmt.Errorf("failed to parse completion response: %w", err)
	}
	return &completion, nil
}

// Content returns the content of the first choice, or "" when the envelope
// carries no choices.
func (c *Completion) Content() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].Message.Content
}

// FinishReason returns the finish reason of the first choice, or "".
func (c *Completion) FinishReason() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].FinishReason
}

// ContentObject parses the first choice's content as a JSON object. Missing
// content yields an empty map; content that is present but not valid JSON
// is an error carrying the parse message.
func (c *Completion) ContentObject() (map[string]any, error) {
	content := c.Content()
	if content == "" {
		return map[string]any{}, nil
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(content), &decoded); err != nil {
		return nil, fmt.Errorf("response content is not a JSON object: %w", err)
	}
	return decoded, nil
}

// Raw re-decodes the body into a generic map for full-response return
// modes, so output preserves fields the typed envelope does not model.
func Raw(body []byte) map[string]any {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return map[string]any{}
	}
	return raw
}
