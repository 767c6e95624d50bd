// Package item defines the unit of data flowing through a workflow step:
// a JSON payload, an optional set of named binary attachments, and a
// back-reference to the input item that produced it.
package item

// Binary is a named file attachment on an item: raw bytes plus the metadata
// the host tracks alongside them.
type Binary struct {
	Data     []byte `json:"data"`
	FileName string `json:"file_name,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
}

// PairedItem points an output item back at the input item it was derived
// from.
type PairedItem struct {
	Item int `json:"item"`
}

// Item is one unit of input or output data.
type Item struct {
	JSON       map[string]any    `json:"json"`
	PairedItem PairedItem        `json:"pairedItem"`
	Binary     map[string]Binary `json:"binary,omitempty"`
}

// New creates an output item for the given source index.
func New(index int, payload map[string]any) Item {
	if payload == nil {
		payload = map[string]any{}
	}
	return Item{JSON: payload, PairedItem: PairedItem{Item: index}}
}

// NewError creates the error-shaped output item emitted for a failed source
// item when the host's continue-on-fail flag is set.
func NewError(index int, err error) Item {
	return Item{
		JSON:       map[string]any{"error": err.Error()},
		PairedItem: PairedItem{Item: index},
	}
}
