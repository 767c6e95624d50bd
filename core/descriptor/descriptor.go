// Package descriptor defines the static metadata a node publishes to the
// workflow host: display information, configuration fields with defaults and
// conditional visibility, port declarations, and the credential the node
// requires. Descriptors are built once at registration and never mutated.
package descriptor

// FieldType identifies how the host renders and validates a configuration
// field.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
	FieldOptions FieldType = "options"
	FieldJSON    FieldType = "json"
	FieldNotice  FieldType = "notice"
)

// Option is one selectable value of an options field.
type Option struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// Field describes one configuration parameter of a node. DisplayIf maps a
// sibling field name to the values under which this field is shown; a field
// with no conditions is always visible.
type Field struct {
	Name        string           `json:"name"`
	DisplayName string           `json:"display_name"`
	Type        FieldType        `json:"type"`
	Description string           `json:"description,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`
	Default     any              `json:"default,omitempty"`
	Required    bool             `json:"required,omitempty"`
	Options     []Option         `json:"options,omitempty"`
	DisplayIf   map[string][]any `json:"display_if,omitempty"`
}

// Descriptor is the immutable metadata for one node type.
type Descriptor struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Description string   `json:"description"`
	Version     int      `json:"version"`
	Inputs      []string `json:"inputs"`
	Outputs     []string `json:"outputs"`
	Credential  string   `json:"credential,omitempty"`
	Fields      []Field  `json:"fields"`
}

// Field returns the field with the given name and whether it exists.
func (d Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Visible reports whether a field should be shown given the current
// parameter values. Every DisplayIf condition must match; a referenced
// parameter that is absent fails the condition.
func (f Field) Visible(params map[string]any) bool {
	for name, accepted := range f.DisplayIf {
		value, ok := params[name]
		if !ok {
			return false
		}
		matched := false
		for _, want := range accepted {
			if value == want {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
