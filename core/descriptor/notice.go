package descriptor

// Notice builds a display-only field that renders an informational banner in
// the host editor. Notice fields carry no value and are skipped by parameter
// accessors; displayIf may be nil for an unconditional notice.
func Notice(name, text string, displayIf map[string][]any) Field {
	return Field{
		Name:        name,
		DisplayName: text,
		Type:        FieldNotice,
		Default:     "",
		DisplayIf:   displayIf,
	}
}
