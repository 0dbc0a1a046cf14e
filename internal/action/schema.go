package action

// Field declares a single request or response field: its semantic type, a
// human-readable description, whether it is required, and for optional
// fields an explicit default.
type Field struct {
	// Name is the field's wire name (snake_case).
	Name string `json:"name"`

	// Type is the semantic type: "string", "boolean", "integer", "number",
	// "object", or "mapping".
	Type string `json:"type"`

	// Description explains the field for UI and tool listings.
	Description string `json:"description"`

	// Example is an illustrative value, when one helps.
	Example string `json:"example,omitempty"`

	// Required fields have no default; construction fails when they are
	// absent.
	Required bool `json:"required"`

	// Default is the value used when an optional field is absent.
	Default any `json:"default,omitempty"`
}

// Schema declares the shape of an action's request or response.
type Schema struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// FieldByName returns the declared field with the given name, if any.
func (s Schema) FieldByName(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RequiredFields returns the names of all required fields in declaration
// order.
func (s Schema) RequiredFields() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}
