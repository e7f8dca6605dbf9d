package codegen

// Settings controls what the renderer emits
type Settings struct {
	// Namespace is the namespace declared by every generated file
	Namespace string
	// EmitValidationAnnotations keeps StringLength and RegularExpression
	// annotations and the DataAnnotations using directive.
	EmitValidationAnnotations bool
	// EmitJSONHints adds System.Text.Json attributes next to the XML ones.
	EmitJSONHints bool
}

// DefaultSettings enables every optional annotation
func DefaultSettings(namespace string) Settings {
	return Settings{
		Namespace:                 namespace,
		EmitValidationAnnotations: true,
		EmitJSONHints:             true,
	}
}
