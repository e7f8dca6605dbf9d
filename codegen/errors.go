package codegen

import "errors"

var (
	// ErrRootNotFound is returned when a requested root element is not a
	// top-level element of the schema.
	ErrRootNotFound = errors.New("root element not found")

	// ErrUnsupportedParticle is returned for content model particles the
	// builder does not model, such as wildcards or choices nested in a
	// sequence.
	ErrUnsupportedParticle = errors.New("unsupported particle kind")

	// ErrUnsupportedContent is returned for complex type content that is
	// neither a sequence, a choice nor simple content.
	ErrUnsupportedContent = errors.New("unsupported content model kind")

	// ErrUnmappedPrimitive is returned for built-in types without a scalar
	// mapping.
	ErrUnmappedPrimitive = errors.New("unmapped primitive type")

	// ErrNameCollision is returned when classes of different namespaces
	// share a local name. All classes of a run share one C# namespace, and a
	// promoted class would overwrite the file of the other.
	ErrNameCollision = errors.New("class name collision")
)

// IsUnsupported reports whether err stems from a schema construct the
// builder does not model.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedParticle) || errors.Is(err, ErrUnsupportedContent)
}
