package codegen

// Optional holds a value that may be absent. The zero value is absent.
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns a present value
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None returns an absent value
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// IsPresent reports whether a value is held
func (o Optional[T]) IsPresent() bool {
	return o.present
}
