package persist

// nopHandler ignores every callback. Zero-sized, so every instantiation
// shares the same representation.
type nopHandler[T any] struct{}

func (nopHandler[T]) Opened(T)   {}
func (nopHandler[T]) Readable(T) {}
func (nopHandler[T]) Writable(T) {}
func (nopHandler[T]) Closed(T)   {}

// NopHandler returns a handler whose callbacks all return without taking any
// action. Safe to share across unrelated managers.
func NopHandler[T any]() Handler[T] { return nopHandler[T]{} }
