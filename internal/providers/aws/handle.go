package aws

import "fmt"

// NotInitializedError is returned by an unavailable Handle. It is permanent
// for the lifetime of the process.
type NotInitializedError struct {
	Component string
	Cause     error
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("%s client not initialized", e.Component)
}

func (e *NotInitializedError) Unwrap() error {
	return e.Cause
}

// Handle is either an available client or the reason it could not be built.
// The client is only reachable through Client, which forces callers to deal
// with the unavailable variant.
type Handle[T any] struct {
	component string
	client    T
	cause     error
	available bool
}

func Available[T any](component string, client T) Handle[T] {
	return Handle[T]{
		component: component,
		client:    client,
		available: true,
	}
}

func Unavailable[T any](component string, cause error) Handle[T] {
	return Handle[T]{
		component: component,
		cause:     cause,
	}
}

// Client returns the wrapped client or a *NotInitializedError.
func (h Handle[T]) Client() (T, error) {
	if !h.available {
		var zero T
		return zero, &NotInitializedError{
			Component: h.component,
			Cause:     h.cause,
		}
	}
	return h.client, nil
}

func (h Handle[T]) IsAvailable() bool {
	return h.available
}

func (h Handle[T]) Component() string {
	return h.component
}
