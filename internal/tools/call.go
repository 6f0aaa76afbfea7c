package tools

import (
	"context"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
)

type callResult[T any] struct {
	value T
	err   error
}

// invoke runs a blocking remote call on its own goroutine and waits for it.
// The call gets a context detached from the caller's cancellation: once a
// request has been sent it runs to completion (or to the transport
// timeouts), and a mutation is only stopped through cancel_resource_request.
func invoke[T any](ctx context.Context, op operation, call func(context.Context) (T, error)) (T, error) {
	done := make(chan callResult[T], 1)
	callCtx := context.WithoutCancel(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logrus.WithField("tool", op.Name).Errorf("Recovered from panic in remote call: %v", r)
				done <- callResult[T]{err: fmt.Errorf("remote call panicked: %v", r)}
			}
		}()

		value, err := call(callCtx)
		done <- callResult[T]{value: value, err: err}
	}()

	result := <-done
	return result.value, result.err
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
