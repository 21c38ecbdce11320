package threadpool

import (
	"fmt"
	"runtime"
)

// PanicError carries the value a task panicked with, together with the
// stack of the worker goroutine at the point of the panic.
//
// Future.Get returns a *PanicError when the task's closure panicked;
// Value holds the original payload unchanged.
type PanicError struct {
	Value any
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: task panicked: %v", Namespace, e.Value)
}

// Unwrap exposes the payload when the task panicked with an error value.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func newPanicError(v any) *PanicError {
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{Value: v, Stack: string(buf[:n])}
}
