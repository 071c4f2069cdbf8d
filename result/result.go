// Package result holds the three-state outcome returned by every conversion
// step: a value, an explicit decline, or a failure with a diagnostic.
package result

import (
	"errors"
	"fmt"
)

// Kind is the variant of a Result.
type Kind int32

const (
	Success Kind = iota + 1
	Ignored
	Failure
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "Success"
	case Ignored:
		return "Ignored"
	case Failure:
		return "Failure"
	default:
		return fmt.Sprintf("Kind(%d)", int32(k))
	}
}

// Result is the outcome of a conversion step.
//
// Ignored means a rule declined on purpose: it is not an error, but there is
// no usable value either. The zero Result is a Failure.
type Result[T any] struct {
	kind   Kind
	value  T
	reason string
}

// Of wraps v as a Success.
func Of[T any](v T) Result[T] {
	return Result[T]{kind: Success, value: v}
}

// Ignore returns an Ignored result carrying reason.
func Ignore[T any](reason string) Result[T] {
	return Result[T]{kind: Ignored, reason: reason}
}

// Fail returns a Failure carrying reason.
func Fail[T any](reason string) Result[T] {
	return Result[T]{kind: Failure, reason: reason}
}

// Failf is Fail with a format string.
func Failf[T any](format string, args ...any) Result[T] {
	return Fail[T](fmt.Sprintf(format, args...))
}

func (r Result[T]) Kind() Kind {
	if r.kind == 0 {
		return Failure
	}
	return r.kind
}

func (r Result[T]) IsSuccess() bool { return r.Kind() == Success }

func (r Result[T]) IsIgnored() bool { return r.Kind() == Ignored }

func (r Result[T]) IsFailure() bool { return r.Kind() == Failure }

// NonFailure reports whether r is a Success or an Ignored.
func (r Result[T]) NonFailure() bool { return r.Kind() != Failure }

// Value returns the wrapped value. It is the zero T unless r is a Success.
func (r Result[T]) Value() T { return r.value }

// Reason returns the diagnostic of an Ignored or a Failure.
func (r Result[T]) Reason() string { return r.reason }

// Err returns nil for Success and Ignored, and an error carrying the reason
// for a Failure.
func (r Result[T]) Err() error {
	if r.NonFailure() {
		return nil
	}
	return errors.New(r.reason)
}

func (r Result[T]) String() string {
	switch r.Kind() {
	case Success:
		return fmt.Sprintf("Success(%v)", r.value)
	default:
		return fmt.Sprintf("%s(%s)", r.Kind(), r.reason)
	}
}

// Map applies f to the value of a Success. Ignored and Failure results keep
// their variant and reason.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.IsSuccess() {
		return Of(f(r.value))
	}
	return Result[U]{kind: r.Kind(), reason: r.reason}
}

// FlatMap chains a step that itself yields a Result.
func FlatMap[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	if r.IsSuccess() {
		return f(r.value)
	}
	return Result[U]{kind: r.Kind(), reason: r.reason}
}

// Cast re-types an Ignored or Failure result. It panics on a Success, whose
// value cannot be carried over.
func Cast[U, T any](r Result[T]) Result[U] {
	if r.IsSuccess() {
		panic("result: Cast of a Success")
	}
	return Result[U]{kind: r.Kind(), reason: r.reason}
}
