// Package pipeline models fallible steps as data so callers can chain
// fallbacks without panics or sentinel values
package pipeline

import (
	"context"
	"errors"
)

// Result is the outcome of one step: a value or an error, tagged with where it came from
type Result[T any] struct {
	Value  T
	Err    error
	Source string
}

// OK reports whether the step succeeded
func (r Result[T]) OK() bool { return r.Err == nil }

// Success builds a successful Result
func Success[T any](source string, v T) Result[T] { return Result[T]{Value: v, Source: source} }

// Failure builds a failed Result
func Failure[T any](source string, err error) Result[T] {
	if err == nil {
		err = ErrNoResult
	}
	return Result[T]{Err: err, Source: source}
}

// Of wraps a (value, error) pair
func Of[T any](source string, v T, err error) Result[T] {
	if err != nil {
		return Failure[T](source, err)
	}
	return Success(source, v)
}

// ErrNoResult marks a step that completed without producing anything usable
var ErrNoResult = errors.New("no result")

// Step is one named, fallible stage
type Step[T any] struct {
	Source string
	Run    func(context.Context) (T, error)
}

// FirstOK runs steps in order and returns the first success.
// When every step fails the last failure is returned with all errors joined.
// A cancelled ctx stops the chain before the next step
func FirstOK[T any](ctx context.Context, steps ...Step[T]) Result[T] {
	var errs []error
	last := Failure[T]("", ErrNoResult)
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		v, err := s.Run(ctx)
		if err == nil {
			return Success(s.Source, v)
		}
		errs = append(errs, err)
		last = Failure[T](s.Source, err)
	}
	if len(errs) > 0 {
		last.Err = errors.Join(errs...)
	}
	return last
}

// Values returns the values of successful results, in order
func Values[T any](rs []Result[T]) []T {
	out := make([]T, 0, len(rs))
	for _, r := range rs {
		if r.OK() {
			out = append(out, r.Value)
		}
	}
	return out
}
