// Package pages holds the data state of list pages. A list starts Loading
// and settles exactly once as Empty, Populated or Failed.
package pages

import (
	"context"
	"errors"

	"github.com/soundplus/storefront/internal/apiclient"
)

type State int

const (
	Loading State = iota
	Empty
	Populated
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Empty:
		return "empty"
	case Populated:
		return "populated"
	case Failed:
		return "failed"
	}
	return "unknown"
}

type List[T any] struct {
	State State
	Items []T
	Err   error
}

func NewList[T any]() *List[T] {
	return &List[T]{State: Loading}
}

// Load runs fetch and settles the list. A list that already settled is
// left untouched.
func (l *List[T]) Load(ctx context.Context, fetch func(context.Context) ([]T, error)) *List[T] {
	if l.State != Loading {
		return l
	}
	items, err := fetch(ctx)
	switch {
	case err != nil:
		l.State, l.Err = Failed, err
	case len(items) == 0:
		l.State, l.Items = Empty, []T{}
	default:
		l.State, l.Items = Populated, items
	}
	return l
}

func (l *List[T]) IsLoading() bool   { return l.State == Loading }
func (l *List[T]) IsEmpty() bool     { return l.State == Empty }
func (l *List[T]) IsPopulated() bool { return l.State == Populated }
func (l *List[T]) IsFailed() bool    { return l.State == Failed }
func (l *List[T]) Count() int        { return len(l.Items) }

// ErrorMessage is the text shown for a failed fetch.
func (l *List[T]) ErrorMessage() string {
	if l.Err == nil {
		return ""
	}
	var apiErr *apiclient.APIError
	if errors.As(l.Err, &apiErr) {
		return apiErr.Error()
	}
	if errors.Is(l.Err, context.DeadlineExceeded) {
		return "the request timed out"
	}
	return "something went wrong"
}
