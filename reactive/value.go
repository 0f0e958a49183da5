package reactive

import (
	"fmt"
	"reflect"
)

// Value is anything that can be read with or without tracking.
type Value[T any] interface {
	Get() T
	Peek() T
}

var (
	_ Value[int] = (*Source[int])(nil)
	_ Value[int] = (*Derived[int])(nil)
	_ Value[int] = Constant[int]{}
)

// Constant is a plain value dressed up as a Value. It never changes and
// is never tracked.
type Constant[T any] struct {
	v T
}

func Const[T any](v T) Constant[T] {
	return Constant[T]{v: v}
}

func (c Constant[T]) Get() T  { return c.v }
func (c Constant[T]) Peek() T { return c.v }

// Read returns the value of v with tracking when v is a Value[T]; a plain T
// is returned unchanged.
func Read[T any](v any) T {
	switch v := v.(type) {
	case nil:
		var zero T
		return zero
	case Value[T]:
		return v.Get()
	case T:
		return v
	default:
		panic(fmt.Sprintf("reactive: cannot read %T as %s", v, reflect.TypeFor[T]()))
	}
}

// PeekValue is Read without tracking.
func PeekValue[T any](v any) T {
	switch v := v.(type) {
	case nil:
		var zero T
		return zero
	case Value[T]:
		return v.Peek()
	case T:
		return v
	default:
		panic(fmt.Sprintf("reactive: cannot peek %T as %s", v, reflect.TypeFor[T]()))
	}
}

// Write sets target when it is a Source. Any other Value is read-only and
// yields an *ImmutableNodeError.
func Write[T any](target Value[T], next T) error {
	switch t := target.(type) {
	case *Source[T]:
		t.Set(next)
		return nil
	case *Derived[T]:
		return &ImmutableNodeError{Node: t.node.info()}
	default:
		return &ImmutableNodeError{Node: NodeInfo{Label: fmt.Sprintf("%T", target)}}
	}
}
