package reactive

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// EqualsFunc decides whether a new value is the same as the cached one.
// Equal values do not propagate.
type EqualsFunc[T any] func(a, b T) bool

type options[T any] struct {
	equals EqualsFunc[T]
	label  string
}

type Option[T any] func(*options[T])

func WithEquals[T any](fn EqualsFunc[T]) Option[T] {
	return func(o *options[T]) {
		o.equals = fn
	}
}

// WithDeepEquals compares values structurally with go-cmp.
func WithDeepEquals[T any](opts ...cmp.Option) Option[T] {
	return func(o *options[T]) {
		o.equals = func(a, b T) bool {
			return cmp.Equal(a, b, opts...)
		}
	}
}

// WithLabel names the node in error reports and graph dumps.
func WithLabel[T any](label string) Option[T] {
	return func(o *options[T]) {
		o.label = label
	}
}

func buildOptions[T any](opts []Option[T]) options[T] {
	o := options[T]{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.equals == nil {
		o.equals = identical[T]()
	}
	return o
}

// identical compares with ==. Types that can never be compared with ==
// (slices, maps, funcs) always count as changed, and so does an interface
// holding such a value.
func identical[T any]() EqualsFunc[T] {
	if !reflect.TypeFor[T]().Comparable() {
		return func(a, b T) bool {
			return false
		}
	}
	return func(a, b T) (equal bool) {
		defer func() {
			if recover() != nil {
				equal = false
			}
		}()
		return any(a) == any(b)
	}
}
