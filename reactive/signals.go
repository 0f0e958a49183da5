package reactive

// Source is a writable cell. It has no dependencies of its own.
type Source[T any] struct {
	node   *node
	value  T
	equals EqualsFunc[T]
}

func Signal[T any](rs *ReactiveSystem, initialValue T, opts ...Option[T]) *Source[T] {
	o := buildOptions(opts)
	return &Source[T]{
		node:   rs.newNode(KindSource, o.label),
		value:  initialValue,
		equals: o.equals,
	}
}

// Get returns the current value and records a dependency on the running
// derived node or effect.
func (s *Source[T]) Get() T {
	s.node.rs.track(s.node)
	return s.value
}

// Peek returns the current value without tracking.
func (s *Source[T]) Peek() T {
	return s.value
}

// Set stores v and, if it differs from the current value, marks every
// dependent stale and schedules reachable effects.
func (s *Source[T]) Set(v T) {
	if s.equals(s.value, v) {
		return
	}
	s.value = v

	rs := s.node.rs
	rs.stats.writes.Add(1)
	if subs := s.node.subs; subs != nil {
		rs.propagate(subs)
		if rs.batchDepth == 0 {
			rs.autoFlush()
		}
	}
}

func (s *Source[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

func (s *Source[T]) graphNode() *node {
	return s.node
}

func (s *Source[T]) ID() uint64 {
	return s.node.id
}

func (s *Source[T]) Label() string {
	return s.node.label
}
