package reactive

// Derived is a memoized, read-only cell computed from other cells. It is
// computed lazily on first read and afterwards only when something it read
// has changed.
type Derived[T any] struct {
	node        *node
	value       T
	initialized bool
	err         error
	equals      EqualsFunc[T]
	getter      func(oldValue T) T
}

// Computed creates a derived node. The getter receives the previous value,
// or the zero value on the first run. Effects created inside the getter are
// owned by the node and stopped before it recomputes.
func Computed[T any](rs *ReactiveSystem, getter func(oldValue T) T, opts ...Option[T]) *Derived[T] {
	o := buildOptions(opts)
	d := &Derived[T]{
		node:   rs.newNode(KindDerived, o.label),
		getter: getter,
		equals: o.equals,
	}
	d.node.state = StateDirty
	d.node.compute = d.compute
	return d
}

// ComputedFrom creates a derived node whose getter returns another cell.
// The returned cell is read and tracked as well, so the node follows it.
func ComputedFrom[T any](rs *ReactiveSystem, getter func(oldValue T) Value[T], opts ...Option[T]) *Derived[T] {
	return Computed(rs, func(oldValue T) T {
		inner := getter(oldValue)
		if inner == nil {
			var zero T
			return zero
		}
		return inner.Get()
	}, opts...)
}

// Get resolves the node and records a dependency on the running derived
// node or effect. It panics with a *CyclicDependencyError when the node is
// read while it is being computed.
func (d *Derived[T]) Get() T {
	rs := d.node.rs
	rs.refresh(d.node)
	rs.track(d.node)
	return d.value
}

// Peek resolves the node without tracking.
func (d *Derived[T]) Peek() T {
	d.node.rs.refresh(d.node)
	return d.value
}

// Err returns the failure of the most recent computation, if it failed. The
// node then holds the last successfully computed value.
func (d *Derived[T]) Err() error {
	return d.err
}

func (d *Derived[T]) compute() (changed, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if cyc, isCycle := r.(*CyclicDependencyError); isCycle {
				panic(cyc)
			}
			d.err = recovered(r)
			d.node.rs.report(d.node, d.err)
			changed, ok = false, false
		}
	}()

	newValue := d.getter(d.value)
	d.err = nil
	if d.initialized && d.equals(d.value, newValue) {
		return false, true
	}
	d.value = newValue
	d.initialized = true
	return true, true
}

func (d *Derived[T]) graphNode() *node {
	return d.node
}

func (d *Derived[T]) ID() uint64 {
	return d.node.id
}

func (d *Derived[T]) Label() string {
	return d.node.label
}
