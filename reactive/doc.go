// Package reactive is a fine-grained reactive dependency graph.
//
// A graph is made of three kinds of node owned by one ReactiveSystem:
//
//   - Source nodes hold a value that callers write with Set.
//   - Derived nodes memoize a getter computed from other nodes.
//   - Effects run a callback for its side effects whenever something it
//     read has changed.
//
// Reading a node while a derived getter or effect runs links the two. A
// write marks direct dependents dirty and everything further down as
// needing a check. Derived nodes are pulled fresh lazily on read, at most
// once per change even when several paths lead to them, and an unchanged
// result stops propagation. Effects are queued during marking and flushed
// once per batch of writes.
//
//	rs := reactive.New()
//	count := reactive.Signal(rs, 1)
//	doubled := reactive.Computed(rs, func(int) int { return count.Get() * 2 })
//	stop := reactive.Effect(rs, func() error {
//		fmt.Println(doubled.Get())
//		return nil
//	})
//	defer stop()
//	count.Set(5) // prints 10
//
// A ReactiveSystem is not safe for concurrent use.
package reactive
