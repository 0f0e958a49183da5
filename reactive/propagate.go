package reactive

// Push phase. Called after a source changed value: direct subscribers turn
// dirty, everything further downstream only needs a check.
func (rs *ReactiveSystem) propagate(subs *link) {
	for l := subs; l != nil; l = l.nextSub {
		rs.mark(l.sub, StateDirty)
	}
}

func (rs *ReactiveSystem) mark(n *node, target State) {
	if n.flags&fStopped != 0 {
		return
	}
	if n.kind == KindEffect {
		rs.enqueue(n)
	}
	if n.state >= target {
		return
	}
	prev := n.state
	n.state = target
	if prev != StateClean || n.kind != KindDerived {
		return
	}
	for l := n.subs; l != nil; l = l.nextSub {
		rs.mark(l.sub, StateCheck)
	}
}

// Called after a derived node produced a new value. Subscribers that were
// only waiting on a check now know they must recompute.
func (rs *ReactiveSystem) shallowPropagate(subs *link) {
	for l := subs; l != nil; l = l.nextSub {
		if sub := l.sub; sub.state == StateCheck {
			sub.state = StateDirty
		}
	}
}

// Pull phase. Brings n up to date, recomputing it only if some dependency
// actually changed. Each derived node resolves at most once per change
// because a resolved node is clean until the next mark.
func (rs *ReactiveSystem) refresh(n *node) {
	if n.flags&fRunning != 0 {
		panic(rs.cycle(n))
	}

	if n.state == StateCheck {
		for l := n.deps; l != nil; l = l.nextDep {
			if dep := l.dep; dep.kind == KindDerived && dep.state != StateClean {
				rs.refresh(dep)
			}
			if n.state == StateDirty {
				break
			}
		}
		if n.state == StateCheck {
			n.state = StateClean
		}
	}

	if n.state != StateDirty {
		return
	}

	switch n.kind {
	case KindDerived:
		rs.recompute(n)
	case KindEffect:
		rs.runEffect(n)
	}
}

func (rs *ReactiveSystem) recompute(n *node) {
	rs.disposeOwned(n)
	rs.stats.recomputes.Add(1)
	n.state = StateClean

	prevOwner := rs.owner
	rs.owner = n
	rs.batchDepth++
	changed, completed := false, false
	func() {
		defer func() {
			rs.owner = prevOwner
			rs.batchDepth--
			if !completed {
				n.state = StateDirty
			}
		}()
		rs.runTracked(n, func() (ok bool) {
			changed, ok = n.compute()
			return ok
		})
		completed = true
	}()

	if changed {
		rs.shallowPropagate(n.subs)
	}
	if rs.batchDepth == 0 {
		rs.autoFlush()
	}
}

// runTracked makes n the active subscriber while fn runs. Every node read
// by fn is linked as a dependency of n. Dependencies from the previous run
// that fn did not read are unlinked afterwards, unless fn reports failure
// or panics.
func (rs *ReactiveSystem) runTracked(n *node, fn func() (ok bool)) {
	prevSub := rs.activeSub
	rs.activeSub = n
	rs.startTracking(n)
	ok := false
	defer func() {
		rs.activeSub = prevSub
		rs.endTracking(n, ok)
	}()
	ok = fn()
}

// track links n to the active subscriber, if any.
func (rs *ReactiveSystem) track(n *node) {
	if sub := rs.activeSub; sub != nil && sub.flags&fStopped == 0 {
		rs.link(n, sub)
	}
}

func (rs *ReactiveSystem) cycle(n *node) *CyclicDependencyError {
	err := &CyclicDependencyError{}
	start := len(rs.running)
	for i := len(rs.running) - 1; i >= 0; i-- {
		if rs.running[i] == n {
			start = i
			break
		}
	}
	for _, r := range rs.running[start:] {
		err.Path = append(err.Path, r.info())
	}
	err.Path = append(err.Path, n.info())
	return err
}
