package reactive

// Dependencies of a subscriber form a singly linked list threaded through
// nextDep. The same link objects also form the doubly linked subscriber list
// of each dependency, so both directions always stay in sync.
//
// While a subscriber is running, depsTail marks the last dependency confirmed
// by the current run. Links after depsTail belong to the previous run and are
// removed by endTracking unless they get re-read.

// Prepares sub to record a fresh dependency set.
func (rs *ReactiveSystem) startTracking(sub *node) {
	rs.runs++
	sub.runID = rs.runs
	sub.depsTail = nil
	sub.flags |= fRunning
	rs.running = append(rs.running, sub)
}

// Drops every dependency the last run did not read again. A run that did
// not complete keeps them instead, so a change to an input it never reached
// still retries it.
func (rs *ReactiveSystem) endTracking(sub *node, completed bool) {
	rs.running = rs.running[:len(rs.running)-1]
	sub.flags &^= fRunning

	if sub.flags&fStopped != 0 {
		rs.clearDeps(sub)
		return
	}
	if !completed {
		rs.keepUnreached(sub)
		return
	}

	depsTail := sub.depsTail
	if depsTail != nil {
		if nextDep := depsTail.nextDep; nextDep != nil {
			rs.clearTracking(nextDep)
			depsTail.nextDep = nil
		}
		return
	}
	if sub.deps != nil {
		rs.clearTracking(sub.deps)
		sub.deps = nil
	}
}

// Confirms the links after depsTail, dropping those whose dependency the
// failed run already linked again.
func (rs *ReactiveSystem) keepUnreached(sub *node) {
	confirmed := sub.depsTail
	prev := confirmed
	var l *link
	if prev != nil {
		l = prev.nextDep
	} else {
		l = sub.deps
	}

	for l != nil {
		nextDep := l.nextDep
		if rs.isTracked(l.dep, sub, confirmed) {
			if prev != nil {
				prev.nextDep = nextDep
			} else {
				sub.deps = nextDep
			}
			rs.unlink(l)
		} else {
			prev = l
		}
		l = nextDep
	}
	sub.depsTail = prev
}

func (rs *ReactiveSystem) clearDeps(sub *node) {
	if sub.deps != nil {
		rs.clearTracking(sub.deps)
	}
	sub.deps = nil
	sub.depsTail = nil
}

// Links dep to sub unless the current run already did.
func (rs *ReactiveSystem) link(dep, sub *node) {
	currentDep := sub.depsTail
	if currentDep != nil && currentDep.dep == dep {
		return
	}

	var nextDep *link
	if currentDep != nil {
		nextDep = currentDep.nextDep
	} else {
		nextDep = sub.deps
	}
	if nextDep != nil && nextDep.dep == dep {
		sub.depsTail = nextDep
		dep.linkedIn = sub.runID
		return
	}

	if rs.isTracked(dep, sub, currentDep) {
		return
	}

	rs.linkNewDep(dep, sub, nextDep, currentDep)
	dep.linkedIn = sub.runID
}

// Reports whether dep is among the links of sub up to and including tail.
// dep.linkedIn holds the run that last linked dep. Runs are numbered in
// start order, so an older stamp proves sub has not linked dep yet. A newer
// one means a nested run overwrote it and the list has to be searched.
func (rs *ReactiveSystem) isTracked(dep, sub *node, tail *link) bool {
	if tail == nil || dep.linkedIn < sub.runID {
		return false
	}
	if dep.linkedIn == sub.runID {
		return true
	}
	for l := sub.deps; l != nil; l = l.nextDep {
		if l.dep == dep {
			return true
		}
		if l == tail {
			break
		}
	}
	return false
}

func (rs *ReactiveSystem) linkNewDep(dep, sub *node, nextDep, depsTail *link) *link {
	newLink := &link{
		dep:     dep,
		sub:     sub,
		nextDep: nextDep,
	}

	if depsTail == nil {
		sub.deps = newLink
	} else {
		depsTail.nextDep = newLink
	}

	if dep.subs == nil {
		dep.subs = newLink
	} else {
		oldTail := dep.subsTail
		newLink.prevSub = oldTail
		oldTail.nextSub = newLink
	}

	sub.depsTail = newLink
	dep.subsTail = newLink

	return newLink
}

// Unlinks every link from l onwards along the nextDep chain.
func (rs *ReactiveSystem) clearTracking(l *link) {
	for l != nil {
		nextDep := l.nextDep
		rs.unlink(l)
		l = nextDep
	}
}

// Removes l from its dependency's subscriber list. A derived node that loses
// its last subscriber releases its own dependencies and owned effects and
// turns dirty, so nothing upstream keeps it reachable.
func (rs *ReactiveSystem) unlink(l *link) {
	dep := l.dep
	nextSub := l.nextSub
	prevSub := l.prevSub

	if nextSub != nil {
		nextSub.prevSub = prevSub
	} else {
		dep.subsTail = prevSub
	}
	if prevSub != nil {
		prevSub.nextSub = nextSub
	} else {
		dep.subs = nextSub
	}
	l.dep, l.sub, l.nextDep, l.nextSub, l.prevSub = nil, nil, nil, nil, nil

	if dep.subs == nil && dep.kind == KindDerived && dep.flags&fRunning == 0 {
		dep.state = StateDirty
		rs.clearDeps(dep)
		rs.disposeOwned(dep)
	}
}
