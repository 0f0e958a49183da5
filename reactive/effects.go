package reactive

// Cleanup is called before an effect re-runs and when it stops.
type Cleanup func()

// EffectFunc is an effect body that may hand back a cleanup for its run.
type EffectFunc func() (Cleanup, error)

// StopFunc stops an effect or scope. Calling it more than once, or from
// inside the effect's own callback, is safe.
type StopFunc func()

// Effect runs fn now and again after every batch of writes that changes
// something fn read. Errors returned by fn are reported and the effect stays
// subscribed.
func Effect(rs *ReactiveSystem, fn func() error) StopFunc {
	return EffectWithCleanup(rs, func() (Cleanup, error) {
		return nil, fn()
	})
}

// EffectWithCleanup is Effect for bodies that return a cleanup.
func EffectWithCleanup(rs *ReactiveSystem, fn EffectFunc) StopFunc {
	return newEffect(rs, fn, "")
}

// NamedEffect is Effect with a label used in error reports and graph dumps.
func NamedEffect(rs *ReactiveSystem, label string, fn func() error) StopFunc {
	return newEffect(rs, func() (Cleanup, error) {
		return nil, fn()
	}, label)
}

func newEffect(rs *ReactiveSystem, fn EffectFunc, label string) StopFunc {
	e := rs.newNode(KindEffect, label)
	e.run = fn
	e.state = StateDirty
	if rs.owner != nil {
		rs.owner.children = append(rs.owner.children, e)
	}
	rs.runEffect(e)

	return func() {
		rs.stop(e)
	}
}

// Scope runs fn and takes ownership of every effect created inside it.
// Stopping the scope stops all of them and runs cleanups registered on it.
func Scope(rs *ReactiveSystem, fn func() error) StopFunc {
	s := rs.newNode(KindScope, "")
	if rs.owner != nil {
		rs.owner.children = append(rs.owner.children, s)
	}

	prevOwner := rs.owner
	rs.owner = s
	func() {
		defer func() {
			rs.owner = prevOwner
			if r := recover(); r != nil {
				rs.report(s, recovered(r))
			}
		}()
		if err := fn(); err != nil {
			rs.report(s, err)
		}
	}()

	return func() {
		rs.stop(s)
	}
}

// OnCleanup registers fn on the running effect or scope. Outside of one it
// does nothing.
func OnCleanup(rs *ReactiveSystem, fn Cleanup) {
	if rs.owner != nil && fn != nil {
		rs.owner.cleanups = append(rs.owner.cleanups, fn)
	}
}

func (rs *ReactiveSystem) runEffect(e *node) {
	rs.disposeOwned(e)
	rs.stats.effectRuns.Add(1)
	e.state = StateClean

	prevOwner := rs.owner
	rs.owner = e
	rs.batchDepth++
	defer func() {
		rs.owner = prevOwner
		rs.batchDepth--
		if rs.batchDepth == 0 {
			rs.autoFlush()
		}
	}()

	var (
		cleanup Cleanup
		err     error
	)
	rs.runTracked(e, func() (ok bool) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(r)
			}
		}()
		cleanup, err = e.run()
		return err == nil
	})
	if cleanup != nil {
		e.cleanups = append(e.cleanups, cleanup)
	}
	if err != nil {
		rs.report(e, err)
	}
	if e.flags&fStopped != 0 {
		rs.disposeOwned(e)
	}
}

// Stops owned effects and runs pending cleanups, newest first.
func (rs *ReactiveSystem) disposeOwned(owner *node) {
	children := owner.children
	owner.children = nil
	for _, child := range children {
		rs.stop(child)
	}

	cleanups := owner.cleanups
	owner.cleanups = nil
	for i := len(cleanups) - 1; i >= 0; i-- {
		rs.runCleanup(owner, cleanups[i])
	}
}

func (rs *ReactiveSystem) runCleanup(owner *node, fn Cleanup) {
	defer func() {
		if r := recover(); r != nil {
			rs.report(owner, recovered(r))
		}
	}()
	rs.Untracked(fn)
}

func (rs *ReactiveSystem) stop(n *node) {
	if n.flags&fStopped != 0 {
		return
	}
	n.flags |= fStopped
	n.state = StateClean
	if n.flags&fRunning != 0 {
		// endTracking drops the dependencies once the callback returns.
		return
	}
	rs.clearDeps(n)
	rs.disposeOwned(n)
}
