package reactive

func (rs *ReactiveSystem) enqueue(n *node) {
	if n.flags&(fQueued|fStopped) != 0 {
		return
	}
	n.flags |= fQueued
	rs.queue = append(rs.queue, n)
	rs.stats.pending.Add(1)
}

func (rs *ReactiveSystem) autoFlush() {
	if rs.manualFlush {
		return
	}
	rs.flush()
}

// Flush runs every queued effect. Effects queued while flushing run in a
// later pass of the same flush. It is a no-op inside a batch or when a flush
// is already in progress.
func (rs *ReactiveSystem) Flush() {
	if rs.batchDepth != 0 {
		return
	}
	rs.flush()
}

func (rs *ReactiveSystem) flush() {
	if rs.flushing || len(rs.queue) == 0 {
		return
	}
	rs.flushing = true
	defer func() {
		rs.flushing = false
	}()
	rs.stats.flushes.Add(1)

	for passes := 0; len(rs.queue) > 0; passes++ {
		if passes == rs.maxPasses {
			dropped := rs.dropQueue()
			rs.report(nil, &FlushLimitError{Passes: passes, Dropped: dropped})
			return
		}

		pass := rs.queue
		rs.queue = rs.spare[:0]
		for i, n := range pass {
			pass[i] = nil
			n.flags &^= fQueued
			rs.stats.pending.Add(-1)
			if n.flags&fStopped != 0 {
				continue
			}
			rs.notify(n)
		}
		rs.spare = pass[:0]
	}
}

func (rs *ReactiveSystem) dropQueue() int {
	dropped := len(rs.queue)
	for i, n := range rs.queue {
		n.flags &^= fQueued
		n.state = StateClean
		rs.queue[i] = nil
	}
	rs.queue = rs.queue[:0]
	rs.stats.pending.Add(-int64(dropped))
	return dropped
}

// notify resolves a queued effect. A cycle raised while resolving its
// dependencies is reported against the effect instead of aborting the flush.
func (rs *ReactiveSystem) notify(n *node) {
	defer func() {
		if r := recover(); r != nil {
			n.state = StateClean
			rs.report(n, recovered(r))
		}
	}()
	rs.refresh(n)
}
