package reactive_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/signalgraph/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// should clear subscriptions when untracked by all subscribers
func TestEffectClearSubsWhenUntracked(t *testing.T) {
	bRunTimes := 0

	rs := newSystem(t)
	a := reactive.Signal(rs, 1)
	b := reactive.Computed(rs, func(oldValue int) int {
		bRunTimes++
		return a.Get() * 2
	})
	stopEffect := reactive.Effect(rs, func() error {
		b.Get()
		return nil
	})

	assert.Equal(t, 1, bRunTimes)
	a.Set(2)
	assert.Equal(t, 2, bRunTimes)
	stopEffect()
	a.Set(3)
	assert.Equal(t, 2, bRunTimes)
}

// should not run untracked inner effect
func TestShouldNotRunUntrackedInnerEffect(t *testing.T) {
	rs := newSystem(t)
	a := reactive.Signal(rs, 3)
	b := reactive.Computed(rs, func(oldValue bool) bool {
		return a.Get() > 0
	})

	reactive.Effect(rs, func() error {
		if b.Get() {
			reactive.Effect(rs, func() error {
				if a.Get() == 0 {
					assert.Fail(t, "bad")
				}
				return nil
			})
		}
		return nil
	})

	decrement := func() {
		a.Set(a.Peek() - 1)
	}
	decrement()
	decrement()
	decrement()
}

// should run outer effect first
func TestShouldRunOuterEffectFirst(t *testing.T) {
	rs := newSystem(t)
	a := reactive.Signal(rs, 1)
	b := reactive.Signal(rs, 1)

	reactive.Effect(rs, func() error {
		if a.Get() != 0 {
			reactive.Effect(rs, func() error {
				aV, bV := a.Get(), b.Get()
				if aV == 0 {
					assert.Fail(t, "bad", "b is %d", bV)
				}
				return nil
			})
		}
		return nil
	})

	rs.StartBatch()
	a.Set(0)
	b.Set(0)
	rs.EndBatch()
}

// should not trigger inner effect when resolve maybe dirty
func TestShouldNotTriggerInnerEffectWhenResolveMaybeDirty(t *testing.T) {
	rs := newSystem(t)
	a := reactive.Signal(rs, 0)
	b := reactive.Computed(rs, func(oldValue bool) bool {
		return a.Get()%2 == 0
	})

	innerTriggerTimes := 0

	reactive.Effect(rs, func() error {
		reactive.Effect(rs, func() error {
			b.Get()
			innerTriggerTimes++
			if innerTriggerTimes >= 2 {
				assert.Fail(t, "bad")
			}
			return nil
		})
		return nil
	})

	a.Set(2)
}

// should not trigger after stop
func TestShouldNotTriggerAfterStop(t *testing.T) {
	rs := newSystem(t)

	count := reactive.Signal(rs, 0)

	triggers := 0

	stopScope := reactive.Scope(rs, func() error {
		reactive.Effect(rs, func() error {
			triggers++
			count.Get()
			return nil
		})
		return nil
	})

	assert.Equal(t, 1, triggers)
	count.Set(2)
	assert.Equal(t, 2, triggers)
	stopScope()
	count.Set(3)
	assert.Equal(t, 2, triggers)
}

func TestStopIsIdempotent(t *testing.T) {
	rs := newSystem(t)
	count := reactive.Signal(rs, 0)

	runs := 0
	stop := reactive.Effect(rs, func() error {
		count.Get()
		runs++
		return nil
	})

	stop()
	stop()
	count.Set(1)
	assert.Equal(t, 1, runs)
	assert.Empty(t, reactive.Describe(count).Subs)
}

func TestStopFromInsideCallback(t *testing.T) {
	rs := newSystem(t)
	count := reactive.Signal(rs, 0)
	other := reactive.Signal(rs, 0)

	runs := 0
	var stop reactive.StopFunc
	stop = reactive.Effect(rs, func() error {
		runs++
		if count.Get() > 0 {
			stop()
			other.Get()
		}
		return nil
	})

	count.Set(1)
	assert.Equal(t, 2, runs)

	count.Set(2)
	other.Set(1)
	assert.Equal(t, 2, runs)
	assert.Empty(t, reactive.Describe(count).Subs)
	assert.Empty(t, reactive.Describe(other).Subs)
}

func TestStopCancelsPendingRun(t *testing.T) {
	rs := newSystem(t, reactive.WithManualFlush())
	count := reactive.Signal(rs, 0)

	runs := 0
	stop := reactive.Effect(rs, func() error {
		count.Get()
		runs++
		return nil
	})

	count.Set(1)
	require.Equal(t, 1, rs.Pending())
	stop()
	rs.Flush()
	assert.Equal(t, 1, runs)
	assert.Equal(t, 0, rs.Pending())
}

func TestBatchCoalescesWrites(t *testing.T) {
	rs := newSystem(t)
	count := reactive.Signal(rs, 0)

	var seen []int
	reactive.Effect(rs, func() error {
		seen = append(seen, count.Get())
		return nil
	})

	rs.Batch(func() {
		count.Set(1)
		count.Set(2)
		count.Set(3)
		count.Set(4)
	})
	assert.Equal(t, []int{0, 4}, seen)
}

func TestBatchReadsAreResolved(t *testing.T) {
	rs := newSystem(t)
	count := reactive.Signal(rs, 1)
	doubled := reactive.Computed(rs, func(int) int { return count.Get() * 2 })

	runs := 0
	reactive.Effect(rs, func() error {
		doubled.Get()
		runs++
		return nil
	})

	rs.Batch(func() {
		count.Set(2)
		assert.Equal(t, 4, doubled.Get())
		rs.Batch(func() {
			count.Set(3)
		})
		assert.Equal(t, 1, runs, "nested batch must not flush")
		assert.Equal(t, 6, doubled.Get())
	})
	assert.Equal(t, 2, runs)
}

func TestManualFlush(t *testing.T) {
	rs := newSystem(t, reactive.WithManualFlush())
	count := reactive.Signal(rs, 0)

	var seen []int
	reactive.Effect(rs, func() error {
		seen = append(seen, count.Get())
		return nil
	})

	count.Set(1)
	count.Set(2)
	assert.Equal(t, []int{0}, seen)
	assert.Equal(t, 1, rs.Pending())

	rs.Flush()
	assert.Equal(t, []int{0, 2}, seen)
	assert.Equal(t, int64(0), rs.Stats().PendingEffects)
}

func TestEffectWritesScheduleLaterPass(t *testing.T) {
	rs := newSystem(t)
	celsius := reactive.Signal(rs, 0)
	fahrenheit := reactive.Signal(rs, 32)

	reactive.Effect(rs, func() error {
		fahrenheit.Set(celsius.Get()*9/5 + 32)
		return nil
	})

	var seen []int
	reactive.Effect(rs, func() error {
		seen = append(seen, fahrenheit.Get())
		return nil
	})

	celsius.Set(100)
	assert.Equal(t, []int{32, 212}, seen)
}

func TestFlushLimit(t *testing.T) {
	var log errorLog
	rs := reactive.New(
		reactive.WithErrorHandler(log.handler()),
		reactive.WithMaxFlushPasses(5),
	)
	count := reactive.Signal(rs, 0)

	runs := 0
	reactive.Effect(rs, func() error {
		runs++
		if v := count.Get(); v >= 100 {
			count.Set(v + 1)
		}
		return nil
	})

	count.Set(100)
	assert.Equal(t, 6, runs)
	require.Len(t, log.errs, 1)
	var limitErr *reactive.FlushLimitError
	require.ErrorAs(t, log.errs[0], &limitErr)
	assert.Equal(t, 5, limitErr.Passes)
	assert.Equal(t, 1, limitErr.Dropped)
	assert.Equal(t, 0, rs.Pending())
}

func TestEffectCleanup(t *testing.T) {
	rs := newSystem(t)
	count := reactive.Signal(rs, 0)

	var events []string
	stop := reactive.EffectWithCleanup(rs, func() (reactive.Cleanup, error) {
		count.Get()
		events = append(events, "run")
		reactive.OnCleanup(rs, func() {
			events = append(events, "registered")
		})
		return func() {
			events = append(events, "cleanup")
			count.Get() // cleanups are untracked
		}, nil
	})

	count.Set(1)
	stop()
	stop()
	assert.Equal(t, []string{
		"run",
		"cleanup", "registered",
		"run",
		"cleanup", "registered",
	}, events)
}

func TestEffectErrorsKeepSubscription(t *testing.T) {
	var log errorLog
	rs := reactive.New(reactive.WithErrorHandler(log.handler()))
	count := reactive.Signal(rs, 0)
	other := reactive.Signal(rs, 0)

	var seen []int
	reactive.NamedEffect(rs, "odd-hater", func() error {
		v := count.Get()
		if v%2 == 1 {
			return errors.New("odd")
		}
		seen = append(seen, v)
		return nil
	})
	otherRuns := 0
	reactive.Effect(rs, func() error {
		count.Get()
		other.Get()
		otherRuns++
		return nil
	})

	count.Set(1)
	require.Len(t, log.errs, 1)
	assert.EqualError(t, log.errs[0], "odd")
	assert.Equal(t, "odd-hater", log.from[0].Label)
	assert.Equal(t, reactive.KindEffect, log.from[0].Kind)
	assert.Equal(t, 2, otherRuns, "a failing effect must not stop the flush")

	count.Set(2)
	assert.Equal(t, []int{0, 2}, seen)
}

func TestEffectPanicIsRecovered(t *testing.T) {
	var log errorLog
	rs := reactive.New(reactive.WithErrorHandler(log.handler()))
	count := reactive.Signal(rs, 0)

	runs := 0
	reactive.Effect(rs, func() error {
		runs++
		if count.Get() == 1 {
			panic("boom")
		}
		return nil
	})

	assert.NotPanics(t, func() {
		count.Set(1)
	})
	require.Len(t, log.errs, 1)
	var panicErr *reactive.PanicError
	require.ErrorAs(t, log.errs[0], &panicErr)
	assert.Equal(t, "boom", panicErr.Value)

	count.Set(2)
	assert.Equal(t, 3, runs)
}

func TestScopeOwnsNestedEffects(t *testing.T) {
	rs := newSystem(t)
	a := reactive.Signal(rs, 0)
	b := reactive.Signal(rs, 0)

	var order []string
	stop := reactive.Scope(rs, func() error {
		reactive.Effect(rs, func() error {
			order = append(order, "first")
			a.Get()
			return nil
		})
		reactive.Effect(rs, func() error {
			order = append(order, "second")
			b.Get()
			return nil
		})
		reactive.OnCleanup(rs, func() {
			order = append(order, "scope cleanup")
		})
		return nil
	})

	order = order[:0]
	rs.Batch(func() {
		a.Set(1)
		b.Set(1)
	})
	assert.Equal(t, []string{"first", "second"}, order)

	order = order[:0]
	stop()
	a.Set(2)
	b.Set(2)
	assert.Equal(t, []string{"scope cleanup"}, order)
}

func TestEffectsCreatedInGetterAreOwnedByIt(t *testing.T) {
	rs := newSystem(t)
	src := reactive.Signal(rs, 0)

	live := 0
	d := reactive.Computed(rs, func(int) int {
		v := src.Get()
		reactive.EffectWithCleanup(rs, func() (reactive.Cleanup, error) {
			live++
			return func() { live-- }, nil
		})
		return v
	})
	stop := reactive.Effect(rs, func() error {
		d.Get()
		return nil
	})
	assert.Equal(t, 1, live)

	src.Set(1)
	src.Set(2)
	assert.Equal(t, 1, live, "recompute stops the previous run's effects")

	stop()
	assert.Equal(t, 0, live, "an unobserved derived node releases its effects")
}
