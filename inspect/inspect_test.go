package inspect_test

import (
	"bytes"
	"testing"

	"github.com/delaneyj/signalgraph/inspect"
	"github.com/delaneyj/signalgraph/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type diamond struct {
	rs   *reactive.ReactiveSystem
	a    *reactive.Source[int]
	d    *reactive.Derived[int]
	stop reactive.StopFunc
}

//	  a
//	 / \
//	b   c
//	 \ /
//	  d
//	  |
//	 log
func buildDiamond(t *testing.T) *diamond {
	t.Helper()
	rs := reactive.New(reactive.WithErrorHandler(func(from reactive.NodeInfo, err error) {
		assert.FailNow(t, err.Error(), "from %s", from)
	}))
	a := reactive.Signal(rs, 1, reactive.WithLabel[int]("a"))
	b := reactive.Computed(rs, func(int) int { return a.Get() + 1 }, reactive.WithLabel[int]("b"))
	c := reactive.Computed(rs, func(int) int { return a.Get() * 2 }, reactive.WithLabel[int]("c"))
	d := reactive.Computed(rs, func(int) int { return b.Get() + c.Get() }, reactive.WithLabel[int]("d"))
	stop := reactive.NamedEffect(rs, "log", func() error {
		d.Get()
		return nil
	})
	return &diamond{rs: rs, a: a, d: d, stop: stop}
}

func TestWriteDOT(t *testing.T) {
	g := buildDiamond(t)
	nodes := inspect.Walk(g.rs, g.a)
	require.Len(t, nodes, 5)

	var buf bytes.Buffer
	inspect.WriteDOT(&buf, nodes)
	dot := buf.String()

	assert.Equal(t, dot, inspect.DOT(nodes))
	assert.Contains(t, dot, "digraph signals {\n")
	assert.Contains(t, dot, `n1 [label="a", shape=box, color=black];`)
	assert.Contains(t, dot, `n4 [label="d", shape=ellipse, color=black];`)
	assert.Contains(t, dot, `n5 [label="log", shape=diamond, color=black];`)
	assert.Contains(t, dot, "n1 -> n2;")
	assert.Contains(t, dot, "n1 -> n3;")
	assert.Contains(t, dot, "n2 -> n4;")
	assert.Contains(t, dot, "n3 -> n4;")
	assert.Contains(t, dot, "n4 -> n5;")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("}\n")))
}

func TestWriteDOTShowsStateAndStopped(t *testing.T) {
	rs := reactive.New()
	src := reactive.Signal(rs, 1)
	derived := reactive.Computed(rs, func(int) int { return src.Get() })
	derived.Get()
	stop := reactive.Effect(rs, func() error {
		src.Get()
		return nil
	})

	before := inspect.Walk(rs, src)
	stop()
	src.Set(2)

	dot := inspect.DOT(inspect.Walk(rs, src))
	assert.Contains(t, dot, `n2 [label="derived #2", shape=ellipse, color=red];`)
	assert.NotContains(t, dot, "n3 ")
	assert.Contains(t, inspect.DOT(before), `n3 [label="effect #3", shape=diamond, color=black];`)
}

func TestFingerprintIgnoresIDsAndState(t *testing.T) {
	first := buildDiamond(t)
	second := buildDiamond(t)

	fp := inspect.Fingerprint(inspect.Walk(first.rs, first.a))
	assert.Equal(t, fp, inspect.Fingerprint(inspect.Walk(second.rs, second.a)))

	first.rs.Batch(func() {
		first.a.Set(10)
		assert.Equal(t, fp, inspect.Fingerprint(inspect.Walk(first.rs, first.a)))
	})

	first.stop()
	assert.NotEqual(t, fp, inspect.Fingerprint(inspect.Walk(first.rs, first.a)))
}

func TestSummarize(t *testing.T) {
	g := buildDiamond(t)
	s := inspect.Summarize(inspect.Walk(g.rs, g.d))

	assert.Equal(t, 5, s.Nodes)
	assert.Equal(t, 5, s.Edges)
	assert.Equal(t, 1, s.ByKind[reactive.KindSource])
	assert.Equal(t, 3, s.ByKind[reactive.KindDerived])
	assert.Equal(t, 1, s.ByKind[reactive.KindEffect])
	assert.Equal(t, 5, s.ByState[reactive.StateClean])
	assert.Zero(t, s.Stopped)
}

func TestWriteDOTQuotesLabelsForGraphviz(t *testing.T) {
	rs := reactive.New()
	src := reactive.Signal(rs, 0, reactive.WithLabel[int](`a<b 'c' "d" \e`))
	multi := reactive.Signal(rs, 0, reactive.WithLabel[int]("two\nlines"))

	dot := inspect.DOT(inspect.Walk(rs, src, multi))
	assert.Contains(t, dot, `n1 [label="a<b 'c' \"d\" \\e", shape=box, color=black];`)
	assert.Contains(t, dot, `n2 [label="two\nlines", shape=box, color=black];`)
	assert.NotContains(t, dot, `\u00`)
}
