package reactive

// Kind tags a graph node.
type Kind uint8

const (
	KindSource Kind = iota
	KindDerived
	KindEffect
	KindScope
)

func (k Kind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindDerived:
		return "derived"
	case KindEffect:
		return "effect"
	case KindScope:
		return "scope"
	default:
		return "unknown"
	}
}

// State is the cache state of a node. The levels are totally ordered:
// StateClean < StateCheck < StateDirty.
type State uint8

const (
	StateClean State = iota // cached value is valid
	StateCheck              // an ancestor changed, dependencies must be checked before trusting the value
	StateDirty              // a direct dependency changed, the value must be recomputed
)

func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateCheck:
		return "check"
	case StateDirty:
		return "dirty"
	default:
		return "unknown"
	}
}

type nodeFlags uint8

const (
	fRunning nodeFlags = 1 << iota
	fQueued
	fStopped
)

type link struct {
	dep     *node
	sub     *node
	prevSub *link
	nextSub *link
	nextDep *link
}

// node is the single vertex shape shared by every kind. Kind specific
// behavior is selected by switching on kind.
type node struct {
	rs    *ReactiveSystem
	id    uint64
	label string
	kind  Kind
	state State
	flags nodeFlags

	deps, depsTail, subs, subsTail *link

	runID    uint64 // stamp of the latest tracked run
	linkedIn uint64 // runID of the run that last linked this node

	// derived
	compute func() (changed, ok bool)

	// effect
	run EffectFunc

	// effect, scope and derived
	cleanups []Cleanup
	children []*node
}

func (n *node) info() NodeInfo {
	return NodeInfo{
		ID:      n.id,
		Kind:    n.kind,
		State:   n.state,
		Label:   n.label,
		Stopped: n.flags&fStopped != 0,
	}
}
