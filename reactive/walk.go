package reactive

import (
	"fmt"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// Node is implemented by *Source and *Derived.
type Node interface {
	graphNode() *node
}

// NodeInfo is a read-only snapshot of one graph vertex.
type NodeInfo struct {
	ID      uint64
	Kind    Kind
	State   State
	Label   string
	Stopped bool
	Deps    []uint64
	Subs    []uint64
}

func (n NodeInfo) String() string {
	if n.Label != "" {
		return fmt.Sprintf("%s %q", n.Kind, n.Label)
	}
	return fmt.Sprintf("%s #%d", n.Kind, n.ID)
}

// Describe snapshots n including the ids of its direct neighbours.
func Describe(n Node) NodeInfo {
	return describe(n.graphNode())
}

func describe(n *node) NodeInfo {
	info := n.info()
	for l := n.deps; l != nil; l = l.nextDep {
		info.Deps = append(info.Deps, l.dep.id)
	}
	for l := n.subs; l != nil; l = l.nextSub {
		info.Subs = append(info.Subs, l.sub.id)
	}
	return info
}

// Walk visits every node connected to roots, following edges in both
// directions, and returns their snapshots ordered by id.
func (rs *ReactiveSystem) Walk(roots ...Node) []NodeInfo {
	visited := mapset.NewThreadUnsafeSet[*node]()
	stack := make([]*node, 0, len(roots))
	for _, r := range roots {
		if r == nil {
			continue
		}
		if n := r.graphNode(); n.rs == rs {
			stack = append(stack, n)
		}
	}

	var infos []NodeInfo
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visited.Add(n) {
			continue
		}
		infos = append(infos, describe(n))
		for l := n.deps; l != nil; l = l.nextDep {
			stack = append(stack, l.dep)
		}
		for l := n.subs; l != nil; l = l.nextSub {
			stack = append(stack, l.sub)
		}
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}
