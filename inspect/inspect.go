// Package inspect renders and summarizes snapshots of a reactive graph.
package inspect

//go:generate qtc -file=dot.qtpl

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/signalgraph/reactive"
)

// Walk snapshots every node reachable from roots, sorted by id.
func Walk(rs *reactive.ReactiveSystem, roots ...reactive.Node) []reactive.NodeInfo {
	return rs.Walk(roots...)
}

// Summary counts the vertices and edges of a snapshot.
type Summary struct {
	Nodes   int
	Edges   int
	ByKind  map[reactive.Kind]int
	ByState map[reactive.State]int
	Stopped int
}

func Summarize(nodes []reactive.NodeInfo) Summary {
	s := Summary{
		Nodes:   len(nodes),
		ByKind:  map[reactive.Kind]int{},
		ByState: map[reactive.State]int{},
	}
	for _, n := range nodes {
		s.Edges += len(n.Deps)
		s.ByKind[n.Kind]++
		s.ByState[n.State]++
		if n.Stopped {
			s.Stopped++
		}
	}
	return s
}

// Fingerprint hashes the shape of a snapshot: kinds, labels and edges. Ids
// are replaced by positions, so two graphs built the same way in different
// systems hash the same. State is not part of the hash.
func Fingerprint(nodes []reactive.NodeInfo) uint64 {
	pos := make(map[uint64]uint32, len(nodes))
	for i, n := range nodes {
		pos[n.ID] = uint32(i)
	}

	d := xxhash.New()
	var buf [4]byte
	writeUint := func(v uint32) {
		binary.LittleEndian.PutUint32(buf[:], v)
		d.Write(buf[:])
	}
	for _, n := range nodes {
		d.Write([]byte{byte(n.Kind)})
		writeUint(uint32(len(n.Label)))
		d.WriteString(n.Label)
		writeUint(uint32(len(n.Deps)))
		for _, dep := range n.Deps {
			p, ok := pos[dep]
			if !ok {
				// dependency outside the snapshot
				p = ^uint32(0)
			}
			writeUint(p)
		}
	}
	return d.Sum64()
}

func displayName(n reactive.NodeInfo) string {
	if n.Label != "" {
		return n.Label
	}
	return fmt.Sprintf("%s #%d", n.Kind, n.ID)
}

// dotQuote renders s as a Graphviz quoted string. Everything except quotes,
// backslashes and newlines is written verbatim.
func dotQuote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func shape(k reactive.Kind) string {
	switch k {
	case reactive.KindSource:
		return "box"
	case reactive.KindDerived:
		return "ellipse"
	case reactive.KindEffect:
		return "diamond"
	default:
		return "octagon"
	}
}

func stateColor(s reactive.State) string {
	switch s {
	case reactive.StateCheck:
		return "orange"
	case reactive.StateDirty:
		return "red"
	default:
		return "black"
	}
}
