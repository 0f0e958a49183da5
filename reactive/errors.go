package reactive

import (
	"fmt"
	"strings"
)

// ImmutableNodeError is returned when a write targets a derived node.
type ImmutableNodeError struct {
	Node NodeInfo
}

func (e *ImmutableNodeError) Error() string {
	return fmt.Sprintf("reactive: cannot write %s", e.Node)
}

// CyclicDependencyError is raised when a node is read while it is being
// computed, directly or through other nodes.
type CyclicDependencyError struct {
	Path []NodeInfo
}

func (e *CyclicDependencyError) Error() string {
	parts := make([]string, len(e.Path))
	for i, n := range e.Path {
		parts[i] = n.String()
	}
	return "reactive: cyclic dependency: " + strings.Join(parts, " -> ")
}

// FlushLimitError is reported when effects keep scheduling each other past
// the configured number of flush passes.
type FlushLimitError struct {
	Passes  int
	Dropped int
}

func (e *FlushLimitError) Error() string {
	return fmt.Sprintf("reactive: flush did not settle after %d passes, dropped %d queued effects", e.Passes, e.Dropped)
}

// PanicError wraps a value recovered from a panicking getter or effect.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("reactive: panic: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func recovered(r any) error {
	if err, ok := r.(*PanicError); ok {
		return err
	}
	return &PanicError{Value: r}
}
