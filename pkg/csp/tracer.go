package csp

import (
	"fmt"
	"io"
)

// SearchPosition describes a node of the search tree at the moment it
// was abandoned.
type SearchPosition interface {
	Assigned() []Identifier
	Assignment(id Identifier) (int, bool)
	Conflict() string
}

// Tracer is notified whenever the search abandons a branch.
type Tracer interface {
	Trace(p SearchPosition)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ SearchPosition) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(p SearchPosition) {
	fmt.Fprintf(t.Writer, "---\nAssignments:\n")
	for _, id := range p.Assigned() {
		v, _ := p.Assignment(id)
		fmt.Fprintf(t.Writer, "- %s=%d\n", id, v)
	}
	fmt.Fprintf(t.Writer, "Conflict:\n- %s\n", p.Conflict())
}
