// Package graph holds the state of the interactive graph builder and the
// edit operations on it. Every operation is a pure function: it returns a new
// State and leaves its input untouched, so a rejected edit keeps the prior
// state by construction.
package graph

import (
	"fmt"
	"slices"
	"strings"
)

// Mode selects whether edges have a direction.
type Mode int

const (
	Undirected Mode = iota
	Directed
)

func (m Mode) String() string {
	if m == Directed {
		return "directed"
	}
	return "undirected"
}

// ParseMode parses "directed" or "undirected".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "directed", "digraph":
		return Directed, nil
	case "undirected", "graph":
		return Undirected, nil
	}
	return Undirected, fmt.Errorf("unknown graph mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Node is a builder node. Fx and Fy are set while the node is pinned.
type Node struct {
	ID int      `json:"id" yaml:"id"`
	X  float64  `json:"x" yaml:"x"`
	Y  float64  `json:"y" yaml:"y"`
	Fx *float64 `json:"fx,omitempty" yaml:"fx,omitempty"`
	Fy *float64 `json:"fy,omitempty" yaml:"fy,omitempty"`
}

// Pinned reports whether the node is held in place.
func (n Node) Pinned() bool {
	return n.Fx != nil && n.Fy != nil
}

// Edge is an ordered pair of node ids.
type Edge struct {
	Source int `json:"source" yaml:"source"`
	Target int `json:"target" yaml:"target"`
}

// Reverse returns the edge with its endpoints swapped.
func (e Edge) Reverse() Edge {
	return Edge{Source: e.Target, Target: e.Source}
}

// State is the full builder graph.
type State struct {
	Mode  Mode   `json:"mode" yaml:"mode"`
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// New returns an empty graph in the given mode.
func New(mode Mode) State {
	return State{Mode: mode}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := State{
		Mode:  s.Mode,
		Nodes: make([]Node, len(s.Nodes)),
		Edges: slices.Clone(s.Edges),
	}
	for i, n := range s.Nodes {
		c.Nodes[i] = n
		if n.Fx != nil {
			fx := *n.Fx
			c.Nodes[i].Fx = &fx
		}
		if n.Fy != nil {
			fy := *n.Fy
			c.Nodes[i].Fy = &fy
		}
	}
	return c
}

// Index returns the position of node id in s.Nodes, or -1.
func (s State) Index(id int) int {
	return slices.IndexFunc(s.Nodes, func(n Node) bool { return n.ID == id })
}

// HasNode reports whether node id exists.
func (s State) HasNode(id int) bool {
	return s.Index(id) >= 0
}

// HasEdge reports whether the exact edge (source, target) exists.
func (s State) HasEdge(source, target int) bool {
	return slices.Contains(s.Edges, Edge{Source: source, Target: target})
}

// IDs returns the node ids in insertion order.
func (s State) IDs() []int {
	ids := make([]int, len(s.Nodes))
	for i, n := range s.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// WithPositions returns a copy of s with node positions replaced by pos
// wherever pos reports ok.
func (s State) WithPositions(pos func(id int) (x, y float64, ok bool)) State {
	c := s.Clone()
	for i := range c.Nodes {
		if x, y, ok := pos(c.Nodes[i].ID); ok {
			c.Nodes[i].X = x
			c.Nodes[i].Y = y
		}
	}
	return c
}
