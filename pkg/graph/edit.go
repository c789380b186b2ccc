package graph

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Validation error kinds, matched with errors.Is.
var (
	ErrNotANumber    = errors.New("not a number")
	ErrDuplicateNode = errors.New("duplicate node")
	ErrUnknownNode   = errors.New("unknown node")
	ErrMissingSource = errors.New("missing source node")
	ErrMissingTarget = errors.New("missing target node")
	ErrDuplicateEdge = errors.New("duplicate edge")
	ErrBadPosition   = errors.New("invalid position")
)

// ValidationError is a rejected edit. Silent errors are not shown to the
// user; the edit is simply ignored.
type ValidationError struct {
	Op     string
	Kind   error
	Msg    string
	Silent bool
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// IsSilent reports whether err is a rejection that should not be surfaced.
func IsSilent(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Silent
}

// ParseID parses a node id as typed by the user.
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%q: %w", raw, ErrNotANumber)
	}
	return id, nil
}

// Rules holds the edge policy switches.
type Rules struct {
	// RejectReverseUndirected treats b->a as a duplicate of a->b in
	// undirected mode. Off by default: a reverse edge is accepted in both
	// modes.
	RejectReverseUndirected bool
}

// AddNode adds node raw. A non-numeric or already present id is ignored.
func AddNode(s State, raw string) (State, error) {
	id, err := ParseID(raw)
	if err != nil {
		return s, &ValidationError{Op: "add node", Kind: ErrNotANumber, Msg: err.Error(), Silent: true}
	}
	if s.HasNode(id) {
		return s, &ValidationError{
			Op:     "add node",
			Kind:   ErrDuplicateNode,
			Msg:    fmt.Sprintf("Node %d already exists.", id),
			Silent: true,
		}
	}
	c := s.Clone()
	c.Nodes = append(c.Nodes, Node{ID: id})
	return c, nil
}

// RemoveNode removes node raw together with every edge touching it.
// Removing an id that is not present leaves the graph as it is.
func RemoveNode(s State, raw string) (State, error) {
	id, err := ParseID(raw)
	if err != nil {
		return s, &ValidationError{Op: "remove node", Kind: ErrNotANumber, Msg: err.Error(), Silent: true}
	}
	c := State{Mode: s.Mode}
	for _, n := range s.Clone().Nodes {
		if n.ID != id {
			c.Nodes = append(c.Nodes, n)
		}
	}
	for _, e := range s.Edges {
		if e.Source != id && e.Target != id {
			c.Edges = append(c.Edges, e)
		}
	}
	return c, nil
}

// AddEdge adds source->target using the default Rules.
func AddEdge(s State, source, target string) (State, error) {
	return Rules{}.AddEdge(s, source, target)
}

// AddEdge adds source->target. Both endpoints must exist and the exact edge
// must not.
func (r Rules) AddEdge(s State, source, target string) (State, error) {
	src, err := ParseID(source)
	if err != nil || !s.HasNode(src) {
		return s, &ValidationError{
			Op:   "add edge",
			Kind: ErrMissingSource,
			Msg:  fmt.Sprintf("Source node %s does not exist.", strings.TrimSpace(source)),
		}
	}
	dst, err := ParseID(target)
	if err != nil || !s.HasNode(dst) {
		return s, &ValidationError{
			Op:   "add edge",
			Kind: ErrMissingTarget,
			Msg:  fmt.Sprintf("Target node %s does not exist.", strings.TrimSpace(target)),
		}
	}

	dup := s.HasEdge(src, dst)
	if !dup && r.RejectReverseUndirected && s.Mode == Undirected {
		dup = s.HasEdge(dst, src)
	}
	if dup {
		return s, &ValidationError{
			Op:   "add edge",
			Kind: ErrDuplicateEdge,
			Msg:  fmt.Sprintf("Edge from %d to %d already exists.", src, dst),
		}
	}

	c := s.Clone()
	c.Edges = append(c.Edges, Edge{Source: src, Target: dst})
	return c, nil
}

// SetMode discards every node and edge and switches to mode.
func SetMode(_ State, mode Mode) State {
	return New(mode)
}

// Pin holds node id at (x, y), as during a drag gesture.
func Pin(s State, id int, x, y float64) (State, error) {
	i := s.Index(id)
	if i < 0 {
		return s, &ValidationError{Op: "pin", Kind: ErrUnknownNode, Msg: fmt.Sprintf("Node %d does not exist.", id)}
	}
	if !finite(x) || !finite(y) {
		return s, &ValidationError{Op: "pin", Kind: ErrBadPosition, Msg: fmt.Sprintf("Position (%g, %g) is not a valid point.", x, y)}
	}
	c := s.Clone()
	c.Nodes[i].X, c.Nodes[i].Y = x, y
	c.Nodes[i].Fx, c.Nodes[i].Fy = &x, &y
	return c, nil
}

// Release lets a pinned node move freely again.
func Release(s State, id int) (State, error) {
	i := s.Index(id)
	if i < 0 {
		return s, &ValidationError{Op: "release", Kind: ErrUnknownNode, Msg: fmt.Sprintf("Node %d does not exist.", id)}
	}
	c := s.Clone()
	c.Nodes[i].Fx, c.Nodes[i].Fy = nil, nil
	return c, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
