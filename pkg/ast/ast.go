// Package ast defines the syntax tree for builder scripts.
package ast

import (
	"fmt"
	"strings"

	"github.com/anthonybishopric/graphwidgets/pkg/graph"
	"github.com/anthonybishopric/graphwidgets/pkg/token"
)

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() token.Position
}

// Command is one builder command.
type Command interface {
	Node
	fmt.Stringer
	commandNode()
}

// Script is a parsed script: commands in source order.
type Script struct {
	Filename string
	Commands []Command
}

// Ident is a raw literal as written. Node ids are kept unparsed.
type Ident struct {
	Position token.Position
	Name     string
	Quoted   bool
}

func (i *Ident) Pos() token.Position { return i.Position }

// ModeCmd switches between directed and undirected graphs: mode directed
type ModeCmd struct {
	Position token.Position
	Mode     graph.Mode
}

func (c *ModeCmd) Pos() token.Position { return c.Position }
func (c *ModeCmd) commandNode()        {}
func (c *ModeCmd) String() string      { return "mode " + c.Mode.String() }

// AddNodeCmd adds one or more nodes: node 1 2 3
type AddNodeCmd struct {
	Position token.Position
	IDs      []*Ident
}

func (c *AddNodeCmd) Pos() token.Position { return c.Position }
func (c *AddNodeCmd) commandNode()        {}
func (c *AddNodeCmd) String() string      { return "node " + joinIdents(c.IDs) }

// RemoveNodeCmd removes one or more nodes: remove 2
type RemoveNodeCmd struct {
	Position token.Position
	IDs      []*Ident
}

func (c *RemoveNodeCmd) Pos() token.Position { return c.Position }
func (c *RemoveNodeCmd) commandNode()        {}
func (c *RemoveNodeCmd) String() string      { return "remove " + joinIdents(c.IDs) }

// AddEdgeCmd adds a chain of edges: edge 1 -> 2 -> 3 adds 1->2 and 2->3.
// The operator is optional for a single edge: edge 1 2
type AddEdgeCmd struct {
	Position token.Position
	Chain    []*Ident
}

func (c *AddEdgeCmd) Pos() token.Position { return c.Position }
func (c *AddEdgeCmd) commandNode()        {}
func (c *AddEdgeCmd) String() string {
	names := make([]string, len(c.Chain))
	for i, id := range c.Chain {
		names[i] = id.Name
	}
	return "edge " + strings.Join(names, " -> ")
}

// Pairs returns the (source, target) pairs of the chain.
func (c *AddEdgeCmd) Pairs() [][2]*Ident {
	var out [][2]*Ident
	for i := 0; i+1 < len(c.Chain); i++ {
		out = append(out, [2]*Ident{c.Chain[i], c.Chain[i+1]})
	}
	return out
}

// PinCmd fixes a node at a position: pin 3 120 80
type PinCmd struct {
	Position token.Position
	ID       *Ident
	X, Y     float64
}

func (c *PinCmd) Pos() token.Position { return c.Position }
func (c *PinCmd) commandNode()        {}
func (c *PinCmd) String() string      { return fmt.Sprintf("pin %s %g %g", c.ID.Name, c.X, c.Y) }

// ReleaseCmd unpins a node: release 3
type ReleaseCmd struct {
	Position token.Position
	ID       *Ident
}

func (c *ReleaseCmd) Pos() token.Position { return c.Position }
func (c *ReleaseCmd) commandNode()        {}
func (c *ReleaseCmd) String() string      { return "release " + c.ID.Name }

func joinIdents(ids []*Ident) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Name
	}
	return strings.Join(names, " ")
}
