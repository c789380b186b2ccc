// Package d3 provides types and functions for generating D3.js visualizations
// of the random graph and the graph builder.
package d3

import (
	"github.com/anthonybishopric/graphwidgets/pkg/focus"
	"github.com/anthonybishopric/graphwidgets/pkg/geom"
	"github.com/anthonybishopric/graphwidgets/pkg/graph"
	"github.com/anthonybishopric/graphwidgets/pkg/layout"
	"github.com/anthonybishopric/graphwidgets/pkg/randgraph"
)

// EdgeOffset is the per-zoom-level inset applied to both ends of a random
// graph edge: at scale k each end moves EdgeOffset*(k-1)/2 toward the other.
const EdgeOffset = 10.0

// NodeRadius is the drawn radius of builder nodes.
const NodeRadius = 20.0

// Graph represents a graph structure for D3 rendering.
type Graph struct {
	Nodes    []Node  `json:"nodes"`
	Links    []Link  `json:"links"`
	Directed bool    `json:"directed"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Radius   float64 `json:"radius"`
}

// Node represents a node for D3 visualization.
type Node struct {
	ID int      `json:"id"`
	X  float64  `json:"x"`
	Y  float64  `json:"y"`
	Fx *float64 `json:"fx,omitempty"` // pinned position
	Fy *float64 `json:"fy,omitempty"`
}

// Link represents an edge for D3 visualization. The line endpoints are only
// set for the random graph, where positions are fixed.
type Link struct {
	Source int      `json:"source"`
	Target int      `json:"target"`
	Line   *Segment `json:"line,omitempty"`
}

// Segment is a drawn line.
type Segment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// FromRandom converts a generated graph. Edge lines are inset for the view
// scale k so the page opens with the same geometry it draws after a zoom.
func FromRandom(g *randgraph.Graph, k float64) *Graph {
	out := &Graph{
		Nodes:  make([]Node, 0, len(g.Nodes)),
		Links:  make([]Link, 0, len(g.Edges)),
		Width:  g.Bounds.Width,
		Height: g.Bounds.Height,
		Radius: g.Radius,
	}
	for _, n := range g.Nodes {
		out.Nodes = append(out.Nodes, Node{ID: n.ID, X: n.X, Y: n.Y})
	}
	for _, e := range g.Edges {
		src, _ := g.Node(e.Source)
		dst, _ := g.Node(e.Target)
		s := geom.Inset(geom.Segment{
			From: geom.Point{X: src.X, Y: src.Y},
			To:   geom.Point{X: dst.X, Y: dst.Y},
		}, k, EdgeOffset)
		out.Links = append(out.Links, Link{
			Source: e.Source,
			Target: e.Target,
			Line:   &Segment{X1: s.From.X, Y1: s.From.Y, X2: s.To.X, Y2: s.To.Y},
		})
	}
	return out
}

// FromState converts a builder graph laid out on a cfg.Width x cfg.Height
// canvas.
func FromState(st graph.State, cfg layout.Config) *Graph {
	out := &Graph{
		Nodes:    make([]Node, 0, len(st.Nodes)),
		Links:    make([]Link, 0, len(st.Edges)),
		Directed: st.Mode == graph.Directed,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Radius:   NodeRadius,
	}
	for _, n := range st.Nodes {
		out.Nodes = append(out.Nodes, Node{ID: n.ID, X: n.X, Y: n.Y, Fx: n.Fx, Fy: n.Fy})
	}
	for _, e := range st.Edges {
		out.Links = append(out.Links, Link{Source: e.Source, Target: e.Target})
	}
	return out
}

// Zoom is the click-to-focus configuration handed to the random graph page.
type Zoom struct {
	Scale      float64         `json:"scale"`
	DurationMS int64           `json:"durationMs"`
	MinScale   float64         `json:"minScale"`
	MaxScale   float64         `json:"maxScale"`
	Offset     float64         `json:"offset"`
	Initial    focus.Transform `json:"initial"`
	FocusID    int             `json:"focusId,omitempty"`
}

// Force is the simulation configuration handed to the builder page.
type Force struct {
	LinkDistance  float64 `json:"linkDistance"`
	Charge        float64 `json:"charge"`
	AlphaMin      float64 `json:"alphaMin"`
	VelocityDecay float64 `json:"velocityDecay"`
}

func forceOf(cfg layout.Config) Force {
	return Force{
		LinkDistance:  cfg.LinkDistance,
		Charge:        cfg.Charge,
		AlphaMin:      cfg.AlphaMin,
		VelocityDecay: cfg.VelocityDecay,
	}
}
