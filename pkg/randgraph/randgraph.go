// Package randgraph generates random node-link layouts: non-overlapping
// circles connected pairwise at random.
package randgraph

import (
	"errors"
	"math/rand/v2"

	"github.com/anthonybishopric/graphwidgets/pkg/geom"
)

// ErrInvalidInput is returned by Validate for a non-positive node count or a
// probability outside [0, 1].
var ErrInvalidInput = errors.New("Please enter a valid number of nodes and probability (0 to 1)")

// Options configures a generation run.
type Options struct {
	Count int
	// SkipProbability is the chance that a candidate edge is left out:
	// 0 connects every pair, 1 connects none.
	SkipProbability float64
	Bounds          geom.Bounds
	Radius          float64
	MaxAttempts     int
}

// Validate checks the user-entered parameters.
func (o Options) Validate() error {
	if o.Count <= 0 || !(o.SkipProbability >= 0 && o.SkipProbability <= 1) {
		return ErrInvalidInput
	}
	if !o.Bounds.Fits(o.Radius) {
		return errors.New("canvas is too small for the node radius")
	}
	return nil
}

// Node is a placed node. IDs are 1-based to match the drawn labels.
type Node struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Edge connects two node IDs; Source < Target.
type Edge struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// Graph is a generated graph together with the geometry it was built for.
type Graph struct {
	Nodes   []Node      `json:"nodes"`
	Edges   []Edge      `json:"edges"`
	Bounds  geom.Bounds `json:"-"`
	Radius  float64     `json:"radius"`
	Relaxed int         `json:"relaxed,omitempty"` // placements that fell back to the best effort candidate
}

// Generate builds a random graph. The same rng state yields the same graph.
func Generate(opts Options, rng *rand.Rand) (*Graph, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	placer := &geom.Placer{
		Bounds:      opts.Bounds,
		Radius:      opts.Radius,
		MaxAttempts: opts.MaxAttempts,
		Rand:        rng,
	}
	pts, relaxed := placer.PlaceAll(opts.Count)

	g := &Graph{
		Nodes:   make([]Node, len(pts)),
		Bounds:  opts.Bounds,
		Radius:  opts.Radius,
		Relaxed: relaxed,
	}
	for i, pt := range pts {
		g.Nodes[i] = Node{ID: i + 1, X: pt.X, Y: pt.Y}
	}

	for i := 0; i < len(g.Nodes); i++ {
		for j := i + 1; j < len(g.Nodes); j++ {
			if rng.Float64() >= opts.SkipProbability {
				g.Edges = append(g.Edges, Edge{Source: g.Nodes[i].ID, Target: g.Nodes[j].ID})
			}
		}
	}

	return g, nil
}

// Node returns the node with the given id.
func (g *Graph) Node(id int) (Node, bool) {
	if id < 1 || id > len(g.Nodes) {
		return Node{}, false
	}
	return g.Nodes[id-1], true
}

// MaxEdges returns C(n, 2), the largest possible edge count for n nodes.
func MaxEdges(n int) int {
	return n * (n - 1) / 2
}
