package randgraph

import (
	"errors"
	"math"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/anthonybishopric/graphwidgets/pkg/geom"
)

func opts(count int, p float64) Options {
	return Options{
		Count:           count,
		SkipProbability: p,
		Bounds:          geom.Bounds{Width: 600, Height: 400},
		Radius:          20,
	}
}

func rng(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

func TestGenerateAllPairsWhenNothingSkipped(t *testing.T) {
	g, err := Generate(opts(5, 0), rng(1))
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if len(g.Nodes) != 5 {
		t.Errorf("expected 5 nodes, got %d", len(g.Nodes))
	}
	if len(g.Edges) != 10 {
		t.Errorf("expected 10 edges, got %d", len(g.Edges))
	}
}

func TestGenerateNoEdgesWhenEverythingSkipped(t *testing.T) {
	g, err := Generate(opts(8, 1), rng(2))
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if len(g.Edges) != 0 {
		t.Errorf("expected no edges, got %d", len(g.Edges))
	}
}

func TestGenerateEdgeBounds(t *testing.T) {
	for seed := uint64(0); seed < 25; seed++ {
		g, err := Generate(opts(9, 0.5), rng(seed))
		if err != nil {
			t.Fatalf("generate error: %v", err)
		}
		if len(g.Edges) > MaxEdges(9) {
			t.Errorf("seed %d: %d edges exceeds C(9,2)", seed, len(g.Edges))
		}
		seen := make(map[Edge]bool)
		for _, e := range g.Edges {
			if e.Source >= e.Target {
				t.Errorf("seed %d: edge %v not ordered", seed, e)
			}
			if seen[e] {
				t.Errorf("seed %d: duplicate edge %v", seed, e)
			}
			seen[e] = true
		}
	}
}

func TestGenerateNodesDoNotOverlap(t *testing.T) {
	g, err := Generate(opts(12, 0.3), rng(9))
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	for i := range g.Nodes {
		for j := i + 1; j < len(g.Nodes); j++ {
			a := geom.Point{X: g.Nodes[i].X, Y: g.Nodes[i].Y}
			b := geom.Point{X: g.Nodes[j].X, Y: g.Nodes[j].Y}
			if d := geom.Distance(a, b); d < 2*g.Radius {
				t.Errorf("nodes %d and %d overlap (%.2f)", g.Nodes[i].ID, g.Nodes[j].ID, d)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(opts(10, 0.4), rng(42))
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	b, err := Generate(opts(10, 0.4), rng(42))
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("expected identical graphs for identical seeds")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		ok   bool
	}{
		{"valid", opts(3, 0.5), true},
		{"zero nodes", opts(0, 0.5), false},
		{"negative probability", opts(3, -0.1), false},
		{"probability above one", opts(3, 1.5), false},
		{"probability one", opts(3, 1), true},
		{"probability NaN", opts(3, math.NaN()), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestNodeLookup(t *testing.T) {
	g, err := Generate(opts(3, 0), rng(5))
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	n, ok := g.Node(2)
	if !ok || n.ID != 2 {
		t.Errorf("expected node 2, got %+v (ok=%v)", n, ok)
	}
	if _, ok := g.Node(4); ok {
		t.Error("expected node 4 to be missing")
	}
}
