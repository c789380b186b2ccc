package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/anthonybishopric/graphwidgets/pkg/graph"
)

func state(t *testing.T, ids []string, edges [][2]string) graph.State {
	t.Helper()
	s := graph.New(graph.Undirected)
	var err error
	for _, id := range ids {
		if s, err = graph.AddNode(s, id); err != nil {
			t.Fatalf("add node: %v", err)
		}
	}
	for _, e := range edges {
		if s, err = graph.AddEdge(s, e[0], e[1]); err != nil {
			t.Fatalf("add edge: %v", err)
		}
	}
	return s
}

func dist(a, b Body) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func TestRestStateDoesNotTick(t *testing.T) {
	sim := New(DefaultConfig())
	sim.Sync(state(t, []string{"1", "2"}, nil))
	if !sim.Converged() {
		t.Error("a new simulation should be at rest")
	}
	if n := sim.Run(100); n != 0 {
		t.Errorf("expected 0 ticks, got %d", n)
	}
}

func TestRestartRunsToConvergence(t *testing.T) {
	sim := New(DefaultConfig())
	sim.Sync(state(t, []string{"1", "2", "3"}, [][2]string{{"1", "2"}, {"2", "3"}}))
	sim.Restart()
	if sim.Alpha() != 1 {
		t.Fatalf("expected alpha 1 after restart, got %v", sim.Alpha())
	}

	n := sim.Run(1000)
	if !sim.Converged() {
		t.Fatalf("expected convergence, alpha=%v", sim.Alpha())
	}
	if n < 299 || n > 302 {
		t.Errorf("expected about 300 ticks, got %d", n)
	}
}

func TestLinkedPairSettlesNearLinkDistance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Charge = 0
	sim := New(cfg)
	sim.Sync(state(t, []string{"1", "2"}, [][2]string{{"1", "2"}}))
	sim.Restart()
	sim.Run(1000)

	b := sim.Bodies()
	if d := dist(b[0], b[1]); math.Abs(d-cfg.LinkDistance) > 10 {
		t.Errorf("expected distance near %v, got %.2f", cfg.LinkDistance, d)
	}
}

func TestChargeSeparatesNodes(t *testing.T) {
	sim := New(DefaultConfig())
	sim.Sync(state(t, []string{"1", "2", "3", "4", "5"}, nil))
	sim.Restart()
	sim.Run(1000)

	b := sim.Bodies()
	for i := range b {
		for j := i + 1; j < len(b); j++ {
			if d := dist(b[i], b[j]); d < 20 {
				t.Errorf("nodes %d and %d only %.2f apart", b[i].ID, b[j].ID, d)
			}
		}
	}
}

func TestCenterOfMassIsCanvasCenter(t *testing.T) {
	cfg := DefaultConfig()
	sim := New(cfg)
	sim.Sync(state(t, []string{"1", "2", "3"}, [][2]string{{"1", "2"}}))
	sim.Restart()
	sim.Run(1000)

	var sx, sy float64
	b := sim.Bodies()
	for _, n := range b {
		sx += n.X
		sy += n.Y
	}
	sx /= float64(len(b))
	sy /= float64(len(b))
	if math.Abs(sx-cfg.Width/2) > 1e-3 || math.Abs(sy-cfg.Height/2) > 1e-3 {
		t.Errorf("expected centre (%v, %v), got (%.4f, %.4f)", cfg.Width/2, cfg.Height/2, sx, sy)
	}
}

func TestPinnedNodeStaysPut(t *testing.T) {
	s := state(t, []string{"1", "2", "3"}, [][2]string{{"1", "2"}, {"1", "3"}})
	s, err := graph.Pin(s, 1, 50, 70)
	if err != nil {
		t.Fatalf("pin: %v", err)
	}

	sim := New(DefaultConfig())
	sim.Sync(s)
	sim.Restart()
	for i := 0; i < 200; i++ {
		sim.Tick()
		x, y, _ := sim.Position(1)
		if x != 50 || y != 70 {
			t.Fatalf("tick %d: pinned node moved to (%.2f, %.2f)", i, x, y)
		}
	}
}

func TestDragGesture(t *testing.T) {
	sim := New(DefaultConfig())
	sim.Sync(state(t, []string{"1", "2"}, [][2]string{{"1", "2"}}))
	sim.Restart()
	sim.Run(1000)

	before := sim.Alpha()
	if err := sim.DragStart(1); err != nil {
		t.Fatalf("drag start: %v", err)
	}
	if sim.Alpha() != before || sim.AlphaTarget() != dragAlpha {
		t.Errorf("drag start should only raise the target, alpha=%v target=%v", sim.Alpha(), sim.AlphaTarget())
	}
	if sim.Converged() {
		t.Error("simulation should not be converged during a drag")
	}
	if err := sim.Drag(1, 10, 20); err != nil {
		t.Fatalf("drag: %v", err)
	}
	if n := sim.Run(500); n != 500 {
		t.Errorf("simulation should stay warm during a drag, ran %d ticks", n)
	}
	if a := sim.Alpha(); a < 0.29 || a > dragAlpha {
		t.Errorf("alpha should approach the drag target, got %v", a)
	}
	if x, y, _ := sim.Position(1); x != 10 || y != 20 {
		t.Errorf("dragged node at (%.2f, %.2f)", x, y)
	}

	if err := sim.DragEnd(1); err != nil {
		t.Fatalf("drag end: %v", err)
	}
	if sim.AlphaTarget() != 0 {
		t.Errorf("expected target 0 after release, got %v", sim.AlphaTarget())
	}
	sim.Run(2000)
	if !sim.Converged() {
		t.Error("expected convergence after release")
	}

	if err := sim.DragStart(9); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("expected ErrUnknownNode, got %v", err)
	}
}

func TestSyncDropsRemovedDrags(t *testing.T) {
	sim := New(DefaultConfig())
	s := state(t, []string{"1", "2"}, nil)
	sim.Sync(s)
	if err := sim.DragStart(1); err != nil {
		t.Fatal(err)
	}

	s, _ = graph.RemoveNode(s, "1")
	sim.Sync(s)
	if sim.AlphaTarget() != 0 {
		t.Errorf("removing the dragged node should end the drag, target=%v", sim.AlphaTarget())
	}
}

func TestSyncKeepsExistingPositions(t *testing.T) {
	sim := New(DefaultConfig())
	s := state(t, []string{"1", "2"}, [][2]string{{"1", "2"}})
	sim.Sync(s)
	sim.Restart()
	sim.Run(1000)
	x1, y1, _ := sim.Position(1)

	s, _ = graph.AddNode(s, "3")
	sim.Sync(s)
	x, y, ok := sim.Position(1)
	if !ok || x != x1 || y != y1 {
		t.Errorf("node 1 moved on sync: (%.2f, %.2f) -> (%.2f, %.2f)", x1, y1, x, y)
	}
	if _, _, ok := sim.Position(3); !ok {
		t.Error("node 3 missing after sync")
	}

	s, _ = graph.RemoveNode(s, "1")
	sim.Sync(s)
	if _, _, ok := sim.Position(1); ok {
		t.Error("node 1 still simulated after removal")
	}
}

func TestSyncUsesStatePositions(t *testing.T) {
	s := state(t, []string{"1"}, nil)
	s.Nodes[0].X, s.Nodes[0].Y = 123, 45

	sim := New(DefaultConfig())
	sim.Sync(s)
	if x, y, _ := sim.Position(1); x != 123 || y != 45 {
		t.Errorf("expected (123, 45), got (%.2f, %.2f)", x, y)
	}
}
