package focus

import (
	"math"
	"testing"
)

func TestClickFocusesNode(t *testing.T) {
	c := NewController(600, 400)
	n := Target{ID: 1, X: 100, Y: 50}

	tr := c.Click(n)
	if !tr.Focused || tr.NodeID != 1 {
		t.Fatalf("expected focus on node 1, got %+v", tr)
	}
	if tr.Duration != DefaultDuration {
		t.Errorf("expected duration %v, got %v", DefaultDuration, tr.Duration)
	}

	// The focused node lands at the viewport centre.
	x, y := n.X*tr.To.K+tr.To.X, n.Y*tr.To.K+tr.To.Y
	if math.Abs(x-300) > 1e-9 || math.Abs(y-200) > 1e-9 {
		t.Errorf("node should map to the centre, got (%.2f, %.2f)", x, y)
	}
	if tr.To.K != DefaultScale {
		t.Errorf("expected scale %v, got %v", DefaultScale, tr.To.K)
	}
}

func TestClickSameNodeTwiceReturnsToIdentity(t *testing.T) {
	c := NewController(600, 400)
	n := Target{ID: 4, X: 320, Y: 90}

	c.Click(n)
	tr := c.Click(n)
	if tr.Focused {
		t.Error("expected idle after second click")
	}
	if tr.To != Identity {
		t.Errorf("expected identity transform, got %v", tr.To)
	}
	if _, ok := c.Focused(); ok {
		t.Error("controller still reports a focused node")
	}
}

func TestClickOtherNodeMovesFocus(t *testing.T) {
	c := NewController(600, 400)
	a := Target{ID: 1, X: 100, Y: 100}
	b := Target{ID: 2, X: 400, Y: 300}

	c.Click(a)
	tr := c.Click(b)
	if !tr.Focused || tr.NodeID != 2 {
		t.Fatalf("expected focus on node 2, got %+v", tr)
	}
	got, ok := c.Focused()
	if !ok || got.ID != 2 {
		t.Errorf("expected focused node 2, got %+v", got)
	}
	if c.Current() != c.FocusTransform(b) {
		t.Error("current transform does not match focused node")
	}
}

func TestReset(t *testing.T) {
	c := NewController(600, 400)
	c.Click(Target{ID: 1, X: 10, Y: 10})
	tr := c.Reset()
	if tr.To != Identity || c.Current() != Identity {
		t.Errorf("expected identity after reset, got %v", c.Current())
	}
}

func TestFocusScaleIsClamped(t *testing.T) {
	c := NewController(600, 400)
	n := Target{ID: 1, X: 100, Y: 50}

	c.Scale = 40
	if got := c.FocusTransform(n); got.K != MaxScale || got.X != 300-MaxScale*100 {
		t.Errorf("expected scale %v centred on the node, got %+v", MaxScale, got)
	}
	c.Scale = 0.1
	if got := c.FocusTransform(n).K; got != MinScale {
		t.Errorf("expected %v, got %v", MinScale, got)
	}
	c.Scale = 2
	if got := c.FocusTransform(n).K; got != 2 {
		t.Errorf("in-range scale changed: %v", got)
	}
}
