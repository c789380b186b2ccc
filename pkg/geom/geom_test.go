package geom

import (
	"math"
	"math/rand/v2"
	"testing"
)

func newPlacer(seed uint64) *Placer {
	return &Placer{
		Bounds: Bounds{Width: 600, Height: 400},
		Radius: 20,
		Rand:   rand.New(rand.NewPCG(seed, seed)),
	}
}

func TestPlaceAllKeepsDistance(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		p := newPlacer(seed)
		pts, relaxed := p.PlaceAll(15)
		if relaxed != 0 {
			t.Fatalf("seed %d: expected no relaxed placements, got %d", seed, relaxed)
		}
		for i := range pts {
			for j := i + 1; j < len(pts); j++ {
				if d := Distance(pts[i], pts[j]); d < 2*p.Radius {
					t.Errorf("seed %d: points %d and %d are %.2f apart", seed, i, j, d)
				}
			}
		}
	}
}

func TestPlaceStaysInsideBounds(t *testing.T) {
	p := newPlacer(7)
	pts, _ := p.PlaceAll(30)
	for i, pt := range pts {
		if pt.X < p.Radius || pt.X > p.Bounds.Width-p.Radius {
			t.Errorf("point %d x=%.2f outside inset bounds", i, pt.X)
		}
		if pt.Y < p.Radius || pt.Y > p.Bounds.Height-p.Radius {
			t.Errorf("point %d y=%.2f outside inset bounds", i, pt.Y)
		}
	}
}

func TestPlaceRelaxesWhenCrowded(t *testing.T) {
	// Only one circle fits in a 50x50 canvas with radius 20.
	p := &Placer{
		Bounds:      Bounds{Width: 50, Height: 50},
		Radius:      20,
		MaxAttempts: 50,
		Rand:        rand.New(rand.NewPCG(3, 3)),
	}
	pts, relaxed := p.PlaceAll(4)
	if len(pts) != 4 {
		t.Fatalf("expected 4 points, got %d", len(pts))
	}
	if relaxed != 3 {
		t.Errorf("expected 3 relaxed placements, got %d", relaxed)
	}
}

func TestFits(t *testing.T) {
	if !(Bounds{Width: 600, Height: 400}).Fits(20) {
		t.Error("expected radius 20 to fit 600x400")
	}
	if (Bounds{Width: 30, Height: 400}).Fits(20) {
		t.Error("expected radius 20 not to fit width 30")
	}
}

func TestInset(t *testing.T) {
	s := Segment{From: Point{X: 0, Y: 0}, To: Point{X: 100, Y: 0}}

	got := Inset(s, 1, 10)
	if got != s {
		t.Errorf("scale 1 should not move endpoints, got %+v", got)
	}

	// scale 3 -> offset 20 -> each end moves 10
	got = Inset(s, 3, 10)
	if math.Abs(got.From.X-10) > 1e-9 || math.Abs(got.To.X-90) > 1e-9 {
		t.Errorf("unexpected inset at scale 3: %+v", got)
	}
	if got.From.Y != 0 || got.To.Y != 0 {
		t.Errorf("inset should stay on the segment line: %+v", got)
	}
}

func TestInsetDiagonal(t *testing.T) {
	s := Segment{From: Point{X: 0, Y: 0}, To: Point{X: 30, Y: 40}}
	got := Inset(s, 2, 10) // offset 10, each end moves 5 along (0.6, 0.8)
	if math.Abs(got.From.X-3) > 1e-9 || math.Abs(got.From.Y-4) > 1e-9 {
		t.Errorf("unexpected source end: %+v", got.From)
	}
	if math.Abs(got.To.X-27) > 1e-9 || math.Abs(got.To.Y-36) > 1e-9 {
		t.Errorf("unexpected target end: %+v", got.To)
	}
}

func TestInsetZeroLength(t *testing.T) {
	s := Segment{From: Point{X: 5, Y: 5}, To: Point{X: 5, Y: 5}}
	if got := Inset(s, 4, 10); got != s {
		t.Errorf("zero-length segment changed: %+v", got)
	}
}
