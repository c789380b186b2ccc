// Package geom provides the small amount of plane geometry the widgets need:
// non-overlapping point placement and zoom-dependent edge insets.
package geom

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultMaxAttempts bounds the number of samples Place draws before it falls
// back to the best candidate seen.
const DefaultMaxAttempts = 1000

// Point is a position on the canvas.
type Point = r2.Vec

// Bounds is the drawable canvas area, anchored at the origin.
type Bounds struct {
	Width  float64
	Height float64
}

// Fits reports whether a circle of radius r fits inside the bounds.
func (b Bounds) Fits(r float64) bool {
	return b.Width > 2*r && b.Height > 2*r
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return r2.Norm(r2.Sub(p, q))
}

// Placer samples non-overlapping circle centres.
type Placer struct {
	Bounds      Bounds
	Radius      float64
	MaxAttempts int // <= 0 means DefaultMaxAttempts
	Rand        *rand.Rand
}

// Place returns a point inside the bounds (inset by the radius) whose distance
// to every point in existing is at least twice the radius. When no such point
// is found within MaxAttempts samples, the candidate with the largest minimum
// distance is returned and relaxed is true.
func (p *Placer) Place(existing []Point) (pt Point, relaxed bool) {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	minDist := 2 * p.Radius

	var best Point
	bestDist := -1.0
	for i := 0; i < attempts; i++ {
		c := p.sample()
		d := nearest(c, existing)
		if d >= minDist {
			return c, false
		}
		if d > bestDist {
			best, bestDist = c, d
		}
	}
	return best, true
}

// PlaceAll places n points one after another.
// It returns the points and how many of them needed the relaxed fallback.
func (p *Placer) PlaceAll(n int) ([]Point, int) {
	pts := make([]Point, 0, n)
	relaxed := 0
	for i := 0; i < n; i++ {
		pt, r := p.Place(pts)
		if r {
			relaxed++
		}
		pts = append(pts, pt)
	}
	return pts, relaxed
}

func (p *Placer) sample() Point {
	return Point{
		X: p.Rand.Float64()*(p.Bounds.Width-2*p.Radius) + p.Radius,
		Y: p.Rand.Float64()*(p.Bounds.Height-2*p.Radius) + p.Radius,
	}
}

// nearest returns the distance from c to the closest point, or +Inf.
func nearest(c Point, pts []Point) float64 {
	d := math.Inf(1)
	for _, q := range pts {
		if dq := Distance(c, q); dq < d {
			d = dq
		}
	}
	return d
}

// Segment is a line between two points.
type Segment struct {
	From Point
	To   Point
}

// Inset pulls both ends of s toward each other by half of
// offset*(scale-1) along the segment direction, keeping lines clear of
// circles that grow with the zoom level. Zero-length segments are returned
// unchanged.
func Inset(s Segment, scale, offset float64) Segment {
	d := r2.Sub(s.To, s.From)
	if r2.Norm(d) == 0 {
		return s
	}
	shift := r2.Scale(offset*(scale-1)/2, r2.Unit(d))
	return Segment{
		From: r2.Add(s.From, shift),
		To:   r2.Sub(s.To, shift),
	}
}
