// Package layout runs a force-directed layout over a builder graph.
//
// The simulation follows the d3-force model: an energy value (alpha) starts
// at 1 and decays toward a target each tick, scaling a link force, a
// many-body repulsion and a centring force. The simulation is done once alpha
// falls below AlphaMin.
package layout

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/anthonybishopric/graphwidgets/pkg/graph"
)

// ErrUnknownNode is returned by drag operations on ids not in the simulation.
var ErrUnknownNode = errors.New("layout: unknown node")

const (
	initialRadius = 10.0
	dragAlpha     = 0.3
)

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// Config holds the simulation parameters.
type Config struct {
	Width         float64
	Height        float64
	LinkDistance  float64
	Charge        float64
	AlphaMin      float64
	VelocityDecay float64
}

// DefaultConfig matches the builder page: 600x400 canvas, links of 100px and
// a -400 charge.
func DefaultConfig() Config {
	return Config{
		Width:         600,
		Height:        400,
		LinkDistance:  100,
		Charge:        -400,
		AlphaMin:      0.001,
		VelocityDecay: 0.4,
	}
}

// Body is a node as seen by the simulation.
type Body struct {
	ID     int
	X, Y   float64
	VX, VY float64
	Fx, Fy *float64
}

func (b *Body) pinned() bool {
	return b.Fx != nil && b.Fy != nil
}

type link struct {
	source, target int // indexes into bodies
	strength       float64
	bias           float64
}

// Simulation is a force simulation. It is not safe for concurrent use.
type Simulation struct {
	cfg         Config
	bodies      []*Body
	index       map[int]int
	links       []link
	alpha       float64
	alphaTarget float64
	alphaDecay  float64
	rng         *rand.Rand
	dragging    map[int]bool
}

// New returns an empty simulation at rest.
func New(cfg Config) *Simulation {
	def := DefaultConfig()
	if cfg.AlphaMin <= 0 {
		cfg.AlphaMin = def.AlphaMin
	}
	if cfg.VelocityDecay <= 0 {
		cfg.VelocityDecay = def.VelocityDecay
	}
	return &Simulation{
		cfg:        cfg,
		index:      make(map[int]int),
		dragging:   make(map[int]bool),
		alphaDecay: 1 - math.Pow(cfg.AlphaMin, 1.0/300),
		rng:        rand.New(rand.NewPCG(1, 2)),
	}
}

// Sync replaces the simulated graph with st. Nodes already simulated keep
// their position and velocity. New nodes take their position from st when it
// is set (or pinned) and are otherwise seeded on a phyllotaxis spiral.
func (s *Simulation) Sync(st graph.State) {
	prev := s.bodies
	prevIndex := s.index

	s.bodies = make([]*Body, len(st.Nodes))
	s.index = make(map[int]int, len(st.Nodes))
	for i, n := range st.Nodes {
		var b *Body
		if j, ok := prevIndex[n.ID]; ok {
			b = prev[j]
		} else {
			b = &Body{ID: n.ID, X: n.X, Y: n.Y}
			if !n.Pinned() && n.X == 0 && n.Y == 0 {
				r := initialRadius * math.Sqrt(0.5+float64(i))
				a := float64(i) * initialAngle
				b.X, b.Y = r*math.Cos(a), r*math.Sin(a)
			}
		}
		b.Fx, b.Fy = n.Fx, n.Fy
		if b.pinned() {
			b.X, b.Y, b.VX, b.VY = *b.Fx, *b.Fy, 0, 0
		}
		s.bodies[i] = b
		s.index[n.ID] = i
	}

	for id := range s.dragging {
		if _, ok := s.index[id]; !ok {
			delete(s.dragging, id)
		}
	}
	if len(s.dragging) == 0 {
		s.alphaTarget = 0
	}

	count := make([]int, len(s.bodies))
	s.links = s.links[:0]
	for _, e := range st.Edges {
		si, ok1 := s.index[e.Source]
		ti, ok2 := s.index[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		count[si]++
		count[ti]++
		s.links = append(s.links, link{source: si, target: ti})
	}
	for i := range s.links {
		l := &s.links[i]
		l.strength = 1 / float64(min(count[l.source], count[l.target]))
		l.bias = float64(count[l.source]) / float64(count[l.source]+count[l.target])
	}
}

// Restart puts the simulation back at full energy.
func (s *Simulation) Restart() {
	s.alpha = 1
}

// Alpha returns the current energy.
func (s *Simulation) Alpha() float64 {
	return s.alpha
}

// AlphaTarget returns the energy the simulation decays toward.
func (s *Simulation) AlphaTarget() float64 {
	return s.alphaTarget
}

// Converged reports whether the energy fell below AlphaMin. A simulation held
// warm by a drag never converges.
func (s *Simulation) Converged() bool {
	return s.alpha < s.cfg.AlphaMin && s.alphaTarget < s.cfg.AlphaMin
}

// Run ticks until the simulation converges or maxTicks ticks have run,
// returning the number of ticks.
func (s *Simulation) Run(maxTicks int) int {
	n := 0
	for n < maxTicks && !s.Converged() {
		s.Tick()
		n++
	}
	return n
}

// Tick advances the simulation by one step.
func (s *Simulation) Tick() {
	s.alpha += (s.alphaTarget - s.alpha) * s.alphaDecay

	s.applyLinks()
	s.applyCharge()
	s.applyCenter()

	keep := 1 - s.cfg.VelocityDecay
	for _, b := range s.bodies {
		if b.pinned() {
			b.X, b.Y = *b.Fx, *b.Fy
			b.VX, b.VY = 0, 0
			continue
		}
		b.VX *= keep
		b.VY *= keep
		b.X += b.VX
		b.Y += b.VY
	}
}

func (s *Simulation) jiggle() float64 {
	return (s.rng.Float64() - 0.5) * 1e-6
}

func (s *Simulation) applyLinks() {
	for _, l := range s.links {
		src, dst := s.bodies[l.source], s.bodies[l.target]
		x := dst.X + dst.VX - src.X - src.VX
		y := dst.Y + dst.VY - src.Y - src.VY
		if x == 0 {
			x = s.jiggle()
		}
		if y == 0 {
			y = s.jiggle()
		}
		d := math.Sqrt(x*x + y*y)
		k := (d - s.cfg.LinkDistance) / d * s.alpha * l.strength
		x, y = x*k, y*k
		dst.VX -= x * l.bias
		dst.VY -= y * l.bias
		src.VX += x * (1 - l.bias)
		src.VY += y * (1 - l.bias)
	}
}

// applyCharge is the exact O(n^2) many-body force; graphs here are small.
func (s *Simulation) applyCharge() {
	for i, a := range s.bodies {
		for j, b := range s.bodies {
			if i == j {
				continue
			}
			x := b.X - a.X
			y := b.Y - a.Y
			if x == 0 {
				x = s.jiggle()
			}
			if y == 0 {
				y = s.jiggle()
			}
			l := x*x + y*y
			if l < 1 {
				l = math.Sqrt(l)
			}
			w := s.cfg.Charge * s.alpha / l
			a.VX += x * w
			a.VY += y * w
		}
	}
}

func (s *Simulation) applyCenter() {
	if len(s.bodies) == 0 {
		return
	}
	var sx, sy float64
	for _, b := range s.bodies {
		sx += b.X
		sy += b.Y
	}
	sx = sx/float64(len(s.bodies)) - s.cfg.Width/2
	sy = sy/float64(len(s.bodies)) - s.cfg.Height/2
	for _, b := range s.bodies {
		b.X -= sx
		b.Y -= sy
	}
}

// DragStart pins node id where it is and raises the alpha target so the
// simulation keeps running while the gesture lasts. Alpha itself drifts
// toward the target over the following ticks.
func (s *Simulation) DragStart(id int) error {
	b, ok := s.body(id)
	if !ok {
		return ErrUnknownNode
	}
	s.dragging[id] = true
	s.alphaTarget = dragAlpha
	x, y := b.X, b.Y
	b.Fx, b.Fy = &x, &y
	return nil
}

// Drag moves the pinned node id to (x, y).
func (s *Simulation) Drag(id int, x, y float64) error {
	b, ok := s.body(id)
	if !ok {
		return ErrUnknownNode
	}
	b.Fx, b.Fy = &x, &y
	return nil
}

// DragEnd releases node id. The simulation cools down once no node is being
// dragged.
func (s *Simulation) DragEnd(id int) error {
	b, ok := s.body(id)
	if !ok {
		return ErrUnknownNode
	}
	delete(s.dragging, id)
	if len(s.dragging) == 0 {
		s.alphaTarget = 0
	}
	b.Fx, b.Fy = nil, nil
	return nil
}

func (s *Simulation) body(id int) (*Body, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.bodies[i], true
}

// Position returns the current position of node id.
func (s *Simulation) Position(id int) (x, y float64, ok bool) {
	b, ok := s.body(id)
	if !ok {
		return 0, 0, false
	}
	return b.X, b.Y, true
}

// Bodies returns a snapshot of the simulated nodes.
func (s *Simulation) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	for i, b := range s.bodies {
		out[i] = *b
	}
	return out
}
