// Package focus implements click-to-zoom: a two state machine that either
// shows the whole canvas or centres and magnifies one node.
package focus

import "time"

// Defaults used by the random graph view.
const (
	DefaultScale    = 3.0
	DefaultDuration = 750 * time.Millisecond
	MinScale        = 0.5
	MaxScale        = 10.0
)

// Transform is a view transform: translate by (X, Y), then scale by K.
// A point p maps to (p.x*K + X, p.y*K + Y).
type Transform struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// Identity is the transform that leaves the canvas untouched.
var Identity = Transform{K: 1}

// Target is a clickable node.
type Target struct {
	ID int
	X  float64
	Y  float64
}

// Transition describes an animated change of view.
type Transition struct {
	To       Transform
	Duration time.Duration
	Focused  bool
	NodeID   int
}

// Controller tracks which node, if any, is focused.
type Controller struct {
	Width    float64
	Height   float64
	Scale    float64
	Duration time.Duration

	focused *Target
}

// NewController returns a controller for a viewport of the given size using
// the default focus scale and animation duration.
func NewController(width, height float64) *Controller {
	return &Controller{
		Width:    width,
		Height:   height,
		Scale:    DefaultScale,
		Duration: DefaultDuration,
	}
}

// Focused returns the focused node, if any.
func (c *Controller) Focused() (Target, bool) {
	if c.focused == nil {
		return Target{}, false
	}
	return *c.focused, true
}

// Click handles a click on node n. Clicking the focused node returns to the
// idle view; clicking any other node focuses it.
func (c *Controller) Click(n Target) Transition {
	if c.focused != nil && c.focused.ID == n.ID {
		return c.Reset()
	}
	c.focused = &n
	return Transition{
		To:       c.FocusTransform(n),
		Duration: c.Duration,
		Focused:  true,
		NodeID:   n.ID,
	}
}

// Reset returns to the idle view.
func (c *Controller) Reset() Transition {
	c.focused = nil
	return Transition{To: Identity, Duration: c.Duration}
}

// Current returns the transform for the current state.
func (c *Controller) Current() Transform {
	if c.focused == nil {
		return Identity
	}
	return c.FocusTransform(*c.focused)
}

// FocusTransform centres n in the viewport at the controller's scale,
// limited to [MinScale, MaxScale] like the page's zoom behaviour.
func (c *Controller) FocusTransform(n Target) Transform {
	k := c.Scale
	switch {
	case k == 0:
		k = DefaultScale
	case k < MinScale:
		k = MinScale
	case k > MaxScale:
		k = MaxScale
	}
	return Transform{
		X: c.Width/2 - k*n.X,
		Y: c.Height/2 - k*n.Y,
		K: k,
	}
}
