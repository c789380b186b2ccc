// Package session drives the graph builder: it applies script commands to the
// graph state, restarts the layout after every accepted edit and hands the
// result to the registered renderers.
package session

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/anthonybishopric/graphwidgets/pkg/ast"
	"github.com/anthonybishopric/graphwidgets/pkg/graph"
	"github.com/anthonybishopric/graphwidgets/pkg/layout"
	"github.com/anthonybishopric/graphwidgets/pkg/token"
)

// DefaultMaxTicks bounds the layout run after each edit.
const DefaultMaxTicks = 1000

// RenderFunc receives the graph after every accepted edit.
type RenderFunc func(graph.State) error

// Options configures a Session.
type Options struct {
	Rules    graph.Rules
	Layout   layout.Config
	MaxTicks int
	Logger   *slog.Logger
}

// Alert is a rejected command that should be shown to the user.
type Alert struct {
	Pos     token.Position
	Command string
	Err     error
}

func (a Alert) Error() string {
	if a.Pos.IsValid() {
		return a.Pos.String() + ": " + a.Err.Error()
	}
	return a.Err.Error()
}

func (a Alert) Unwrap() error {
	return a.Err
}

// Session owns the builder state.
type Session struct {
	state    graph.State
	sim      *layout.Simulation
	simCfg   layout.Config
	rules    graph.Rules
	maxTicks int
	log      *slog.Logger
	hooks    []RenderFunc
	edits    int
}

// New returns an empty session in the given mode.
func New(mode graph.Mode, opts Options) *Session {
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = DefaultMaxTicks
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Layout == (layout.Config{}) {
		opts.Layout = layout.DefaultConfig()
	}
	return &Session{
		state:    graph.New(mode),
		sim:      layout.New(opts.Layout),
		simCfg:   opts.Layout,
		rules:    opts.Rules,
		maxTicks: opts.MaxTicks,
		log:      opts.Logger,
	}
}

// OnRender registers fn to run after every accepted edit.
func (s *Session) OnRender(fn RenderFunc) {
	s.hooks = append(s.hooks, fn)
}

// State returns the current graph.
func (s *Session) State() graph.State {
	return s.state
}

// Edits returns the number of accepted edits so far.
func (s *Session) Edits() int {
	return s.edits
}

// Load replaces the whole graph, e.g. with an imported file, and renders it.
func (s *Session) Load(st graph.State) error {
	s.sim = layout.New(s.simCfg)
	return s.commit(st.Clone())
}

// Apply executes one command. Rejections that should be shown are returned;
// silent ones are only logged.
func (s *Session) Apply(cmd ast.Command) error {
	var errs []error
	record := func(err error) {
		if err == nil {
			return
		}
		if graph.IsSilent(err) {
			s.log.Debug("edit ignored", "command", cmd.String(), "reason", err)
			return
		}
		errs = append(errs, err)
	}

	switch c := cmd.(type) {
	case *ast.ModeCmd:
		record(s.commit(graph.SetMode(s.state, c.Mode)))
	case *ast.AddNodeCmd:
		for _, id := range c.IDs {
			record(s.edit(graph.AddNode(s.state, id.Name)))
		}
	case *ast.RemoveNodeCmd:
		for _, id := range c.IDs {
			record(s.edit(graph.RemoveNode(s.state, id.Name)))
		}
	case *ast.AddEdgeCmd:
		for _, p := range c.Pairs() {
			record(s.edit(s.rules.AddEdge(s.state, p[0].Name, p[1].Name)))
		}
	case *ast.PinCmd:
		id, err := graph.ParseID(c.ID.Name)
		if err != nil {
			record(err)
			break
		}
		record(s.drag(id, c.X, c.Y))
	case *ast.ReleaseCmd:
		id, err := graph.ParseID(c.ID.Name)
		if err != nil {
			record(err)
			break
		}
		record(s.release(id))
	default:
		record(fmt.Errorf("unsupported command %T", cmd))
	}

	return errors.Join(errs...)
}

// Run applies every command of a script in order and returns the alerts for
// the commands that were rejected. Rendering failures abort the run.
func (s *Session) Run(sc *ast.Script) ([]Alert, error) {
	var alerts []Alert
	for _, cmd := range sc.Commands {
		err := s.Apply(cmd)
		if err == nil {
			continue
		}
		var re *renderError
		if errors.As(err, &re) {
			return alerts, re.err
		}
		alerts = append(alerts, Alert{Pos: cmd.Pos(), Command: cmd.String(), Err: err})
	}
	return alerts, nil
}

func (s *Session) edit(next graph.State, err error) error {
	if err != nil {
		return err
	}
	return s.commit(next)
}

// drag holds node id at (x, y) as a drag gesture would: the node is pinned
// and the layout stays warm until it is released.
func (s *Session) drag(id int, x, y float64) error {
	next, err := graph.Pin(s.state, id, x, y)
	if err != nil {
		return err
	}
	s.sim.Sync(next)
	if err := s.sim.DragStart(id); err != nil {
		return err
	}
	if err := s.sim.Drag(id, x, y); err != nil {
		return err
	}
	return s.commit(next)
}

func (s *Session) release(id int) error {
	next, err := graph.Release(s.state, id)
	if err != nil {
		return err
	}
	if err := s.sim.DragEnd(id); err != nil {
		return err
	}
	return s.commit(next)
}

// commit installs next, restarts the layout at full energy, runs it and
// renders.
func (s *Session) commit(next graph.State) error {
	s.sim.Sync(next)
	s.sim.Restart()
	ticks := s.sim.Run(s.maxTicks)
	s.state = next.WithPositions(s.sim.Position)
	s.edits++

	s.log.Debug("graph updated",
		"mode", s.state.Mode,
		"nodes", len(s.state.Nodes),
		"edges", len(s.state.Edges),
		"ticks", ticks)

	for _, fn := range s.hooks {
		if err := fn(s.state); err != nil {
			return &renderError{err: err}
		}
	}
	return nil
}

type renderError struct {
	err error
}

func (e *renderError) Error() string {
	return "render: " + e.err.Error()
}

func (e *renderError) Unwrap() error {
	return e.err
}
