package d3

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"github.com/anthonybishopric/graphwidgets/pkg/focus"
	"github.com/anthonybishopric/graphwidgets/pkg/geom"
	"github.com/anthonybishopric/graphwidgets/pkg/graph"
	"github.com/anthonybishopric/graphwidgets/pkg/layout"
	"github.com/anthonybishopric/graphwidgets/pkg/randgraph"
)

var (
	randomTmpl  = template.Must(template.New("random").Parse(randomTemplate))
	builderTmpl = template.Must(template.New("builder").Parse(builderTemplate))
)

// RandomOptions configures rendering of the random graph page.
type RandomOptions struct {
	Title string
	// FocusID opens the page zoomed onto that node. Zero means no focus.
	FocusID  int
	Scale    float64
	Duration time.Duration
	// Defaults for the in-page generator form.
	SkipProbability float64
	MaxAttempts     int
}

// RandomPage is everything the random graph page is built from. It is also
// what `random --json` prints.
type RandomPage struct {
	Graph *Graph        `json:"graph"`
	Zoom  Zoom          `json:"zoom"`
	Form  GeneratorForm `json:"form"`
}

// GeneratorForm holds the values the page uses to regenerate graphs in the
// browser.
type GeneratorForm struct {
	Count           int     `json:"count"`
	SkipProbability float64 `json:"skipProbability"`
	MaxAttempts     int     `json:"maxAttempts"`
	Invalid         string  `json:"invalid"`
}

// NewRandomPage resolves opts against g: the initial view transform comes
// from the focus controller, and edges are inset for that scale.
func NewRandomPage(g *randgraph.Graph, opts RandomOptions) (*RandomPage, error) {
	ctrl := focus.NewController(g.Bounds.Width, g.Bounds.Height)
	if opts.Scale > 0 {
		ctrl.Scale = opts.Scale
	}
	if opts.Duration > 0 {
		ctrl.Duration = opts.Duration
	}
	if opts.FocusID != 0 {
		n, ok := g.Node(opts.FocusID)
		if !ok {
			return nil, fmt.Errorf("focus: node %d does not exist", opts.FocusID)
		}
		ctrl.Click(focus.Target{ID: n.ID, X: n.X, Y: n.Y})
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = geom.DefaultMaxAttempts
	}

	initial := ctrl.Current()
	return &RandomPage{
		Graph: FromRandom(g, initial.K),
		Zoom: Zoom{
			Scale:      ctrl.Scale,
			DurationMS: ctrl.Duration.Milliseconds(),
			MinScale:   focus.MinScale,
			MaxScale:   focus.MaxScale,
			Offset:     EdgeOffset,
			Initial:    initial,
			FocusID:    opts.FocusID,
		},
		Form: GeneratorForm{
			Count:           len(g.Nodes),
			SkipProbability: opts.SkipProbability,
			MaxAttempts:     opts.MaxAttempts,
			Invalid:         randgraph.ErrInvalidInput.Error(),
		},
	}, nil
}

// RenderRandom generates a self-contained HTML page showing g with pan, zoom
// and click-to-focus.
func RenderRandom(g *randgraph.Graph, opts RandomOptions) ([]byte, error) {
	page, err := NewRandomPage(g, opts)
	if err != nil {
		return nil, err
	}
	if opts.Title == "" {
		opts.Title = "Random Graph Generator"
	}

	pageJSON, err := json.Marshal(page)
	if err != nil {
		return nil, err
	}

	data := struct {
		Title    string
		PageJSON template.JS
	}{
		Title:    opts.Title,
		PageJSON: template.JS(pageJSON),
	}
	return execute(randomTmpl, data)
}

// BuilderOptions configures rendering of the graph builder page.
type BuilderOptions struct {
	Title  string
	Layout layout.Config
	Rules  graph.Rules
	// Alerts are shown once when the page opens, e.g. rejected script
	// commands.
	Alerts []string
}

// BuilderPage is everything the builder page is built from. It is also what
// `build --json` prints.
type BuilderPage struct {
	Graph  *Graph   `json:"graph"`
	Force  Force    `json:"force"`
	Rules  Rules    `json:"rules"`
	Alerts []string `json:"alerts,omitempty"`
}

// Rules mirrors graph.Rules for the page script.
type Rules struct {
	RejectReverseUndirected bool `json:"rejectReverseUndirected"`
}

// NewBuilderPage converts st for the builder page.
func NewBuilderPage(st graph.State, opts BuilderOptions) *BuilderPage {
	cfg := opts.Layout
	if cfg == (layout.Config{}) {
		cfg = layout.DefaultConfig()
	}
	return &BuilderPage{
		Graph:  FromState(st, cfg),
		Force:  forceOf(cfg),
		Rules:  Rules{RejectReverseUndirected: opts.Rules.RejectReverseUndirected},
		Alerts: opts.Alerts,
	}
}

// RenderBuilder generates a self-contained HTML page with the builder form
// controls and a force-directed view of st.
func RenderBuilder(st graph.State, opts BuilderOptions) ([]byte, error) {
	if opts.Title == "" {
		opts.Title = "Interactive Graph Builder"
	}

	pageJSON, err := json.Marshal(NewBuilderPage(st, opts))
	if err != nil {
		return nil, err
	}

	data := struct {
		Title    string
		Directed bool
		PageJSON template.JS
	}{
		Title:    opts.Title,
		Directed: st.Mode == graph.Directed,
		PageJSON: template.JS(pageJSON),
	}
	return execute(builderTmpl, data)
}

func execute(t *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
