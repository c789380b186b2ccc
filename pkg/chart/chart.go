// Package chart renders the random graph and the builder graph as ECharts
// pages, an alternative to the D3 pages in package d3.
package chart

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/anthonybishopric/graphwidgets/pkg/graph"
	"github.com/anthonybishopric/graphwidgets/pkg/randgraph"
)

// Options configures a chart page.
type Options struct {
	Title  string
	Width  float64
	Height float64
}

func (o Options) init(defaultTitle string) opts.Initialization {
	title := o.Title
	if title == "" {
		title = defaultTitle
	}
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 600
	}
	if h <= 0 {
		h = 400
	}
	return opts.Initialization{
		PageTitle: title,
		Width:     fmt.Sprintf("%gpx", w),
		Height:    fmt.Sprintf("%gpx", h),
	}
}

// Random builds a chart of a generated graph at its generated positions.
func Random(g *randgraph.Graph, o Options) *charts.Graph {
	nodes := make([]opts.GraphNode, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, opts.GraphNode{
			Name:       strconv.Itoa(n.ID),
			X:          float32(n.X),
			Y:          float32(n.Y),
			SymbolSize: 2 * g.Radius,
		})
	}
	links := make([]opts.GraphLink, 0, len(g.Edges))
	for _, e := range g.Edges {
		links = append(links, link(e.Source, e.Target))
	}

	if o.Width <= 0 {
		o.Width = g.Bounds.Width
	}
	if o.Height <= 0 {
		o.Height = g.Bounds.Height
	}
	return base(o.init("Random Graph Generator"), nodes, links, false)
}

// Builder builds a chart of a builder graph at its laid out positions.
// Directed graphs get arrowheads.
func Builder(st graph.State, o Options) *charts.Graph {
	nodes := make([]opts.GraphNode, 0, len(st.Nodes))
	for _, n := range st.Nodes {
		node := opts.GraphNode{
			Name: strconv.Itoa(n.ID),
			X:    float32(n.X),
			Y:    float32(n.Y),
		}
		if n.Pinned() {
			node.Fixed = opts.Bool(true)
		}
		nodes = append(nodes, node)
	}
	links := make([]opts.GraphLink, 0, len(st.Edges))
	for _, e := range st.Edges {
		links = append(links, link(e.Source, e.Target))
	}
	return base(o.init("Interactive Graph Builder"), nodes, links, st.Mode == graph.Directed)
}

// RenderRandom writes the ECharts page for g.
func RenderRandom(w io.Writer, g *randgraph.Graph, o Options) error {
	return render(w, Random(g, o))
}

// RenderBuilder writes the ECharts page for st.
func RenderBuilder(w io.Writer, st graph.State, o Options) error {
	return render(w, Builder(st, o))
}

func render(w io.Writer, c *charts.Graph) error {
	page := components.NewPage()
	page.SetPageTitle(c.Initialization.PageTitle)
	page.AddCharts(c)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

func link(source, target int) opts.GraphLink {
	return opts.GraphLink{
		Source: strconv.Itoa(source),
		Target: strconv.Itoa(target),
	}
}

func base(init opts.Initialization, nodes []opts.GraphNode, links []opts.GraphLink, directed bool) *charts.Graph {
	g := charts.NewGraph()
	g.SetGlobalOptions(
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(opts.Title{
			Title: init.PageTitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)

	chartOpts := opts.GraphChart{
		Layout:    "none",
		Draggable: opts.Bool(true),
		Roam:      opts.Bool(true),
	}
	if directed {
		chartOpts.EdgeSymbol = []string{"none", "arrow"}
		chartOpts.EdgeSymbolSize = 10
	}

	g.AddSeries(
		"graph",
		nodes,
		links,
		charts.WithGraphChartOpts(chartOpts),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Color:    "black",
			Position: "inside",
		}),
	)
	return g
}
