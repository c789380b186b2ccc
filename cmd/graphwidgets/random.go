package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/anthonybishopric/graphwidgets/internal/ui"
	"github.com/anthonybishopric/graphwidgets/pkg/chart"
	"github.com/anthonybishopric/graphwidgets/pkg/d3"
	"github.com/anthonybishopric/graphwidgets/pkg/randgraph"
)

func randomCmd(a *app) *cobra.Command {
	var (
		count    int
		skip     float64
		seed     uint64
		focusID  int
		renderer string
		title    string
		jsonOnly bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generate a random graph page",
		Long: `Place N non-overlapping nodes on the canvas and connect every pair unless
a random draw falls below the skip probability: 0 connects every pair, 1
connects none. Clicking a node in the page zooms onto it; clicking it again
zooms back out.`,
		Example: `  graphwidgets random -n 12 -p 0.7 -o random.html
  graphwidgets random -n 5 -p 0 --seed 42 --focus 3 > focused.html
  graphwidgets random -n 8 --renderer echarts -o random.html
  graphwidgets random -n 8 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if !cmd.Flags().Changed("nodes") {
				count = cfg.Random.Count
			}
			if !cmd.Flags().Changed("skip-probability") {
				skip = cfg.Random.SkipProbability
			}
			if !cmd.Flags().Changed("renderer") {
				renderer = cfg.Random.Renderer
			}

			var rng *rand.Rand
			if cmd.Flags().Changed("seed") {
				rng = rand.New(rand.NewPCG(seed, seed))
			} else {
				rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
			}

			g, err := randgraph.Generate(randgraph.Options{
				Count:           count,
				SkipProbability: skip,
				Bounds:          cfg.Bounds(),
				Radius:          cfg.Canvas.Radius,
				MaxAttempts:     cfg.Random.MaxAttempts,
			}, rng)
			if err != nil {
				return err
			}
			a.log.Info("graph generated", "nodes", len(g.Nodes), "edges", len(g.Edges), "relaxed", g.Relaxed)
			if g.Relaxed > 0 {
				ui.Warning("%d of %d nodes could not be placed without overlap", g.Relaxed, len(g.Nodes))
			}

			opts := d3.RandomOptions{
				Title:           title,
				FocusID:         focusID,
				Scale:           cfg.Zoom.Scale,
				Duration:        cfg.ZoomDuration(),
				SkipProbability: skip,
				MaxAttempts:     cfg.Random.MaxAttempts,
			}

			var out []byte
			switch {
			case jsonOnly:
				page, err := d3.NewRandomPage(g, opts)
				if err != nil {
					return err
				}
				out, err = json.MarshalIndent(page, "", "  ")
				if err != nil {
					return err
				}
				out = append(out, '\n')
			case renderer == "echarts":
				var buf bytes.Buffer
				if err := chart.RenderRandom(&buf, g, chart.Options{Title: title}); err != nil {
					return err
				}
				out = buf.Bytes()
			case renderer == "d3":
				out, err = d3.RenderRandom(g, opts)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown renderer %q", renderer)
			}
			return writeOutput(cmd, output, out)
		},
	}

	cmd.Flags().IntVarP(&count, "nodes", "n", 0, "Number of nodes (default from config)")
	cmd.Flags().Float64VarP(&skip, "skip-probability", "p", 0, "Chance that a pair is left unconnected, 0 to 1 (default from config)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed for a reproducible graph")
	cmd.Flags().IntVar(&focusID, "focus", 0, "Open the page zoomed onto this node")
	cmd.Flags().StringVar(&renderer, "renderer", "", "Page renderer: d3 or echarts (default from config)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "HTML page title")
	cmd.Flags().BoolVar(&jsonOnly, "json", false, "Output only JSON data (no HTML)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}
