package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/anthonybishopric/graphwidgets/internal/ui"
	"github.com/anthonybishopric/graphwidgets/pkg/ast"
	"github.com/anthonybishopric/graphwidgets/pkg/chart"
	"github.com/anthonybishopric/graphwidgets/pkg/d3"
	"github.com/anthonybishopric/graphwidgets/pkg/graph"
	"github.com/anthonybishopric/graphwidgets/pkg/script"
	"github.com/anthonybishopric/graphwidgets/pkg/session"
	"github.com/anthonybishopric/graphwidgets/pkg/store"
)

type buildFlags struct {
	load     string
	save     string
	matrix   string
	mode     string
	renderer string
	title    string
	output   string
	jsonOnly bool
	watch    bool
}

func buildCmd(a *app) *cobra.Command {
	f := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build [script|-]",
		Short: "Build a graph from commands and render it with a force layout",
		Long: `Run a builder script against an empty graph (or one loaded with --load)
and render the result as an interactive page. Rejected commands are reported
and skipped; the rest of the script still runs.

Script commands:
  node ID...                 add nodes
  remove ID...               remove nodes and their edges
  edge A B | A -> B | A -- B add an edge
  mode directed|undirected   switch mode (clears the graph)
  pin ID X Y                 fix a node at a position
  release ID                 let a pinned node move again

Comments start with # or // and run to the end of the line; /* */ blocks
are also skipped.`,
		Example: `  graphwidgets build graph.gw -o graph.html
  echo "node 1 2 3; edge 1 2; edge 2 3" | graphwidgets build - -o graph.html
  graphwidgets build --load saved.yaml more.gw --save saved.yaml -o graph.html
  graphwidgets build graph.gw --matrix adjacency.json --json
  graphwidgets build graph.gw -o graph.html --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("renderer") {
				f.renderer = a.cfg.Builder.Renderer
			}
			if f.load != "" && cmd.Flags().Changed("mode") {
				return errors.New("--mode cannot be combined with --load; the loaded graph keeps its mode")
			}

			var path string
			if len(args) > 0 {
				path = args[0]
			}

			if f.watch {
				if path == "" || path == "-" {
					return errors.New("--watch needs a script file")
				}
				if f.output == "" {
					return errors.New("--watch needs --output")
				}
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				return watchScript(ctx, cmd, a, f, path)
			}
			return buildOnce(cmd, a, f, path)
		},
	}

	cmd.Flags().StringVar(&f.load, "load", "", "Start from a saved graph (.yaml, or .json adjacency matrix)")
	cmd.Flags().StringVar(&f.save, "save", "", "Save the final graph (.yaml, or .json adjacency matrix)")
	cmd.Flags().StringVar(&f.matrix, "matrix", "", "Export the adjacency matrix as JSON")
	cmd.Flags().StringVar(&f.mode, "mode", "", "Starting mode: undirected or directed (default from config)")
	cmd.Flags().StringVar(&f.renderer, "renderer", "", "Page renderer: d3 or echarts (default from config)")
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "HTML page title")
	cmd.Flags().BoolVar(&f.jsonOnly, "json", false, "Output only JSON data (no HTML)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Rebuild whenever the script changes")
	return cmd
}

func buildOnce(cmd *cobra.Command, a *app, f *buildFlags, path string) error {
	cfg := a.cfg

	mode := cfg.Mode()
	if f.mode != "" {
		m, err := graph.ParseMode(f.mode)
		if err != nil {
			return fmt.Errorf("--mode: %w", err)
		}
		mode = m
	}

	sess := session.New(mode, session.Options{
		Rules:    cfg.Rules(),
		Layout:   cfg.Layout(),
		MaxTicks: cfg.Force.MaxTicks,
		Logger:   a.log,
	})

	if f.load != "" {
		st, err := store.LoadFile(f.load)
		if err != nil {
			return fmt.Errorf("loading %s: %w", f.load, err)
		}
		if err := sess.Load(st); err != nil {
			return err
		}
		a.log.Info("graph loaded", "path", f.load, "nodes", len(st.Nodes), "edges", len(st.Edges))
	}

	var messages []string
	if path != "" {
		sc, err := readScript(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}
		alerts, err := sess.Run(sc)
		if err != nil {
			return err
		}
		for _, al := range alerts {
			ui.Alert(al)
			messages = append(messages, al.Err.Error())
		}
	}

	st := sess.State()
	a.log.Info("graph built", "mode", st.Mode, "nodes", len(st.Nodes), "edges", len(st.Edges), "edits", sess.Edits())

	if f.save != "" {
		if err := store.SaveFile(f.save, st); err != nil {
			return fmt.Errorf("saving %s: %w", f.save, err)
		}
		ui.Status("Saved %s to %s", ui.Summary(st), f.save)
	}
	if f.matrix != "" {
		if err := exportMatrix(f.matrix, st); err != nil {
			return fmt.Errorf("exporting %s: %w", f.matrix, err)
		}
		ui.Status("Adjacency matrix written to %s", f.matrix)
	}

	out, err := renderBuilder(a, f, st, messages)
	if err != nil {
		return err
	}
	return writeOutput(cmd, f.output, out)
}

func readScript(stdin io.Reader, path string) (*ast.Script, error) {
	if path == "-" {
		src, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading script: %w", err)
		}
		return script.Parse("<stdin>", src)
	}
	return script.ParseFile(path)
}

func exportMatrix(path string, st graph.State) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := store.EncodeMatrix(out, st); err != nil {
		return err
	}
	return out.Close()
}

func renderBuilder(a *app, f *buildFlags, st graph.State, alerts []string) ([]byte, error) {
	opts := d3.BuilderOptions{
		Title:  f.title,
		Layout: a.cfg.Layout(),
		Rules:  a.cfg.Rules(),
		Alerts: alerts,
	}

	switch {
	case f.jsonOnly:
		out, err := json.MarshalIndent(d3.NewBuilderPage(st, opts), "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case f.renderer == "echarts":
		var buf bytes.Buffer
		if err := chart.RenderBuilder(&buf, st, chart.Options{
			Title:  f.title,
			Width:  a.cfg.Canvas.Width,
			Height: a.cfg.Canvas.Height,
		}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case f.renderer == "d3":
		return d3.RenderBuilder(st, opts)
	default:
		return nil, fmt.Errorf("unknown renderer %q", f.renderer)
	}
}

// watchScript rebuilds whenever the script is written. Editors often replace
// the file rather than write it, so the directory is watched.
func watchScript(ctx context.Context, cmd *cobra.Command, a *app, f *buildFlags, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	rebuild := func() {
		if err := buildOnce(cmd, a, f, path); err != nil {
			ui.Alert(err)
		}
	}
	rebuild()
	ui.Note("Watching %s (ctrl+c to stop)", path)

	debounce := time.NewTimer(0)
	<-debounce.C

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			a.log.Debug("script changed", "op", event.Op.String())
			debounce.Reset(100 * time.Millisecond)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watcher error", "error", err)

		case <-debounce.C:
			rebuild()
		}
	}
}
