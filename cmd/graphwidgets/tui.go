package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anthonybishopric/graphwidgets/internal/tui"
	"github.com/anthonybishopric/graphwidgets/internal/ui"
	"github.com/anthonybishopric/graphwidgets/pkg/d3"
	"github.com/anthonybishopric/graphwidgets/pkg/graph"
	"github.com/anthonybishopric/graphwidgets/pkg/session"
	"github.com/anthonybishopric/graphwidgets/pkg/store"
)

func tuiCmd(a *app) *cobra.Command {
	var (
		load   string
		save   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Build a graph interactively in the terminal",
		Long: `Open the graph builder in the terminal. Each line is run as builder commands
and the graph is redrawn after every accepted edit. With --output the HTML
page is rewritten after every edit too, so a browser tab can follow along.`,
		Example: `  graphwidgets tui
  graphwidgets tui --load saved.yaml --save saved.yaml -o graph.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			sess := session.New(cfg.Mode(), session.Options{
				Rules:    cfg.Rules(),
				Layout:   cfg.Layout(),
				MaxTicks: cfg.Force.MaxTicks,
				Logger:   a.log,
			})

			if output != "" {
				sess.OnRender(func(st graph.State) error {
					page, err := d3.RenderBuilder(st, d3.BuilderOptions{
						Layout: cfg.Layout(),
						Rules:  cfg.Rules(),
					})
					if err != nil {
						return err
					}
					return writeFile(output, page)
				})
			}

			if load != "" {
				st, err := store.LoadFile(load)
				if err != nil {
					return fmt.Errorf("loading %s: %w", load, err)
				}
				if err := sess.Load(st); err != nil {
					return err
				}
			}

			if err := tui.Run(sess, cfg.Bounds()); err != nil {
				return err
			}

			st := sess.State()
			if save != "" {
				if err := store.SaveFile(save, st); err != nil {
					return fmt.Errorf("saving %s: %w", save, err)
				}
				ui.Status("Saved %s to %s", ui.Summary(st), save)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&load, "load", "", "Start from a saved graph (.yaml, or .json adjacency matrix)")
	cmd.Flags().StringVar(&save, "save", "", "Save the graph on exit")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Rewrite this HTML page after every edit")
	return cmd
}
