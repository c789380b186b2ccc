package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/anthonybishopric/graphwidgets/internal/config"
	"github.com/anthonybishopric/graphwidgets/internal/logging"
	"github.com/anthonybishopric/graphwidgets/internal/ui"
)

// app carries what every subcommand needs once the root flags are parsed.
type app struct {
	cfgPath  string
	logLevel string

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "graphwidgets",
		Short: "Random graph generator and interactive graph builder",
		Long: ui.Brand.Sprint("graphwidgets") + " renders node-link diagrams as self-contained HTML pages\n" +
			ui.Subtle.Sprint("random: place N non-overlapping nodes and connect pairs at random\n") +
			ui.Subtle.Sprint("build:  build a graph from commands with a force-directed layout"),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "Config file (default: "+config.Path()+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	root.AddCommand(
		randomCmd(a),
		buildCmd(a),
		tuiCmd(a),
		configCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	ui.Out = cmd.ErrOrStderr()

	level, err := logging.ParseLevel(a.logLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	a.log = logging.NiceLogger(cmd.ErrOrStderr(), level)

	path := a.cfgPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log.Debug("config loaded", "path", path)
	return nil
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := writeFile(path, data); err != nil {
		return err
	}
	ui.Status("Written to %s", path)
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
