// Command graphwidgets generates random graphs and builds graphs from command
// scripts, rendering both as interactive HTML pages.
package main

import (
	"os"

	"github.com/anthonybishopric/graphwidgets/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		ui.Alert(err)
		os.Exit(1)
	}
}
