package ui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/anthonybishopric/graphwidgets/pkg/graph"
)

// Colors
var (
	Brand  = color.New(color.FgHiCyan, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// Out is where status lines go. Tests swap it for a buffer.
var Out io.Writer = os.Stderr

// Alert prints a rejected edit the way the page shows it in an alert box,
// tagged with its kind when it has one.
func Alert(err error) {
	kind := Kind(err)
	if kind == "error" {
		Bad.Fprintf(Out, "✗ %s\n", err)
		return
	}
	fmt.Fprintf(Out, "%s %s\n", Bad.Sprintf("✗ %s", err), Subtle.Sprintf("[%s]", kind))
}

// Status prints a one-line success message.
func Status(format string, args ...any) {
	fmt.Fprintf(Out, "%s %s\n", Good.Sprint("✓"), fmt.Sprintf(format, args...))
}

// Note prints a dimmed informational line.
func Note(format string, args ...any) {
	Subtle.Fprintf(Out, format+"\n", args...)
}

// Warning prints a yellow warning line.
func Warning(format string, args ...any) {
	Warn.Fprintf(Out, "⚠ "+format+"\n", args...)
}

// Summary describes a builder graph in one line.
func Summary(st graph.State) string {
	return fmt.Sprintf("%s graph, %d nodes, %d edges", st.Mode, len(st.Nodes), len(st.Edges))
}

// Kind names the class of a rejected edit for display.
func Kind(err error) string {
	switch {
	case errors.Is(err, graph.ErrMissingSource), errors.Is(err, graph.ErrMissingTarget):
		return "missing node"
	case errors.Is(err, graph.ErrDuplicateEdge):
		return "duplicate edge"
	case errors.Is(err, graph.ErrDuplicateNode):
		return "duplicate node"
	case errors.Is(err, graph.ErrNotANumber):
		return "not a number"
	case errors.Is(err, graph.ErrUnknownNode):
		return "unknown node"
	case errors.Is(err, graph.ErrBadPosition):
		return "invalid position"
	}
	return "error"
}
