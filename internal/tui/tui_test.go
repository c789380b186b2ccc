package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/anthonybishopric/graphwidgets/pkg/geom"
	"github.com/anthonybishopric/graphwidgets/pkg/graph"
	"github.com/anthonybishopric/graphwidgets/pkg/session"
)

var canvas = geom.Bounds{Width: 600, Height: 400}

func enter(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	return nm, cmd
}

func TestSubmitAppliesCommands(t *testing.T) {
	sess := session.New(graph.Undirected, session.Options{})
	m := New(sess, canvas)

	m, _ = enter(t, m, "node 1 2 3; edge 1 2")
	st := sess.State()
	if len(st.Nodes) != 3 || len(st.Edges) != 1 {
		t.Fatalf("expected 3 nodes and 1 edge, got %+v", st)
	}
	if len(m.Alerts()) != 0 {
		t.Errorf("unexpected alerts %v", m.Alerts())
	}
	if m.input.Value() != "" {
		t.Error("input should be cleared after submit")
	}
}

func TestSubmitShowsAlerts(t *testing.T) {
	sess := session.New(graph.Directed, session.Options{})
	m := New(sess, canvas)

	m, _ = enter(t, m, "node 1; edge 1 7")
	if got := m.Alerts(); len(got) != 1 || got[0] != "Target node 7 does not exist." {
		t.Errorf("unexpected alerts %v", got)
	}
	if !strings.Contains(m.View(), "Target node 7 does not exist.") {
		t.Error("alert should be shown in the view")
	}

	m, _ = enter(t, m, "frobnicate")
	if len(m.Alerts()) == 0 || !strings.Contains(m.Alerts()[0], "unknown command") {
		t.Errorf("expected parse error alert, got %v", m.Alerts())
	}
}

func TestQuit(t *testing.T) {
	m := New(session.New(graph.Undirected, session.Options{}), canvas)

	_, cmd := enter(t, m, "quit")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command on esc")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg on esc")
	}
}

func TestViewListsGraph(t *testing.T) {
	sess := session.New(graph.Directed, session.Options{})
	m := New(sess, canvas)
	m, _ = enter(t, m, "node 4 5; edge 4 -> 5; pin 4 10 10")

	v := m.View()
	for _, want := range []string{"directed", "4* 5", "4 -> 5"} {
		if !strings.Contains(v, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestPreview(t *testing.T) {
	st := graph.New(graph.Undirected)
	st, _ = graph.AddNode(st, "1")
	st, _ = graph.AddNode(st, "2")
	st, _ = graph.AddEdge(st, "1", "2")
	st.Nodes[0].X, st.Nodes[0].Y = 0, 0
	st.Nodes[1].X, st.Nodes[1].Y = 600, 0

	out := Preview(st, canvas, 10, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	if got := lines[0]; got != "1········2" {
		t.Errorf("unexpected first row %q", got)
	}
	if strings.TrimSpace(lines[1]) != "" {
		t.Errorf("expected empty second row, got %q", lines[1])
	}
}
