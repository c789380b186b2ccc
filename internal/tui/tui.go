// Package tui is an interactive terminal front end for the graph builder.
// Each submitted line is parsed as builder commands and applied to a
// session; the node and edge lists, a coarse layout preview and any alerts
// are redrawn after every edit.
package tui

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anthonybishopric/graphwidgets/pkg/geom"
	"github.com/anthonybishopric/graphwidgets/pkg/graph"
	"github.com/anthonybishopric/graphwidgets/pkg/script"
	"github.com/anthonybishopric/graphwidgets/pkg/session"
)

const (
	previewCols = 60
	previewRows = 20
	maxHistory  = 8
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	paneStyle   = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// KeyMap defines the key bindings.
type KeyMap struct {
	Submit key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the default set of bindings.
var DefaultKeyMap = KeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}

// Model is the bubbletea model of the builder.
type Model struct {
	sess    *session.Session
	bounds  geom.Bounds
	input   textinput.Model
	alerts  []string
	history []string
	err     error
}

// New returns a model editing sess on a canvas of the given size.
func New(sess *session.Session, bounds geom.Bounds) Model {
	in := textinput.New()
	in.Placeholder = "node 1 2; edge 1 -> 2"
	in.Prompt = "› "
	in.CharLimit = 200
	in.Width = 50
	in.Focus()

	return Model{
		sess:   sess,
		bounds: bounds,
		input:  in,
	}
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, DefaultKeyMap.Quit):
			return m, tea.Quit
		case key.Matches(msg, DefaultKeyMap.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return m, nil
	}
	if line == "quit" || line == "exit" {
		return m, tea.Quit
	}

	m.alerts = nil
	sc, err := script.ParseLine(line)
	if err != nil {
		m.alerts = strings.Split(strings.TrimPrefix(err.Error(), "parse errors:\n"), "\n")
		return m, nil
	}

	alerts, err := m.sess.Run(sc)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	for _, a := range alerts {
		m.alerts = append(m.alerts, a.Err.Error())
	}

	m.history = append(m.history, line)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	return m, nil
}

// Err returns the error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// Alerts returns the messages for the last submitted line.
func (m Model) Alerts() []string {
	return m.alerts
}

// View renders the builder screen.
func (m Model) View() string {
	st := m.sess.State()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Interactive Graph Builder"))
	b.WriteString(subtleStyle.Render(fmt.Sprintf("  %s · %d nodes · %d edges", st.Mode, len(st.Nodes), len(st.Edges))))
	b.WriteString("\n\n")

	lists := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render("Nodes"),
		nodeList(st),
		"",
		lipgloss.NewStyle().Bold(true).Render("Edges"),
		edgeList(st),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Width(24).Render(lists),
		paneStyle.Render(Preview(st, m.bounds, previewCols, previewRows)),
	))
	b.WriteString("\n")

	for _, a := range m.alerts {
		b.WriteString(alertStyle.Render("✗ "+a) + "\n")
	}
	if len(m.alerts) == 0 && len(m.history) > 0 {
		b.WriteString(okStyle.Render("✓ "+m.history[len(m.history)-1]) + "\n")
	}

	b.WriteString(m.input.View() + "\n")
	b.WriteString(subtleStyle.Render("node ID… · remove ID… · edge A -> B · mode directed|undirected · pin ID X Y · release ID · esc to quit"))
	return b.String()
}

func nodeList(st graph.State) string {
	if len(st.Nodes) == 0 {
		return subtleStyle.Render("none")
	}
	ids := make([]string, 0, len(st.Nodes))
	for _, n := range st.Nodes {
		s := strconv.Itoa(n.ID)
		if n.Pinned() {
			s += "*"
		}
		ids = append(ids, s)
	}
	return strings.Join(ids, " ")
}

func edgeList(st graph.State) string {
	if len(st.Edges) == 0 {
		return subtleStyle.Render("none")
	}
	arrow := " -- "
	if st.Mode == graph.Directed {
		arrow = " -> "
	}
	lines := make([]string, 0, len(st.Edges))
	for _, e := range st.Edges {
		lines = append(lines, strconv.Itoa(e.Source)+arrow+strconv.Itoa(e.Target))
	}
	return strings.Join(lines, "\n")
}

// Preview draws st on a cols x rows character grid scaled from bounds.
// Edges are dotted, nodes are their ids.
func Preview(st graph.State, bounds geom.Bounds, cols, rows int) string {
	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}

	cell := func(x, y float64) (int, int) {
		c := int(math.Round(x / bounds.Width * float64(cols-1)))
		r := int(math.Round(y / bounds.Height * float64(rows-1)))
		return min(max(c, 0), cols-1), min(max(r, 0), rows-1)
	}

	pos := make(map[int]graph.Node, len(st.Nodes))
	for _, n := range st.Nodes {
		pos[n.ID] = n
	}

	for _, e := range st.Edges {
		a, b := pos[e.Source], pos[e.Target]
		c0, r0 := cell(a.X, a.Y)
		c1, r1 := cell(b.X, b.Y)
		steps := max(abs(c1-c0), abs(r1-r0))
		for i := 1; i < steps; i++ {
			t := float64(i) / float64(steps)
			c := c0 + int(math.Round(t*float64(c1-c0)))
			r := r0 + int(math.Round(t*float64(r1-r0)))
			grid[r][c] = '·'
		}
	}

	ids := make([]int, 0, len(pos))
	for id := range pos {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		n := pos[id]
		c, r := cell(n.X, n.Y)
		label := []rune(strconv.Itoa(id))
		c = min(c, cols-len(label))
		for i, ch := range label {
			if c+i >= 0 {
				grid[r][c+i] = ch
			}
		}
	}

	lines := make([]string, rows)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Run starts the terminal UI and blocks until the user quits.
func Run(sess *session.Session, bounds geom.Bounds) error {
	final, err := tea.NewProgram(New(sess, bounds), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
