// Package store reads and writes builder graphs: YAML session documents and
// JSON adjacency matrices.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/anthonybishopric/graphwidgets/pkg/graph"
)

// Session is the on-disk form of a builder graph.
type Session struct {
	Mode  graph.Mode   `yaml:"mode"`
	Nodes []graph.Node `yaml:"nodes"`
	Edges []graph.Edge `yaml:"edges,omitempty"`
}

// EncodeYAML writes st as a YAML session document.
func EncodeYAML(w io.Writer, st graph.State) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Session{Mode: st.Mode, Nodes: st.Nodes, Edges: st.Edges}); err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return enc.Close()
}

// DecodeYAML reads a YAML session document. Nodes and edges are replayed
// through the edit operations so the result obeys the same invariants as an
// interactively built graph.
func DecodeYAML(r io.Reader) (graph.State, error) {
	var doc Session
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return graph.State{}, fmt.Errorf("decoding session: %w", err)
	}

	st := graph.New(doc.Mode)
	for _, n := range doc.Nodes {
		if st.HasNode(n.ID) {
			return graph.State{}, fmt.Errorf("session: duplicate node %d", n.ID)
		}
		st.Nodes = append(st.Nodes, n)
	}
	for _, e := range doc.Edges {
		var err error
		st, err = graph.AddEdge(st, fmt.Sprint(e.Source), fmt.Sprint(e.Target))
		if err != nil {
			return graph.State{}, fmt.Errorf("session: %w", err)
		}
	}
	return st, nil
}

// Adjacency returns the adjacency matrix of st with rows and columns ordered
// by ascending node id, and that id order. An entry counts the edges from the
// row node to the column node; undirected edges count both ways, so a pair
// joined by a->b and b->a has entries of 2.
func Adjacency(st graph.State) (*mat.Dense, []int) {
	ids := st.IDs()
	slices.Sort(ids)
	n := len(ids)
	if n == 0 {
		return nil, ids
	}

	row := make(map[int]int, n)
	for i, id := range ids {
		row[id] = i
	}
	m := mat.NewDense(n, n, nil)
	for _, e := range st.Edges {
		i, j := row[e.Source], row[e.Target]
		m.Set(i, j, m.At(i, j)+1)
		if st.Mode == graph.Undirected && i != j {
			m.Set(j, i, m.At(j, i)+1)
		}
	}
	return m, ids
}

// Matrix is the JSON matrix document written by EncodeMatrix. A bare array of
// rows is also accepted by DecodeMatrix.
type Matrix struct {
	Mode graph.Mode  `json:"mode"`
	IDs  []int       `json:"ids"`
	Rows [][]float64 `json:"matrix"`
}

// EncodeMatrix writes st as a matrix document carrying its mode and node ids
// next to the rows, so DecodeMatrix gives back the same nodes and edges.
func EncodeMatrix(w io.Writer, st graph.State) error {
	m, ids := Adjacency(st)
	doc := Matrix{Mode: st.Mode, IDs: ids, Rows: [][]float64{}}
	if m != nil {
		r, _ := m.Dims()
		for i := 0; i < r; i++ {
			doc.Rows = append(doc.Rows, mat.Row(nil, i, m))
		}
	}
	if doc.IDs == nil {
		doc.IDs = []int{}
	}
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encoding matrix: %w", err)
	}
	return nil
}

// DecodeMatrix reads a matrix document or a bare JSON array of rows. For a
// bare array node ids are the row indexes and the graph is directed when the
// matrix is not symmetric. Any non-zero entry is an edge; in undirected mode
// an entry of 2 or more also adds the reverse edge.
func DecodeMatrix(r io.Reader) (graph.State, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return graph.State{}, fmt.Errorf("decoding matrix: %w", err)
	}

	var doc Matrix
	explicit := false
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return graph.State{}, fmt.Errorf("decoding matrix: %w", err)
		}
		explicit = true
	} else if err := json.Unmarshal(raw, &doc.Rows); err != nil {
		return graph.State{}, fmt.Errorf("decoding matrix: %w", err)
	}

	n := len(doc.Rows)
	if n == 0 {
		return graph.New(doc.Mode), nil
	}

	m := mat.NewDense(n, n, nil)
	for i, row := range doc.Rows {
		if len(row) != n {
			return graph.State{}, fmt.Errorf("matrix: row %d has %d columns, want %d", i, len(row), n)
		}
		m.SetRow(i, row)
	}

	ids := doc.IDs
	if !explicit {
		doc.Mode = graph.Undirected
		if !mat.Equal(m, m.T()) {
			doc.Mode = graph.Directed
		}
		ids = make([]int, n)
		for i := range ids {
			ids[i] = i
		}
	}
	if len(ids) != n {
		return graph.State{}, fmt.Errorf("matrix: %d ids for %d rows", len(ids), n)
	}
	if doc.Mode == graph.Undirected && !mat.Equal(m, m.T()) {
		return graph.State{}, fmt.Errorf("matrix: undirected matrix is not symmetric")
	}

	st := graph.New(doc.Mode)
	for _, id := range ids {
		if st.HasNode(id) {
			return graph.State{}, fmt.Errorf("matrix: duplicate node %d", id)
		}
		st.Nodes = append(st.Nodes, graph.Node{ID: id})
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := m.At(i, j)
			if v == 0 {
				continue
			}
			if doc.Mode == graph.Directed {
				st.Edges = append(st.Edges, graph.Edge{Source: ids[i], Target: ids[j]})
				continue
			}
			if j < i {
				continue
			}
			st.Edges = append(st.Edges, graph.Edge{Source: ids[i], Target: ids[j]})
			if v >= 2 && i != j {
				st.Edges = append(st.Edges, graph.Edge{Source: ids[j], Target: ids[i]})
			}
		}
	}
	return st, nil
}

// SaveFile writes st to path, choosing the format from the extension:
// .json for an adjacency matrix, anything else for YAML.
func SaveFile(path string, st graph.State) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if isMatrixPath(path) {
		err = EncodeMatrix(f, st)
	} else {
		err = EncodeYAML(f, st)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// LoadFile reads a graph written by SaveFile.
func LoadFile(path string) (graph.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return graph.State{}, err
	}
	defer f.Close()

	if isMatrixPath(path) {
		return DecodeMatrix(f)
	}
	return DecodeYAML(f)
}

func isMatrixPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
