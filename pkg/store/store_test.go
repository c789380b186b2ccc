package store

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/anthonybishopric/graphwidgets/pkg/graph"
)

func sample(t *testing.T, mode graph.Mode) graph.State {
	t.Helper()
	s := graph.New(mode)
	var err error
	for _, id := range []string{"0", "1", "2"} {
		if s, err = graph.AddNode(s, id); err != nil {
			t.Fatalf("add node: %v", err)
		}
	}
	for _, e := range [][2]string{{"0", "1"}, {"1", "2"}} {
		if s, err = graph.AddEdge(s, e[0], e[1]); err != nil {
			t.Fatalf("add edge: %v", err)
		}
	}
	s.Nodes[0].X, s.Nodes[0].Y = 10, 20
	return s
}

func TestYAMLRoundTrip(t *testing.T) {
	st := sample(t, graph.Directed)
	st, _ = graph.Pin(st, 2, 7, 8)

	var buf bytes.Buffer
	if err := EncodeYAML(&buf, st); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(buf.String(), "mode: directed") {
		t.Errorf("expected readable mode, got:\n%s", buf.String())
	}

	got, err := DecodeYAML(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Mode != graph.Directed {
		t.Errorf("expected directed, got %v", got.Mode)
	}
	if len(got.Nodes) != 3 || len(got.Edges) != 2 {
		t.Fatalf("expected 3 nodes and 2 edges, got %+v", got)
	}
	if got.Nodes[0].X != 10 || got.Nodes[0].Y != 20 {
		t.Errorf("position lost: %+v", got.Nodes[0])
	}
	if !got.Nodes[2].Pinned() || *got.Nodes[2].Fx != 7 {
		t.Errorf("pin lost: %+v", got.Nodes[2])
	}
}

func TestDecodeYAMLRejectsBadEdges(t *testing.T) {
	doc := `
mode: undirected
nodes:
  - {id: 1, x: 0, y: 0}
edges:
  - {source: 1, target: 2}
`
	if _, err := DecodeYAML(strings.NewReader(doc)); err == nil {
		t.Error("expected error for edge to a missing node")
	}

	doc = `
mode: sideways
nodes: []
`
	if _, err := DecodeYAML(strings.NewReader(doc)); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestAdjacencyUndirectedIsSymmetric(t *testing.T) {
	m, ids := Adjacency(sample(t, graph.Undirected))
	if len(ids) != 3 {
		t.Fatalf("expected 3 ids, got %v", ids)
	}
	if m.At(0, 1) != 1 || m.At(1, 0) != 1 || m.At(0, 2) != 0 {
		t.Errorf("unexpected matrix values")
	}
}

func TestMatrixRoundTripDirected(t *testing.T) {
	st := sample(t, graph.Directed)

	var buf bytes.Buffer
	if err := EncodeMatrix(&buf, st); err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"mode":"directed","ids":[0,1,2],"matrix":[[0,1,0],[0,0,1],[0,0,0]]}`
	if got := strings.TrimSpace(buf.String()); got != want {
		t.Errorf("unexpected matrix %s", got)
	}

	got, err := DecodeMatrix(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Mode != graph.Directed {
		t.Errorf("expected directed mode, got %v", got.Mode)
	}
	if !got.HasEdge(0, 1) || !got.HasEdge(1, 2) || len(got.Edges) != 2 {
		t.Errorf("unexpected edges %v", got.Edges)
	}
}

func TestMatrixRoundTripUndirected(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeMatrix(&buf, sample(t, graph.Undirected)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeMatrix(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Mode != graph.Undirected {
		t.Errorf("expected undirected mode, got %v", got.Mode)
	}
	if len(got.Edges) != 2 {
		t.Errorf("expected 2 edges, got %v", got.Edges)
	}
}

// edgeSet keys edges by endpoints; undirected edges are unordered pairs
// counted with multiplicity.
func edgeSet(st graph.State) map[[2]int]int {
	set := make(map[[2]int]int)
	for _, e := range st.Edges {
		k := [2]int{e.Source, e.Target}
		if st.Mode == graph.Undirected && k[0] > k[1] {
			k[0], k[1] = k[1], k[0]
		}
		set[k]++
	}
	return set
}

func TestMatrixRoundTripKeepsReversePairs(t *testing.T) {
	for _, mode := range []graph.Mode{graph.Undirected, graph.Directed} {
		t.Run(mode.String(), func(t *testing.T) {
			st := graph.New(mode)
			for _, id := range []string{"4", "9", "7"} {
				st, _ = graph.AddNode(st, id)
			}
			for _, e := range [][2]string{{"4", "9"}, {"9", "4"}, {"9", "7"}, {"7", "7"}} {
				var err error
				if st, err = graph.AddEdge(st, e[0], e[1]); err != nil {
					t.Fatalf("add edge %v: %v", e, err)
				}
			}

			var buf bytes.Buffer
			if err := EncodeMatrix(&buf, st); err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := DecodeMatrix(&buf)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Mode != mode {
				t.Errorf("expected %v mode, got %v", mode, got.Mode)
			}
			if !reflect.DeepEqual(got.IDs(), []int{4, 7, 9}) {
				t.Errorf("unexpected ids %v", got.IDs())
			}
			if !reflect.DeepEqual(edgeSet(got), edgeSet(st)) {
				t.Errorf("edges changed: %v, want %v", got.Edges, st.Edges)
			}
		})
	}
}

func TestDecodeBareMatrix(t *testing.T) {
	got, err := DecodeMatrix(strings.NewReader(`[[0,1,0],[0,0,1],[0,0,0]]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Mode != graph.Directed || !got.HasEdge(0, 1) || !got.HasEdge(1, 2) || len(got.Edges) != 2 {
		t.Errorf("asymmetric matrix should load as directed, got %+v", got)
	}

	got, err = DecodeMatrix(strings.NewReader(`[[0,1],[1,0]]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Mode != graph.Undirected || len(got.Edges) != 1 {
		t.Errorf("symmetric matrix should load as undirected, got %+v", got)
	}
}

func TestDecodeMatrixErrors(t *testing.T) {
	if _, err := DecodeMatrix(strings.NewReader(`[[0,1],[1]]`)); err == nil {
		t.Error("expected error for ragged matrix")
	}
	if _, err := DecodeMatrix(strings.NewReader(`not json`)); err == nil {
		t.Error("expected error for invalid json")
	}
	if _, err := DecodeMatrix(strings.NewReader(`{"mode":"directed","ids":[1],"matrix":[[0,1],[0,0]]}`)); err == nil {
		t.Error("expected error for missing ids")
	}
	if _, err := DecodeMatrix(strings.NewReader(`{"mode":"undirected","ids":[1,2],"matrix":[[0,1],[0,0]]}`)); err == nil {
		t.Error("expected error for an asymmetric undirected matrix")
	}
	if _, err := DecodeMatrix(strings.NewReader(`{"mode":"directed","ids":[3,3],"matrix":[[0,1],[0,0]]}`)); err == nil {
		t.Error("expected error for duplicate ids")
	}
	st, err := DecodeMatrix(strings.NewReader(`[]`))
	if err != nil || len(st.Nodes) != 0 {
		t.Errorf("expected empty graph, got %+v, %v", st, err)
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	st := sample(t, graph.Directed)

	for _, name := range []string{"graph.yaml", "graph.json"} {
		path := filepath.Join(dir, name)
		if err := SaveFile(path, st); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
		got, err := LoadFile(path)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if len(got.Nodes) != 3 || len(got.Edges) != 2 {
			t.Errorf("%s: expected 3 nodes and 2 edges, got %+v", name, got)
		}
	}
}
