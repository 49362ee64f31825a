package bsp

import "testing"

// A unit square: vertices 0..3, edges connect them so that walking the
// face-edge run in order traces the square's perimeter.
func squareModel() *BspModel {
	return &BspModel{
		Vertices: []Vertex{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 1, Y: 1, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		Edges: []Edge{
			{V0: 0, V1: 1},
			{V0: 1, V1: 2},
			{V0: 2, V1: 3},
			{V0: 3, V1: 0},
		},
		FaceEdges: []FaceEdge{{Value: 0}, {Value: 1}, {Value: 2}, {Value: 3}},
		Faces:     []Face{{FirstEdge: 0, NumEdges: 4}},
	}
}

func TestFacePolygonPositiveEdgeWalk(t *testing.T) {
	m := squareModel()
	verts, err := m.FacePolygon(m.Faces[0])
	if err != nil {
		t.Fatalf("FacePolygon: %v", err)
	}
	want := []Vertex{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	if len(verts) != len(want) {
		t.Fatalf("got %d vertices, want %d", len(verts), len(want))
	}
	for i := range want {
		if verts[i] != want[i] {
			t.Errorf("vertex %d = %+v, want %+v", i, verts[i], want[i])
		}
	}
}

func TestFacePolygonNegativeEdgeSwapsEndpoint(t *testing.T) {
	m := squareModel()
	// Walk edge 1 in reverse: negative index selects V1 as the start.
	m.FaceEdges = []FaceEdge{{Value: 0}, {Value: -1}}
	m.Faces = []Face{{FirstEdge: 0, NumEdges: 2}}

	verts, err := m.FacePolygon(m.Faces[0])
	if err != nil {
		t.Fatalf("FacePolygon: %v", err)
	}
	// Edge 0 positive gives V0 (vertex 0); edge 1 negative gives V1 (vertex 2).
	want := []Vertex{{0, 0, 0}, {1, 1, 0}}
	if verts[0] != want[0] || verts[1] != want[1] {
		t.Errorf("got %+v, want %+v", verts, want)
	}
}

func TestFacePolygonIndexOutOfRange(t *testing.T) {
	m := squareModel()
	m.Faces = []Face{{FirstEdge: 0, NumEdges: 99}}
	if _, err := m.FacePolygon(m.Faces[0]); err == nil {
		t.Fatal("expected an out-of-range error, got nil")
	}
}

func TestLeafCenterArithmeticMean(t *testing.T) {
	m := squareModel()
	m.LeafFaces = []LeafFaceEntry{0}
	leaf := BspLeaf{FirstLeafFace: 0, NumLeafFaces: 1}

	center, err := m.LeafCenter(leaf)
	if err != nil {
		t.Fatalf("LeafCenter: %v", err)
	}
	wantX, wantY := float32(0.5), float32(0.5)
	if center.X() != wantX || center.Y() != wantY {
		t.Errorf("center = %+v, want (%v, %v, 0)", center, wantX, wantY)
	}
}

func TestLeafCenterEmptyLeaf(t *testing.T) {
	m := squareModel()
	center, err := m.LeafCenter(BspLeaf{})
	if err != nil {
		t.Fatalf("LeafCenter: %v", err)
	}
	if center.X() != 0 || center.Y() != 0 || center.Z() != 0 {
		t.Errorf("empty leaf center = %+v, want zero vector", center)
	}
}

func TestModelCenterArithmeticMean(t *testing.T) {
	m := squareModel()
	model := Model{FirstFace: 0, NumFaces: 1}

	center, err := m.ModelCenter(model)
	if err != nil {
		t.Fatalf("ModelCenter: %v", err)
	}
	if center.X() != 0.5 || center.Y() != 0.5 {
		t.Errorf("center = %+v, want (0.5, 0.5, 0)", center)
	}
}
