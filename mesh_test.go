package slabgrid

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestMeshAddVertexDedupe(t *testing.T) {
	m := NewMesh(1e-6)

	a := m.AddVertex(r3.Vec{})
	b := m.AddVertex(r3.Vec{X: 1})
	if a == b {
		t.Fatalf("distinct vertices share index %d", a)
	}

	// Within tolerance of an existing vertex: same index, no growth.
	c := m.AddVertex(r3.Vec{X: 1 + 4e-7})
	if c != b {
		t.Errorf("AddVertex() near-duplicate = %d, want %d", c, b)
	}
	if len(m.Vertices) != 2 {
		t.Errorf("vertex count = %d, want 2", len(m.Vertices))
	}

	// Just beyond tolerance: a new vertex.
	d := m.AddVertex(r3.Vec{X: 1.00001})
	if d == b || len(m.Vertices) != 3 {
		t.Errorf("AddVertex() beyond tolerance reused index (%d vs %d), count %d",
			d, b, len(m.Vertices))
	}
}

func TestMeshVertexNear(t *testing.T) {
	m := NewMesh(1e-6)
	idx := m.AddVertex(r3.Vec{X: 2, Y: 3})

	if got := m.VertexNear(r3.Vec{X: 2.05, Y: 3}, 0.1); got != idx {
		t.Errorf("VertexNear() = %d, want %d", got, idx)
	}
	if got := m.VertexNear(r3.Vec{X: 2.5, Y: 3}, 0.1); got != -1 {
		t.Errorf("VertexNear() out of radius = %d, want -1", got)
	}
}

func TestMeshAddQuadBounds(t *testing.T) {
	m := NewMesh(1e-6)
	m.AddVertex(r3.Vec{})
	m.AddVertex(r3.Vec{X: 1})

	if err := m.AddQuad(0, 1, 2, 3); err == nil {
		t.Error("AddQuad() with unknown vertices succeeded")
	}
	if len(m.Quads) != 0 {
		t.Errorf("failed AddQuad() still appended a face")
	}
}

func TestMeshNormals(t *testing.T) {
	m := NewMesh(1e-6)
	v0 := m.AddVertex(r3.Vec{})
	v1 := m.AddVertex(r3.Vec{X: 1})
	v2 := m.AddVertex(r3.Vec{X: 1, Y: 1})
	v3 := m.AddVertex(r3.Vec{Y: 1})
	if err := m.AddQuad(v0, v1, v2, v3); err != nil {
		t.Fatalf("AddQuad() failed: %v", err)
	}

	m.ComputeNormals()
	want := r3.Vec{Z: 1}
	for i, n := range m.Normals {
		if !vecNear(n, want, 1e-12) {
			t.Errorf("normal[%d] = %+v, want %+v", i, n, want)
		}
	}
}

func TestMeshCompact(t *testing.T) {
	m := NewMesh(1e-6)
	stray := m.AddVertex(r3.Vec{X: 50, Y: 50}) // referenced by no face
	v0 := m.AddVertex(r3.Vec{})
	v1 := m.AddVertex(r3.Vec{X: 1})
	v2 := m.AddVertex(r3.Vec{X: 1, Y: 1})
	v3 := m.AddVertex(r3.Vec{Y: 1})
	if err := m.AddQuad(v0, v1, v2, v3); err != nil {
		t.Fatalf("AddQuad() failed: %v", err)
	}
	_ = stray

	m.ComputeNormals()
	m.Compact()

	if len(m.Vertices) != 4 {
		t.Fatalf("Compact() left %d vertices, want 4", len(m.Vertices))
	}
	if len(m.Normals) != 4 {
		t.Fatalf("Compact() left %d normals, want 4", len(m.Normals))
	}
	for _, q := range m.Quads {
		for _, i := range q {
			if i < 0 || i >= len(m.Vertices) {
				t.Fatalf("Compact() left dangling face index %d", i)
			}
		}
	}
	// The face still outlines the unit square.
	q := m.Quads[0]
	if !vecNear(m.Vertices[q[0]], r3.Vec{}, 0) || !vecNear(m.Vertices[q[2]], r3.Vec{X: 1, Y: 1}, 0) {
		t.Errorf("Compact() remapped face to wrong vertices: %+v", q)
	}

	// The rebuilt index still answers queries.
	if got := m.VertexNear(r3.Vec{X: 1, Y: 1}, 1e-6); got != q[2] {
		t.Errorf("VertexNear() after Compact = %d, want %d", got, q[2])
	}
}
