package slabgrid

import (
	"fmt"

	"github.com/dhconnelly/rtreego"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh accumulates grid vertices and quad faces. Vertex insertion is
// deduplicated within the mesh tolerance through an R-tree index, so no
// two vertices coincide; faces may only reference previously added
// vertices.
type Mesh struct {
	Vertices []r3.Vec
	Quads    [][4]int
	Normals  []r3.Vec

	tol   float64
	index *rtreego.Rtree
}

// meshVertex is the R-tree entry for one vertex.
type meshVertex struct {
	idx    int
	bounds rtreego.Rect
}

func (v *meshVertex) Bounds() rtreego.Rect { return v.bounds }

// NewMesh creates an empty mesh with the given coincidence tolerance.
func NewMesh(tol float64) *Mesh {
	return &Mesh{
		tol:   tol,
		index: rtreego.NewTree(3, 2, 8),
	}
}

// AddVertex inserts a vertex and returns its index. A point within the
// mesh tolerance of an existing vertex is not inserted again; the existing
// index is returned instead.
func (m *Mesh) AddVertex(p r3.Vec) int {
	if idx := m.VertexNear(p, m.tol); idx >= 0 {
		return idx
	}
	idx := len(m.Vertices)
	m.Vertices = append(m.Vertices, p)
	m.index.Insert(&meshVertex{
		idx:    idx,
		bounds: rtreego.Point{p.X, p.Y, p.Z}.ToRect(m.tol),
	})
	return idx
}

// VertexNear returns the index of the vertex closest to p within radius,
// or -1 when there is none.
func (m *Mesh) VertexNear(p r3.Vec, radius float64) int {
	if m.index == nil || len(m.Vertices) == 0 {
		return -1
	}
	bb := rtreego.Point{p.X, p.Y, p.Z}.ToRect(radius)
	best := -1
	bestDist := radius
	for _, hit := range m.index.SearchIntersect(bb) {
		mv := hit.(*meshVertex)
		d := r3.Norm(r3.Sub(m.Vertices[mv.idx], p))
		if d <= bestDist {
			best = mv.idx
			bestDist = d
		}
	}
	return best
}

// AddQuad appends a quad face over four existing vertex indices, in loop
// order.
func (m *Mesh) AddQuad(a, b, c, d int) error {
	n := len(m.Vertices)
	for _, i := range [4]int{a, b, c, d} {
		if i < 0 || i >= n {
			return fmt.Errorf("slabgrid: quad references unknown vertex %d", i)
		}
	}
	m.Quads = append(m.Quads, [4]int{a, b, c, d})
	return nil
}

// ComputeNormals fills Normals with per-vertex unit normals, averaging the
// face normals of incident quads. Vertices with no incident face keep a
// zero normal; Compact removes them anyway.
func (m *Mesh) ComputeNormals() {
	m.Normals = make([]r3.Vec, len(m.Vertices))
	for _, q := range m.Quads {
		// Quad normal from the two diagonals; exact for planar quads,
		// a stable average otherwise.
		n := r3.Cross(
			r3.Sub(m.Vertices[q[2]], m.Vertices[q[0]]),
			r3.Sub(m.Vertices[q[3]], m.Vertices[q[1]]),
		)
		for _, i := range q {
			m.Normals[i] = r3.Add(m.Normals[i], n)
		}
	}
	for i, n := range m.Normals {
		if r3.Norm(n) > 0 {
			m.Normals[i] = r3.Unit(n)
		}
	}
}

// Compact removes vertices referenced by no quad and remaps the faces.
// Normals, when present, are compacted alongside the vertices.
func (m *Mesh) Compact() {
	used := make([]bool, len(m.Vertices))
	for _, q := range m.Quads {
		for _, i := range q {
			used[i] = true
		}
	}

	remap := make([]int, len(m.Vertices))
	vertices := m.Vertices[:0]
	var normals []r3.Vec
	if m.Normals != nil {
		normals = m.Normals[:0]
	}
	next := 0
	for i, u := range used {
		if !u {
			remap[i] = -1
			continue
		}
		remap[i] = next
		vertices = append(vertices, m.Vertices[i])
		if m.Normals != nil {
			normals = append(normals, m.Normals[i])
		}
		next++
	}
	m.Vertices = vertices
	m.Normals = normals
	for qi, q := range m.Quads {
		for k, i := range q {
			q[k] = remap[i]
		}
		m.Quads[qi] = q
	}

	// Rebuild the index over the surviving vertices.
	m.index = rtreego.NewTree(3, 2, 8)
	for i, p := range m.Vertices {
		m.index.Insert(&meshVertex{
			idx:    i,
			bounds: rtreego.Point{p.X, p.Y, p.Z}.ToRect(m.tol),
		})
	}
}
