package slabgrid

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gridworks/slabgrid/internal/parallel"
)

// controlCoincidenceFactor scales the tolerance within which a grid node
// defers to an already-registered control-point vertex.
const controlCoincidenceFactor = 20

// gridNode is one (i,j) station intersection.
type gridNode struct {
	param  Point
	world  r3.Vec
	class  Classification
	vertex int // mesh vertex index; -1 when the node is off the region
}

// gridLayout is the classified station grid plus per-cell usability, the
// shared substrate for mesh faces, diagonals and connectors.
type gridLayout struct {
	us, vs []float64
	nodes  [][]gridNode // [i][j], i along U
	cellOK [][]bool     // [i][j], cell between stations i..i+1, j..j+1
}

// buildGrid classifies every station intersection and cell center, adds
// one mesh vertex per inside-or-on node, and one quad face per cell whose
// four corners exist and whose parametric center is inside-or-on.
//
// Classification fans out on the pool; vertices and faces are assembled
// sequentially in (i,j) order so results do not depend on worker count.
// ctrlWorld lists already-registered control-point vertices: a node within
// 20x tol of one reuses that vertex instead of creating its own.
func buildGrid(mesh *Mesh, reg Region, us, vs []float64, ctrlWorld []r3.Vec, ctrlVertex []int, tol float64, pool *parallel.Pool) *gridLayout {
	nu, nv := len(us), len(vs)
	g := &gridLayout{us: us, vs: vs}

	g.nodes = make([][]gridNode, nu)
	for i := range g.nodes {
		g.nodes[i] = make([]gridNode, nv)
	}

	// The boundary queries dominate cost, roughly O(stations^2) calls.
	pool.For(nu*nv, func(k int) {
		i, j := k/nv, k%nv
		n := &g.nodes[i][j]
		n.param = Point{U: us[i], V: vs[j]}
		n.world = reg.PointAt(us[i], vs[j])
		n.class = Classify(reg, n.world, tol)
		n.vertex = -1
	})

	for i := 0; i < nu; i++ {
		for j := 0; j < nv; j++ {
			n := &g.nodes[i][j]
			if !n.class.InsideOrOn() {
				continue
			}
			n.vertex = nearControlVertex(n.world, ctrlWorld, ctrlVertex, controlCoincidenceFactor*tol)
			if n.vertex < 0 {
				n.vertex = mesh.AddVertex(n.world)
			}
		}
	}

	if nu < 2 || nv < 2 {
		return g
	}

	// Corner checks alone would let a hole smaller than a cell slip
	// through; the center check catches that. It remains an approximation:
	// a hole off-center within a single cell still can.
	g.cellOK = make([][]bool, nu-1)
	for i := range g.cellOK {
		g.cellOK[i] = make([]bool, nv-1)
	}
	pool.For((nu-1)*(nv-1), func(k int) {
		i, j := k/(nv-1), k%(nv-1)
		center := reg.PointAt((us[i]+us[i+1])/2, (vs[j]+vs[j+1])/2)
		g.cellOK[i][j] = Classify(reg, center, tol).InsideOrOn()
	})

	for i := 0; i < nu-1; i++ {
		for j := 0; j < nv-1; j++ {
			if !g.cellOK[i][j] {
				continue
			}
			v00 := g.nodes[i][j].vertex
			v10 := g.nodes[i+1][j].vertex
			v11 := g.nodes[i+1][j+1].vertex
			v01 := g.nodes[i][j+1].vertex
			if v00 < 0 || v10 < 0 || v11 < 0 || v01 < 0 {
				g.cellOK[i][j] = false
				continue
			}
			if err := mesh.AddQuad(v00, v10, v11, v01); err != nil {
				// Unreachable: all four indices were just created.
				Logger().Debug("slabgrid: dropped quad", "i", i, "j", j, "err", err)
			}
		}
	}
	return g
}

// nearControlVertex returns the registered control vertex within radius of
// p, or -1. Control points are few, so a linear scan beats an index here.
func nearControlVertex(p r3.Vec, ctrlWorld []r3.Vec, ctrlVertex []int, radius float64) int {
	best := -1
	bestDist := radius
	for k, c := range ctrlWorld {
		if d := r3.Norm(r3.Sub(p, c)); d <= bestDist {
			best = ctrlVertex[k]
			bestDist = d
		}
	}
	return best
}

// insideNodes returns the nodes that carry a mesh vertex.
func (g *gridLayout) insideNodes() []*gridNode {
	var out []*gridNode
	for i := range g.nodes {
		for j := range g.nodes[i] {
			if g.nodes[i][j].vertex >= 0 {
				out = append(out, &g.nodes[i][j])
			}
		}
	}
	return out
}
