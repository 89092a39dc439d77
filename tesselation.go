package surfgrid

import (
	"errors"
	"math"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// Square groups the four corner vertex indices of one grid cell, clockwise
// from the back-left corner: back-left, back-right, front-right, front-left.
// "Back" is the low-z row.
type Square struct {
	corners [4]uint32
}

// triangle references three mesh vertices in counter-clockwise order.
// reflect marks the bottom-facing duplicate of a face, whose normal is
// negated so the underside of the surface is lit like the top.
type triangle struct {
	indices [3]uint32
	reflect bool
}

// triangles decomposes the square into 2 top faces plus their 2 bottom-facing
// duplicates. flip selects which diagonal splits the square.
func (sq Square) triangles(flip bool) [4]triangle {
	c := sq.corners
	if flip {
		return [4]triangle{
			{indices: [3]uint32{c[0], c[1], c[3]}},
			{indices: [3]uint32{c[1], c[2], c[3]}},
			{indices: [3]uint32{c[0], c[3], c[1]}, reflect: true},
			{indices: [3]uint32{c[1], c[3], c[2]}, reflect: true},
		}
	}
	return [4]triangle{
		{indices: [3]uint32{c[0], c[2], c[3]}},
		{indices: [3]uint32{c[0], c[1], c[2]}},
		{indices: [3]uint32{c[0], c[3], c[2]}, reflect: true},
		{indices: [3]uint32{c[0], c[2], c[1]}, reflect: true},
	}
}

func (t triangle) normal(vertices []ms3.Vec) ms3.Vec {
	return triangleNormal(vertices[t.indices[0]], vertices[t.indices[1]], vertices[t.indices[2]], t.reflect)
}

// triangleNormal returns the unit normal of the v1,v2,v3 face, negated when
// reflect is set.
func triangleNormal(v1, v2, v3 ms3.Vec, reflect bool) ms3.Vec {
	b := ms3.Sub(v2, v1)
	a := ms3.Sub(v3, v1)
	n := ms3.Cross(a, b)
	norm := ms3.Norm(n)
	if reflect {
		norm = -norm
	}
	return ms3.Scale(1/norm, n)
}

// SquareTesselation subdivides the [-width/2, width/2] square of the (x, z)
// plane into n×n cells over an (n+1)×(n+1) vertex grid. Vertices are stored
// row-major, x varying fastest, rows from back (low z) to front.
type SquareTesselation struct {
	n        int
	width    float64
	vertices []ms3.Vec
	squares  []Square
}

// Generate builds a flat tessellation: all vertex heights start at zero.
// Use [SquareTesselation.ApplyFunction] or a per-frame field copy to raise
// the surface afterwards.
func Generate(n int, width float64) (*SquareTesselation, error) {
	if n < 1 {
		return nil, errors.New("tesselation requires at least one subdivision")
	}
	if width <= 0 {
		return nil, errors.New("zero or negative tesselation width")
	}
	ticks := make([]float64, n+1)
	for i := range ticks {
		ticks[i] = float64(i)*(width/float64(n)) - width/2
	}
	vertices := make([]ms3.Vec, 0, (n+1)*(n+1))
	for _, z := range ticks {
		for _, x := range ticks {
			vertices = append(vertices, ms3.Vec{X: float32(x), Z: float32(z)})
		}
	}
	squares := make([]Square, 0, n*n)
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			i := uint32(z*(n+1) + x)
			step := uint32(n + 1)
			squares = append(squares, Square{corners: [4]uint32{i, i + 1, i + step + 1, i + step}})
		}
	}
	return &SquareTesselation{n: n, width: width, vertices: vertices, squares: squares}, nil
}

// GenerateFunc builds a tessellation with vertex heights evaluated from f at
// generation time.
func GenerateFunc(n int, width float64, f Func) (*SquareTesselation, error) {
	st, err := Generate(n, width)
	if err != nil {
		return nil, err
	}
	return st.ApplyFunction(f), nil
}

// N returns the subdivision count per axis.
func (st *SquareTesselation) N() int { return st.n }

// Width returns the side length of the tessellated square domain.
func (st *SquareTesselation) Width() float64 { return st.width }

// NumVertices returns (n+1)².
func (st *SquareTesselation) NumVertices() int { return len(st.vertices) }

// NumSquares returns n².
func (st *SquareTesselation) NumSquares() int { return len(st.squares) }

// ApplyFunction recomputes every vertex height in place as y = f(x, z) and
// returns st for chaining.
func (st *SquareTesselation) ApplyFunction(f Func) *SquareTesselation {
	for i := range st.vertices {
		v := &st.vertices[i]
		v.Y = float32(f(float64(v.X), float64(v.Z)))
	}
	return st
}

// flip chooses the diagonal split of a square: the square is split across
// the diagonal whose corner heights match more closely, which avoids the
// worst "bowtie" faceting on sharply curved surfaces.
func (st *SquareTesselation) flip(sq Square) bool {
	diag1 := math32.Abs(st.vertices[sq.corners[0]].Y - st.vertices[sq.corners[2]].Y)
	diag2 := math32.Abs(st.vertices[sq.corners[1]].Y - st.vertices[sq.corners[3]].Y)
	return diag1 > diag2
}

// MeshData assembles the vertex and index buffers for the current vertex
// heights with a uniform color. Each square contributes 4 triangles: 2 top
// faces and 2 bottom-facing duplicates with reflected normals, so the
// surface is lit correctly from either side.
//
// A vertex keeps the normal of the first triangle that touches it. Adjacent
// face normals are not averaged; the resulting faceted look is part of the
// visual character of static graphs. Compare [SquareTesselation.UpdateNormals],
// which overwrites with the last touching triangle instead.
func (st *SquareTesselation) MeshData(color ms3.Vec) MeshData {
	indices := make([]uint32, 0, 12*len(st.squares))
	normals := make([]ms3.Vec, len(st.vertices))
	seen := make([]bool, len(st.vertices))
	for _, sq := range st.squares {
		for _, t := range sq.triangles(st.flip(sq)) {
			indices = append(indices, t.indices[0], t.indices[1], t.indices[2])
			for _, vi := range t.indices {
				if !seen[vi] {
					seen[vi] = true
					normals[vi] = t.normal(st.vertices)
				}
			}
		}
	}
	vertices := make([]Vertex, len(st.vertices))
	for i, p := range st.vertices {
		vertices[i] = Vertex{Position: p, Color: color, Normal: normals[i]}
	}
	return MeshData{Vertices: vertices, Indices: indices}
}

// MeshDataDirectNormals assembles the same buffers as
// [SquareTesselation.MeshData] but derives each vertex normal analytically
// from f by central finite differences instead of from mesh topology. For a
// height field y = f(x, z) the surface normal is unit(-∂f/∂x, 1, -∂f/∂z).
// Normals vary smoothly across faces, which suits the live function grapher.
func (st *SquareTesselation) MeshDataDirectNormals(color ms3.Vec, f Func) MeshData {
	indices := make([]uint32, 0, 12*len(st.squares))
	for _, sq := range st.squares {
		for _, t := range sq.triangles(st.flip(sq)) {
			indices = append(indices, t.indices[0], t.indices[1], t.indices[2])
		}
	}
	vertices := make([]Vertex, len(st.vertices))
	for i, p := range st.vertices {
		vertices[i] = Vertex{Position: p, Color: color, Normal: normalFromFunc(p, f)}
	}
	return MeshData{Vertices: vertices, Indices: indices}
}

func normalFromFunc(v ms3.Vec, f Func) ms3.Vec {
	const h = 1e-6
	x, z := float64(v.X), float64(v.Z)
	dydx := (f(x+h, z) - f(x-h, z)) / (2 * h)
	dydz := (f(x, z+h) - f(x, z-h)) / (2 * h)
	mag := math.Sqrt(dydx*dydx + 1 + dydz*dydz)
	return ms3.Vec{X: float32(-dydx / mag), Y: float32(1 / mag), Z: float32(-dydz / mag)}
}

// UpdateNormals recomputes m's per-vertex normals in place from the current
// vertex positions, for meshes whose heights are rewritten every timestep by
// a deforming field. m must have been produced by this tessellation.
//
// The pass iterates a fixed (non-flipped) split of every square and simply
// overwrites the normal of all three vertices of each triangle, so a vertex
// ends up with the normal of the last triangle that touches it. This is the
// opposite tie-break from [SquareTesselation.MeshData]; the time-varying
// scenes have always been rendered with this rule and keep it.
func (st *SquareTesselation) UpdateNormals(m *MeshData) {
	for _, sq := range st.squares {
		for _, t := range sq.triangles(false) {
			i1, i2, i3 := t.indices[0], t.indices[1], t.indices[2]
			n := triangleNormal(m.Vertices[i1].Position, m.Vertices[i2].Position, m.Vertices[i3].Position, t.reflect)
			m.Vertices[i1].Normal = n
			m.Vertices[i2].Normal = n
			m.Vertices[i3].Normal = n
		}
	}
}
