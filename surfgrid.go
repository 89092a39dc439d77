// Package surfgrid tessellates rectangular height fields into triangle
// meshes. A height field is a surface y = f(x, z) sampled over a square
// (x, z) domain; the sample source may be a closure or the state grid of one
// of the finite-difference solvers in the pde subpackage. The package
// produces renderer-agnostic vertex and index buffers; uploading them is the
// caller's concern.
//
// Working in an OpenGL-style coordinate system: y is "up".
package surfgrid

import (
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Func is a height function y = f(x, z). Evaluation is done in float64 so
// that central finite differences with small steps (see
// [SquareTesselation.MeshDataDirectNormals]) do not drown in float32
// rounding; results are stored as float32 in mesh vertices.
type Func func(x, z float64) float64

// ShiftScaleInput decorates f so that the graphed surface is shifted and
// scaled in the (x, z) plane: the returned function evaluates
// f((x-xShift)*xScale, (z-zShift)*zScale).
func ShiftScaleInput(f Func, xShift, xScale, zShift, zScale float64) Func {
	return func(x, z float64) float64 {
		return f((x-xShift)*xScale, (z-zShift)*zScale)
	}
}

// ShiftScaleOutput decorates f so that its height values are scaled then
// shifted: the returned function evaluates f(x, z)*yScale + yShift.
func ShiftScaleOutput(f Func, yShift, yScale float64) Func {
	return func(x, z float64) float64 {
		return f(x, z)*yScale + yShift
	}
}

// Vertex is the renderer-facing vertex layout. Tex is zero for meshes that
// carry no texture.
type Vertex struct {
	Position ms3.Vec
	Color    ms3.Vec
	Normal   ms3.Vec
	Tex      ms2.Vec
}

// MeshData holds the flattened vertex and index buffers of one mesh, ready
// for upload by an external renderer. It is rebuilt or patched in place
// every time the underlying field or graph parameters change.
type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

// SetUniformColor sets every vertex color to rgb.
func (m *MeshData) SetUniformColor(rgb ms3.Vec) {
	for i := range m.Vertices {
		m.Vertices[i].Color = rgb
	}
}
