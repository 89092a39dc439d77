// Package scene adapts the pde solvers and the surfgrid tessellator into
// per-frame mesh producers. A scene owns exactly one solver (or graph
// function) and one mesh; Step advances the simulation one timestep and
// patches the mesh's vertex heights, colors and normals in place. The
// renderer reads the mesh only after Step returns — scenes do no locking
// and a Step must not run concurrently with a mesh reader.
package scene

import (
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/surfgrid"
)

// Colors shared by the scenes.
var (
	// FloorColor is the dimmed gold used for the (x, z) plane floor mesh.
	FloorColor = ms3.Vec{X: 0.8 * 168.0 / 255.0, Y: 0.8 * 125.0 / 255.0, Z: 0.8 * 50.0 / 255.0}
	// FuncColor is the red used for function and simulation surfaces.
	FuncColor = ms3.Vec{X: 1, Y: 0, Z: 0}
)

// A Scene produces a triangle mesh that may change from one timestep to the
// next. Step either advances a simulation or is a no-op for static scenes;
// Mesh returns the live mesh for the external upload path.
type Scene interface {
	Step()
	Mesh() *surfgrid.MeshData
}
