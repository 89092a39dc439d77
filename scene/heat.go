package scene

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/surfgrid"
	"github.com/soypat/surfgrid/pde"
)

// Heat scene defaults.
const (
	defaultHeatGridSize = 400
	heatWidth           = 1.0
	heatDisplayScale    = 0.015
	// heatDisplayMargin excludes the outermost field cells from the
	// displayed mesh so the fixed boundary condition does not show as a
	// rim around the deforming interior.
	heatDisplayMargin = 5
)

// HeatScene drives a HeatSolver and mirrors its interior into the vertex
// heights and colors of a surface mesh every Step. Vertex color runs from
// red toward yellow with the magnitude of the displayed height.
type HeatScene struct {
	Solver *pde.HeatSolver
	// DisplayScale converts field values to mesh heights.
	DisplayScale float32
	// UpdateLighting controls the per-step normal recompute.
	UpdateLighting bool

	tess *surfgrid.SquareTesselation
	mesh surfgrid.MeshData
	m    int // displayed grid points per side
}

// NewHeatScene builds a heat simulation over a gridSize×gridSize field.
// The mesh covers the field interior minus a 5-cell margin on every side.
// gridSize <= 0 selects the default of 400.
func NewHeatScene(gridSize int) (*HeatScene, error) {
	if gridSize <= 0 {
		gridSize = defaultHeatGridSize
	}
	m := gridSize - 2*heatDisplayMargin
	tess, err := surfgrid.Generate(m-1, heatWidth)
	if err != nil {
		return nil, err
	}
	solver, err := pde.NewHeatSolver(gridSize, gridSize)
	if err != nil {
		return nil, err
	}
	h := &HeatScene{
		Solver:         solver,
		DisplayScale:   heatDisplayScale,
		UpdateLighting: true,
		tess:           tess,
		mesh:           tess.MeshData(FuncColor),
		m:              m,
	}
	h.tess.UpdateNormals(&h.mesh)
	return h, nil
}

// Step advances the solver one timestep and copies the scaled interior into
// the mesh vertex heights and colors.
func (h *HeatScene) Step() {
	h.Solver.Update()
	const b = heatDisplayMargin
	m := h.m
	for i := 0; i < m; i++ {
		row := i * m
		for j := 0; j < m; j++ {
			y := h.DisplayScale * h.Solver.At(j+b, i+b)
			v := &h.mesh.Vertices[row+j]
			v.Position.Y = y
			v.Color = heatColor(y)
		}
	}
	if h.UpdateLighting {
		h.tess.UpdateNormals(&h.mesh)
	}
}

// heatColor maps a displayed height to a red↔yellow ramp: full red at zero
// magnitude, shifting toward yellow as the magnitude approaches 10.
func heatColor(height float32) ms3.Vec {
	g := math32.Min(math32.Abs(height), 10) / 10
	return ms3.Vec{X: 1, Y: g, Z: 0}
}

// Mesh returns the live surface mesh.
func (h *HeatScene) Mesh() *surfgrid.MeshData { return &h.mesh }

// DisplaySize returns the displayed grid points per side, which is the
// field dimension minus twice the display margin.
func (h *HeatScene) DisplaySize() int { return h.m }
