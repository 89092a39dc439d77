package scene

import (
	"github.com/soypat/surfgrid"
	"github.com/soypat/surfgrid/pde"
)

// Wave scene defaults. The solver parameters differ from the pde package
// defaults: ripples on a pool read better with frequent small disturbances
// and gentler damping.
const (
	defaultWaveGridSize    = 600
	waveWidth              = 1.0
	waveDisplayScale       = 0.075
	waveSceneProb          = 0.003
	waveSceneSize          = 2.0
	waveSceneDamping       = 0.998
	waveScenePropSpeed     = 0.15
	waveVertexUpdateMargin = 2
)

// WaveScene drives a WaveSolver and mirrors its current field into the
// vertex heights of a width-1 surface mesh every Step. Normals are
// recomputed topologically each step since the surface deforms continuously.
type WaveScene struct {
	// Solver parameters may be tuned between steps.
	Solver *pde.WaveSolver
	// DisplayScale converts field values to mesh heights.
	DisplayScale float32
	// UpdateLighting controls the per-step normal recompute; disable it
	// when the consumer renders unlit.
	UpdateLighting bool

	tess *surfgrid.SquareTesselation
	mesh surfgrid.MeshData
	n    int // grid points per side, one more than the subdivision count
}

// NewWaveScene builds a wave simulation over a gridSize×gridSize field
// whose mesh has one vertex per field cell. gridSize <= 0 selects the
// default of 600.
func NewWaveScene(gridSize int) (*WaveScene, error) {
	if gridSize <= 0 {
		gridSize = defaultWaveGridSize
	}
	// The number of squares is one less than the number of grid points.
	tess, err := surfgrid.Generate(gridSize-1, waveWidth)
	if err != nil {
		return nil, err
	}
	solver, err := pde.NewWaveSolver(gridSize, gridSize)
	if err != nil {
		return nil, err
	}
	solver.DisturbanceProb = waveSceneProb
	solver.DisturbanceSize = waveSceneSize
	solver.DampingFactor = waveSceneDamping
	solver.PropSpeed = waveScenePropSpeed
	return &WaveScene{
		Solver:         solver,
		DisplayScale:   waveDisplayScale,
		UpdateLighting: true,
		tess:           tess,
		mesh:           tess.MeshData(FuncColor),
		n:              gridSize,
	}, nil
}

// Step advances the solver one timestep and copies the scaled field into
// the mesh vertex heights, skipping a small margin near the boundary where
// the field is pinned at zero anyway.
func (w *WaveScene) Step() {
	w.Solver.Update()
	u := w.Solver.Current()
	n := w.n
	const b = waveVertexUpdateMargin
	for i := b; i < n-b; i++ {
		row := i * n
		for j := b; j < n-b; j++ {
			w.mesh.Vertices[row+j].Position.Y = w.DisplayScale * u.At(j, i)
		}
	}
	if w.UpdateLighting {
		w.tess.UpdateNormals(&w.mesh)
	}
}

// Mesh returns the live surface mesh.
func (w *WaveScene) Mesh() *surfgrid.MeshData { return &w.mesh }

// GridSize returns the field dimension per side.
func (w *WaveScene) GridSize() int { return w.n }
