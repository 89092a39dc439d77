package scene_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chewxy/math32"
	"github.com/soypat/surfgrid/scene"
)

var (
	_ scene.Scene = (*scene.GraphScene)(nil)
	_ scene.Scene = (*scene.WaveScene)(nil)
	_ scene.Scene = (*scene.HeatScene)(nil)
)

func TestGraphScene(t *testing.T) {
	plane := func(x, z float64) float64 { return x }
	params := scene.GraphParameters{ScaleX: 1, ScaleZ: 1, ScaleY: 1}
	g, err := scene.NewGraphScene(8, 2, plane, params)
	require.NoError(t, err)

	mesh := g.Mesh()
	require.Len(t, mesh.Vertices, 9*9)
	require.Len(t, mesh.Indices, 12*8*8)
	for _, v := range mesh.Vertices {
		assert.InDelta(t, v.Position.X, v.Position.Y, 1e-6, "plane y=x heights")
		// Analytic normal of y=x is unit(-1, 1, 0).
		assert.InDelta(t, -0.70710678, v.Normal.X, 1e-3)
		assert.InDelta(t, 0.70710678, v.Normal.Y, 1e-3)
		assert.InDelta(t, 0, v.Normal.Z, 1e-3)
	}

	g.Parameters.ShiftY = 1
	g.Rebuild()
	for _, v := range g.Mesh().Vertices {
		assert.InDelta(t, v.Position.X+1, v.Position.Y, 1e-5, "shifted heights")
	}

	floor := g.Floor()
	require.Len(t, floor.Vertices, 9*9)
	for _, v := range floor.Vertices {
		assert.Zero(t, v.Position.Y, "floor must be flat")
		assert.Equal(t, scene.FloorColor, v.Color)
	}
}

func TestGraphSceneDefaults(t *testing.T) {
	g, err := scene.NewGraphScene(0, 0, func(x, z float64) float64 { return 0 }, scene.DefaultGraphParameters(6))
	require.NoError(t, err)
	require.Len(t, g.Mesh().Vertices, 751*751)
}

func TestWaveSceneStep(t *testing.T) {
	const n = 20
	w, err := scene.NewWaveScene(n)
	require.NoError(t, err)
	w.Solver.SetRand(rand.New(rand.NewSource(7)))
	w.Solver.DisturbanceProb = 1

	mesh := w.Mesh()
	require.Len(t, mesh.Vertices, n*n)
	require.Equal(t, n, w.GridSize())

	w.Step()
	u := w.Solver.Current()
	nonzero := 0
	for i := 2; i < n-2; i++ {
		for j := 2; j < n-2; j++ {
			want := w.DisplayScale * u.At(j, i)
			require.Equal(t, want, mesh.Vertices[i*n+j].Position.Y, "vertex (%d,%d)", j, i)
			if want != 0 {
				nonzero++
			}
		}
	}
	assert.NotZero(t, nonzero, "a forced disturbance must deform the mesh")

	// The outermost two vertex rings are never rewritten.
	for j := 0; j < n; j++ {
		assert.Zero(t, mesh.Vertices[j].Position.Y)
		assert.Zero(t, mesh.Vertices[(n-1)*n+j].Position.Y)
	}
}

func TestHeatSceneStep(t *testing.T) {
	const gridSize = 30
	h, err := scene.NewHeatScene(gridSize)
	require.NoError(t, err)
	m := h.DisplaySize()
	require.Equal(t, gridSize-10, m)
	mesh := h.Mesh()
	require.Len(t, mesh.Vertices, m*m)

	h.Step()
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			v := mesh.Vertices[i*m+j]
			want := h.DisplayScale * h.Solver.At(j+5, i+5)
			require.Equal(t, want, v.Position.Y, "vertex (%d,%d)", j, i)
			// Red↔yellow ramp with height magnitude.
			assert.Equal(t, float32(1), v.Color.X)
			assert.Equal(t, math32.Min(math32.Abs(want), 10)/10, v.Color.Y)
			assert.Equal(t, float32(0), v.Color.Z)
		}
	}
	// The initial hot square must raise the center of the display.
	center := mesh.Vertices[(m/2)*m+m/2].Position.Y
	assert.Positive(t, center, "hot region center height")
}
