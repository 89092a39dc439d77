// Package pde implements explicit finite-difference integrators for the 2D
// wave and heat equations over fixed-size scalar grids. The solvers are the
// CPU reference implementations that feed the surface meshes in the parent
// package: each Update call advances one timestep, after which the current
// field may be copied into mesh vertex heights.
//
// All operations are total over well-formed numeric input. There is no
// detection of numerical blow-up: parameters outside a solver's documented
// stability range make NaN or Inf propagate through the grid as ordinary
// float values. That is a caller configuration error, not a runtime error
// condition, and the hot per-cell loops stay free of error returns.
package pde

// Field is a rectangular grid of float32 samples, xSize columns by ySize
// rows, stored row-major. A solver owns its fields exclusively and mutates
// them only inside Update.
type Field struct {
	xSize, ySize int
	data         []float32
}

// NewField allocates a zero-filled xSize by ySize grid.
func NewField(xSize, ySize int) *Field {
	return &Field{
		xSize: xSize, ySize: ySize,
		data: make([]float32, xSize*ySize),
	}
}

// XSize returns the number of columns.
func (f *Field) XSize() int { return f.xSize }

// YSize returns the number of rows.
func (f *Field) YSize() int { return f.ySize }

// At returns the sample at column x, row y.
func (f *Field) At(x, y int) float32 { return f.data[y*f.xSize+x] }

// Set writes the sample at column x, row y.
func (f *Field) Set(x, y int, v float32) { f.data[y*f.xSize+x] = v }

// Values returns the backing row-major sample slice. Callers must treat it
// as read-only; it is exposed for bulk copies into vertex buffers.
func (f *Field) Values() []float32 { return f.data }

// copyFrom overwrites f's samples with those of src. Both fields must have
// identical dimensions.
func (f *Field) copyFrom(src *Field) {
	copy(f.data, src.data)
}
