package scene

import (
	"github.com/soypat/surfgrid"
)

// Default graph scene dimensions.
const (
	defaultGraphSubdivisions = 750
	defaultGraphWidth        = 6.0
)

// GraphParameters shift and scale the graphed function in all three axes.
// They are applied around the raw function as
// f((x-ShiftX)*ScaleX, (z-ShiftZ)*ScaleZ)*ScaleY + ShiftY.
type GraphParameters struct {
	ScaleX, ScaleZ, ScaleY float64
	ShiftX, ShiftZ, ShiftY float64
}

// DefaultGraphParameters returns the parameter set the grapher starts with
// for a domain of the given width.
func DefaultGraphParameters(width float64) GraphParameters {
	return GraphParameters{
		ScaleX: 2, ScaleZ: 2, ScaleY: 0.5,
		ShiftX: width / 2, ShiftZ: width / 2, ShiftY: 0.25,
	}
}

// GraphScene is the static function grapher: a tessellated surface of a
// height function plus a flat floor mesh. The surface uses analytic normals
// from the function itself, which light smoothly; call Rebuild after
// changing Parameters or the function to regenerate both meshes.
type GraphScene struct {
	// Parameters may be adjusted at any time; Rebuild applies them.
	Parameters GraphParameters

	f     surfgrid.Func
	tess  *surfgrid.SquareTesselation
	mesh  surfgrid.MeshData
	floor surfgrid.MeshData
}

// NewGraphScene builds a graph of f over a width-sized domain with the
// given subdivision count. Passing subdivisions <= 0 or width <= 0 selects
// the defaults (750 subdivisions, width 6).
func NewGraphScene(subdivisions int, width float64, f surfgrid.Func, params GraphParameters) (*GraphScene, error) {
	if subdivisions <= 0 {
		subdivisions = defaultGraphSubdivisions
	}
	if width <= 0 {
		width = defaultGraphWidth
	}
	tess, err := surfgrid.Generate(subdivisions, width)
	if err != nil {
		return nil, err
	}
	floorTess, err := surfgrid.Generate(subdivisions, width)
	if err != nil {
		return nil, err
	}
	g := &GraphScene{
		Parameters: params,
		f:          f,
		tess:       tess,
		floor:      floorTess.MeshData(FloorColor),
	}
	g.Rebuild()
	return g, nil
}

// graphFunc wraps the raw function with the current shift/scale parameters.
func (g *GraphScene) graphFunc() surfgrid.Func {
	f := surfgrid.ShiftScaleInput(g.f, g.Parameters.ShiftX, g.Parameters.ScaleX, g.Parameters.ShiftZ, g.Parameters.ScaleZ)
	return surfgrid.ShiftScaleOutput(f, g.Parameters.ShiftY, g.Parameters.ScaleY)
}

// Rebuild reevaluates the surface from the function and current parameters.
// Called by the GUI layer whenever a parameter widget changes.
func (g *GraphScene) Rebuild() {
	f := g.graphFunc()
	g.tess.ApplyFunction(f)
	g.mesh = g.tess.MeshDataDirectNormals(FuncColor, f)
}

// SetFunc replaces the graphed function. Takes effect on the next Rebuild.
func (g *GraphScene) SetFunc(f surfgrid.Func) { g.f = f }

// Step is a no-op: the graph only changes through Rebuild.
func (g *GraphScene) Step() {}

// Mesh returns the function surface mesh.
func (g *GraphScene) Mesh() *surfgrid.MeshData { return &g.mesh }

// Floor returns the flat floor mesh drawn under the surface.
func (g *GraphScene) Floor() *surfgrid.MeshData { return &g.floor }
