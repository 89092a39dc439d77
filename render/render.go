// Package render consumes surfgrid meshes and pde fields and turns them
// into renderer- and file-facing output: triangle streams, binary STL and
// paletted images. GPU upload itself happens outside this module; these are
// the CPU-side sinks.
package render

import (
	"errors"
	"io"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/surfgrid"
)

// Renderer reads triangles from a mesh or surface source until io.EOF.
type Renderer interface {
	ReadTriangles(dst []ms3.Triangle, userData any) (n int, err error)
}

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.ReadAll implementation.
func RenderAll(r Renderer, userData any) ([]ms3.Triangle, error) {
	const startSize = 4096
	var err error
	var nt int
	result := make([]ms3.Triangle, 0, startSize)
	buf := make([]ms3.Triangle, startSize)
	for {
		nt, err = r.ReadTriangles(buf, userData)
		if err == nil || err == io.EOF {
			result = append(result, buf[:nt]...)
		}
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// MeshTriangles is a Renderer over a [surfgrid.MeshData]. Meshes produced
// by the tessellator interleave, per square, two top faces followed by
// their two bottom-facing duplicates; with includeBacks false the reader
// skips every second pair so that exported surfaces stay orientable.
type MeshTriangles struct {
	mesh         *surfgrid.MeshData
	includeBacks bool
	idx          int // next index-buffer offset to read
}

// NewMeshTriangles returns a reader over m's triangles. See [MeshTriangles]
// for the meaning of includeBacks.
func NewMeshTriangles(m *surfgrid.MeshData, includeBacks bool) (*MeshTriangles, error) {
	if m == nil {
		return nil, errors.New("nil mesh")
	}
	if len(m.Indices)%12 != 0 {
		return nil, errors.New("mesh index count is not a whole number of tessellated squares")
	}
	return &MeshTriangles{mesh: m, includeBacks: includeBacks}, nil
}

// Reset rewinds the reader to the first triangle.
func (mt *MeshTriangles) Reset() { mt.idx = 0 }

// ReadTriangles implements [Renderer]. userData is ignored.
func (mt *MeshTriangles) ReadTriangles(dst []ms3.Triangle, _ any) (int, error) {
	idc := mt.mesh.Indices
	if mt.idx >= len(idc) {
		return 0, io.EOF
	}
	n := 0
	for n < len(dst) && mt.idx < len(idc) {
		i := idc[mt.idx : mt.idx+3 : mt.idx+3]
		dst[n] = ms3.Triangle{
			mt.mesh.Vertices[i[0]].Position,
			mt.mesh.Vertices[i[1]].Position,
			mt.mesh.Vertices[i[2]].Position,
		}
		n++
		mt.idx += 3
		if !mt.includeBacks && mt.idx%12 == 6 {
			// Skip the two bottom-facing duplicates of this square.
			mt.idx += 6
		}
	}
	return n, nil
}
