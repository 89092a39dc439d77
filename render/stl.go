package render

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/soypat/geometry/ms3"
)

// stlHeader is written to the 80-byte comment field of binary STL output.
const stlHeader = "surfgrid binary STL"

// WriteBinarySTL writes triangles to w in binary STL format and returns the
// number of bytes written. Triangle facet normals are recomputed from the
// vertex winding; degenerate triangles get a zero normal.
func WriteBinarySTL(w io.Writer, triangles []ms3.Triangle) (int, error) {
	var header [84]byte
	copy(header[:80], stlHeader)
	binary.LittleEndian.PutUint32(header[80:], uint32(len(triangles)))
	n, err := w.Write(header[:])
	if err != nil {
		return n, fmt.Errorf("writing STL header: %w", err)
	}
	var facet [50]byte
	for _, t := range triangles {
		norm := facetNormal(t)
		put3(facet[0:], norm)
		put3(facet[12:], t[0])
		put3(facet[24:], t[1])
		put3(facet[36:], t[2])
		facet[48] = 0 // attribute byte count
		facet[49] = 0
		nn, err := w.Write(facet[:])
		n += nn
		if err != nil {
			return n, fmt.Errorf("writing STL facet: %w", err)
		}
	}
	return n, nil
}

func facetNormal(t ms3.Triangle) ms3.Vec {
	n := ms3.Cross(ms3.Sub(t[1], t[0]), ms3.Sub(t[2], t[0]))
	if ms3.Norm(n) == 0 {
		return ms3.Vec{}
	}
	return ms3.Unit(n)
}

func put3(b []byte, v ms3.Vec) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(v.Z))
}
