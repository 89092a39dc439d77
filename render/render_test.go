package render_test

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"io"
	"math"
	"testing"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/surfgrid"
	"github.com/soypat/surfgrid/render"
)

var meshColor = ms3.Vec{X: 1}

func flatMesh(t *testing.T, n int) *surfgrid.MeshData {
	t.Helper()
	st, err := surfgrid.Generate(n, 2)
	if err != nil {
		t.Fatal(err)
	}
	m := st.MeshData(meshColor)
	return &m
}

func TestMeshTrianglesCounts(t *testing.T) {
	mesh := flatMesh(t, 2) // 4 squares, 16 triangles with backs
	for _, tc := range []struct {
		includeBacks bool
		want         int
	}{
		{includeBacks: true, want: 16},
		{includeBacks: false, want: 8},
	} {
		mt, err := render.NewMeshTriangles(mesh, tc.includeBacks)
		if err != nil {
			t.Fatal(err)
		}
		tris, err := render.RenderAll(mt, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(tris) != tc.want {
			t.Errorf("includeBacks=%v: got %d triangles, want %d", tc.includeBacks, len(tris), tc.want)
		}
	}
}

func TestMeshTrianglesSmallBuffer(t *testing.T) {
	mesh := flatMesh(t, 2)
	mt, err := render.NewMeshTriangles(mesh, false)
	if err != nil {
		t.Fatal(err)
	}
	// Drain through a 3-triangle buffer so reads split mid-square.
	buf := make([]ms3.Triangle, 3)
	total := 0
	for {
		n, err := mt.ReadTriangles(buf, nil)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}
	if total != 8 {
		t.Errorf("drained %d triangles, want 8", total)
	}

	// Reset rewinds to the start.
	mt.Reset()
	if n, err := mt.ReadTriangles(buf, nil); err != nil || n != 3 {
		t.Errorf("after Reset: n=%d err=%v", n, err)
	}
}

func TestMeshTrianglesSkipsBacks(t *testing.T) {
	mesh := flatMesh(t, 1)
	mt, err := render.NewMeshTriangles(mesh, false)
	if err != nil {
		t.Fatal(err)
	}
	tris, err := render.RenderAll(mt, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) != 2 {
		t.Fatalf("got %d triangles, want 2", len(tris))
	}
	// On a flat grid the two kept faces both wind counter-clockwise seen
	// from above; the skipped duplicates would wind the other way.
	for i, tri := range tris {
		n := ms3.Cross(ms3.Sub(tri[1], tri[0]), ms3.Sub(tri[2], tri[0]))
		if n.Y <= 0 {
			t.Errorf("triangle %d winds downward: normal %+v", i, n)
		}
	}
}

func TestNewMeshTrianglesRejectsOddMesh(t *testing.T) {
	if _, err := render.NewMeshTriangles(nil, true); err == nil {
		t.Error("expected error for nil mesh")
	}
	m := &surfgrid.MeshData{Indices: []uint32{0, 1, 2}}
	if _, err := render.NewMeshTriangles(m, true); err == nil {
		t.Error("expected error for non-square index count")
	}
}

func TestWriteBinarySTL(t *testing.T) {
	tris := []ms3.Triangle{
		{ms3.Vec{}, ms3.Vec{Z: 1}, ms3.Vec{X: 1}},
		{ms3.Vec{X: 1}, ms3.Vec{Z: 1}, ms3.Vec{X: 1, Z: 1}},
	}
	var buf bytes.Buffer
	n, err := render.WriteBinarySTL(&buf, tris)
	if err != nil {
		t.Fatal(err)
	}
	want := 84 + 50*len(tris)
	if n != want || buf.Len() != want {
		t.Fatalf("wrote %d bytes (buffer %d), want %d", n, buf.Len(), want)
	}
	b := buf.Bytes()
	if got := binary.LittleEndian.Uint32(b[80:]); got != uint32(len(tris)) {
		t.Errorf("triangle count field = %d, want %d", got, len(tris))
	}
	// Both facets lie in the xz plane winding counter-clockwise from above,
	// so the stored normals must be (0,1,0).
	for i := 0; i < len(tris); i++ {
		off := 84 + 50*i
		nx := math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
		ny := math.Float32frombits(binary.LittleEndian.Uint32(b[off+4:]))
		nz := math.Float32frombits(binary.LittleEndian.Uint32(b[off+8:]))
		if nx != 0 || ny != 1 || nz != 0 {
			t.Errorf("facet %d normal = (%g,%g,%g), want (0,1,0)", i, nx, ny, nz)
		}
		if b[off+48] != 0 || b[off+49] != 0 {
			t.Errorf("facet %d attribute byte count not zero", i)
		}
	}
}

func TestWriteBinarySTLDegenerate(t *testing.T) {
	tris := []ms3.Triangle{{ms3.Vec{X: 1}, ms3.Vec{X: 1}, ms3.Vec{X: 1}}}
	var buf bytes.Buffer
	if _, err := render.WriteBinarySTL(&buf, tris); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	for i := 0; i < 12; i++ {
		if b[84+i] != 0 {
			t.Fatal("degenerate facet must store a zero normal")
		}
	}
}

type gridField struct {
	w, h   int
	values []float32
}

func (g gridField) XSize() int          { return g.w }
func (g gridField) YSize() int          { return g.h }
func (g gridField) At(x, y int) float32 { return g.values[y*g.w+x] }

func TestFieldImagerHeatPalette(t *testing.T) {
	f := gridField{w: 2, h: 2, values: []float32{0, 10, -10, float32(math.NaN())}}
	fi := render.NewFieldImager(render.PaletteHeat(10))
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if err := fi.Render(f, img); err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, color.RGBA{R: 255, A: 255}},         // zero: full red
		{1, 0, color.RGBA{R: 255, G: 255, A: 255}}, // max magnitude: yellow
		{0, 1, color.RGBA{R: 255, G: 255, A: 255}}, // magnitude is absolute
		{1, 1, color.RGBA{A: 255}},                 // NaN: black
	}
	for _, tc := range cases {
		if got := img.RGBAAt(tc.x, tc.y); got != tc.want {
			t.Errorf("pixel (%d,%d) = %+v, want %+v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestFieldImagerLinearPalette(t *testing.T) {
	f := gridField{w: 3, h: 1, values: []float32{-5, 0, 5}} // clamped, mid, clamped
	fi := render.NewFieldImager(render.PaletteLinear(-1, 1, color.Black, color.White))
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	if err := fi.Render(f, img); err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{A: 255}) {
		t.Errorf("below-range pixel = %+v, want black", got)
	}
	if got := img.RGBAAt(2, 0); got.R != 255 || got.G != 255 || got.B != 255 {
		t.Errorf("above-range pixel = %+v, want white", got)
	}
	mid := img.RGBAAt(1, 0)
	if mid.R < 126 || mid.R > 128 || mid.R != mid.G || mid.G != mid.B {
		t.Errorf("midpoint pixel = %+v, want mid gray", mid)
	}
}

func TestFieldImagerSizeMismatch(t *testing.T) {
	f := gridField{w: 4, h: 4, values: make([]float32, 16)}
	fi := render.NewFieldImager(nil)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if err := fi.Render(f, img); err == nil {
		t.Error("expected error rendering into an undersized image")
	}
	// RenderScaled resamples to any size instead.
	if err := fi.RenderScaled(f, img); err != nil {
		t.Errorf("RenderScaled: %s", err)
	}
}
