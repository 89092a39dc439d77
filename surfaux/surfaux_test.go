package surfaux_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/soypat/surfgrid/scene"
	"github.com/soypat/surfgrid/surfaux"
)

func TestSimulateHeatExports(t *testing.T) {
	const gridSize = 20
	hs, err := scene.NewHeatScene(gridSize)
	if err != nil {
		t.Fatal(err)
	}
	var stl, pngBuf bytes.Buffer
	err = surfaux.Simulate(hs, surfaux.SimConfig{
		Steps:     3,
		STLOutput: &stl,
		PNGOutput: &pngBuf,
		Field:     hs.Solver,
		ImageSize: 64,
		Silent:    true,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Top faces only: 2 triangles per square of the displayed mesh.
	m := hs.DisplaySize() - 1
	wantSTL := 84 + 50*2*m*m
	if stl.Len() != wantSTL {
		t.Errorf("STL output is %d bytes, want %d", stl.Len(), wantSTL)
	}

	img, err := png.Decode(&pngBuf)
	if err != nil {
		t.Fatalf("decoding PNG output: %s", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("PNG is %dx%d, want 64x64", b.Dx(), b.Dy())
	}
}

func TestSimulateRequiresOutput(t *testing.T) {
	g, err := scene.NewGraphScene(4, 1, func(x, z float64) float64 { return 0 }, scene.GraphParameters{ScaleY: 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := surfaux.Simulate(g, surfaux.SimConfig{Steps: 1, Silent: true}); err == nil {
		t.Error("expected error with no outputs configured")
	}
	var buf bytes.Buffer
	if err := surfaux.Simulate(g, surfaux.SimConfig{PNGOutput: &buf, Silent: true}); err == nil {
		t.Error("expected error for PNG output without a field")
	}
}
