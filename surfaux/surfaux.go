// Package surfaux is an auxiliary package to aid users in getting set up
// with surfgrid quickly. Ideally users implement their own output plumbing
// since applications vary widely; these helpers cover the common
// run-then-export case.
package surfaux

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"time"

	"github.com/soypat/surfgrid/render"
	"github.com/soypat/surfgrid/scene"
)

// SimConfig configures [Simulate]. At least one output must be set.
type SimConfig struct {
	// Steps is how many timesteps to run before exporting.
	Steps int
	// STLOutput receives the final surface mesh as binary STL, top faces
	// only.
	STLOutput io.Writer
	// PNGOutput receives the final field rendered through Palette. It
	// requires Field to be set.
	PNGOutput io.Writer
	// Field is the height field drawn to PNGOutput, usually the scene's
	// solver state.
	Field render.HeightField
	// ImageSize is the PNG side length in pixels; the field is resampled
	// to it. Zero means 512.
	ImageSize int
	// Palette converts field values to colors. Nil selects the heat ramp
	// over magnitude 10.
	Palette func(float32) color.Color
	// Silent disables progress prints.
	Silent bool
}

// Simulate runs sc for cfg.Steps timesteps and writes the configured
// outputs.
func Simulate(sc scene.Scene, cfg SimConfig) error {
	if cfg.STLOutput == nil && cfg.PNGOutput == nil {
		return errors.New("Simulate requires an output in config")
	}
	if cfg.PNGOutput != nil && cfg.Field == nil {
		return errors.New("PNG output requires a field in config")
	}
	log := func(args ...any) {
		if !cfg.Silent {
			fmt.Println(args...)
		}
	}

	watch := stopwatch()
	for i := 0; i < cfg.Steps; i++ {
		sc.Step()
	}
	log("simulated", cfg.Steps, "steps in", watch())

	if cfg.STLOutput != nil {
		watch = stopwatch()
		mt, err := render.NewMeshTriangles(sc.Mesh(), false)
		if err != nil {
			return err
		}
		triangles, err := render.RenderAll(mt, nil)
		if err != nil {
			return err
		}
		n, err := render.WriteBinarySTL(cfg.STLOutput, triangles)
		if err != nil {
			return fmt.Errorf("writing STL: %w", err)
		}
		log("wrote", len(triangles), "triangles,", n, "bytes of STL in", watch())
	}

	if cfg.PNGOutput != nil {
		watch = stopwatch()
		size := cfg.ImageSize
		if size <= 0 {
			size = 512
		}
		palette := cfg.Palette
		if palette == nil {
			palette = render.PaletteHeat(10)
		}
		img := image.NewRGBA(image.Rect(0, 0, size, size))
		if err := render.NewFieldImager(palette).RenderScaled(cfg.Field, img); err != nil {
			return err
		}
		if err := png.Encode(cfg.PNGOutput, img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
		log("wrote", size, "pixel PNG in", watch())
	}
	return nil
}

// stopwatch returns a function that yields the elapsed time since the
// stopwatch call.
func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
