package render

import (
	"errors"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"golang.org/x/image/draw"
)

type setImage = interface {
	image.Image
	Set(x, y int, c color.Color)
}

// HeightField is the read-only view of a 2D scalar grid that can be drawn.
// Both *pde.Field and *pde.HeatSolver satisfy it.
type HeightField interface {
	XSize() int
	YSize() int
	At(x, y int) float32
}

// FieldImager converts height fields to images through a float-to-color
// palette, one grid cell per pixel, optionally resampled to an arbitrary
// output resolution.
type FieldImager struct {
	conv func(float32) color.Color
}

// NewFieldImager instances an imager with the given palette. A nil palette
// selects [PaletteLinear] over [-1, 1] from black to white, with NaN cells
// drawn red.
func NewFieldImager(conversion func(float32) color.Color) *FieldImager {
	if conversion == nil {
		conversion = PaletteLinear(-1, 1, color.Black, color.White)
	}
	return &FieldImager{conv: conversion}
}

// Render draws f into img cell-per-pixel. The image bounds must be at least
// XSize by YSize.
func (fi *FieldImager) Render(f HeightField, img setImage) error {
	bb := img.Bounds()
	if bb.Dx() < f.XSize() || bb.Dy() < f.YSize() {
		return errors.New("image smaller than field")
	}
	for y := 0; y < f.YSize(); y++ {
		for x := 0; x < f.XSize(); x++ {
			img.Set(bb.Min.X+x, bb.Min.Y+y, fi.conv(f.At(x, y)))
		}
	}
	return nil
}

// RenderScaled draws f at native resolution and then resamples it to fill
// img entirely, whatever its size.
func (fi *FieldImager) RenderScaled(f HeightField, img draw.Image) error {
	src := image.NewRGBA(image.Rect(0, 0, f.XSize(), f.YSize()))
	if err := fi.Render(f, src); err != nil {
		return err
	}
	draw.ApproxBiLinear.Scale(img, img.Bounds(), src, src.Bounds(), draw.Src, nil)
	return nil
}

var red = color.RGBA{R: 255, A: 255}

// PaletteLinear maps [vmin, vmax] onto a linear RGB gradient from c0 to c1,
// clamping values outside the range. NaN draws red.
func PaletteLinear(vmin, vmax float32, c0, c1 color.Color) func(float32) color.Color {
	r0, g0, b0, _ := c0.RGBA()
	r1, g1, b1, _ := c1.RGBA()
	span := vmax - vmin
	return func(v float32) color.Color {
		if math32.IsNaN(v) {
			return red
		}
		t := (v - vmin) / span
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		lerp8 := func(a, b uint32) uint8 {
			af := float32(a >> 8)
			bf := float32(b >> 8)
			return uint8(af + (bf-af)*t)
		}
		return color.RGBA{R: lerp8(r0, r1), G: lerp8(g0, g1), B: lerp8(b0, b1), A: 255}
	}
}

// PaletteHeat is the red↔yellow ramp the heat scene colors its mesh with:
// full red at zero magnitude shifting to yellow as |v| approaches maxMag.
// NaN draws black to stand out against the ramp.
func PaletteHeat(maxMag float32) func(float32) color.Color {
	return func(v float32) color.Color {
		if math32.IsNaN(v) {
			return color.Black
		}
		g := math32.Min(math32.Abs(v), maxMag) / maxMag
		return color.RGBA{R: 255, G: uint8(g * 255), A: 255}
	}
}
