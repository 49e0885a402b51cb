// Package ppm holds rendered pixels and serializes them as plain-text
// (P3) portable pixmaps.
package ppm

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-ppm-raytracer/pkg/core"
)

// ErrInvalidDimensions is returned when a pixel grid does not match its declared size
var ErrInvalidDimensions = errors.New("invalid image dimensions")

// Image is a row-major grid of colors, top row first
type Image struct {
	width  int
	height int
	pixels [][]core.Color
}

// New wraps a pixel grid. The grid must hold exactly height rows of width colors.
func New(width, height int, pixels [][]core.Color) (*Image, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative size %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(pixels) != height {
		return nil, fmt.Errorf("%w: declared height %d, got %d rows", ErrInvalidDimensions, height, len(pixels))
	}
	for y, row := range pixels {
		if len(row) != width {
			return nil, fmt.Errorf("%w: declared width %d, row %d has %d pixels", ErrInvalidDimensions, width, y, len(row))
		}
	}
	return &Image{width: width, height: height, pixels: pixels}, nil
}

// NewBlank allocates a black image of the given size
func NewBlank(width, height int) (*Image, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative size %dx%d", ErrInvalidDimensions, width, height)
	}
	pixels := make([][]core.Color, height)
	for y := range pixels {
		pixels[y] = make([]core.Color, width)
	}
	return &Image{width: width, height: height, pixels: pixels}, nil
}

// NewTestGradient builds a deterministic debug image: red grows left to
// right, green grows bottom to top and blue is fixed at 0.25.
func NewTestGradient(width, height int) *Image {
	img, err := NewBlank(max(width, 0), max(height, 0))
	if err != nil {
		panic(err) // unreachable: sizes are clamped above
	}
	for row := 0; row < img.height; row++ {
		y := img.height - 1 - row
		for x := 0; x < img.width; x++ {
			img.pixels[row][x] = core.NewColor(ratio(x, img.width), ratio(y, img.height), 0.25)
		}
	}
	return img
}

// ratio maps i in [0, n) onto [0, 1]; a single column or row maps to 0
func ratio(i, n int) float64 {
	if n < 2 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// Width returns the number of columns
func (img *Image) Width() int { return img.width }

// Height returns the number of rows
func (img *Image) Height() int { return img.height }

// At returns the color at column x, row y (row 0 is the top)
func (img *Image) At(x, y int) core.Color {
	return img.pixels[y][x]
}

// Set stores a color at column x, row y. Distinct cells may be set from
// different goroutines without synchronization.
func (img *Image) Set(x, y int, c core.Color) {
	img.pixels[y][x] = c
}

// Row returns row y for in-place filling. The slice aliases the image.
func (img *Image) Row(y int) []core.Color {
	return img.pixels[y]
}

// Channel converts a [0, 1] channel to its 8-bit text value by truncating
// 255.999*c toward zero. Out-of-range input is not clamped.
func Channel(c float64) int {
	return int(255.999 * c)
}

// ToRGBA converts the image for raster encoders, clamping channels to [0, 1].
// NaN channels become 0.
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.width, img.height))
	for y, row := range img.pixels {
		for x, c := range row {
			c = c.Clamp(0, 1)
			out.SetRGBA(x, y, color.RGBA{
				R: rasterChannel(c.R),
				G: rasterChannel(c.G),
				B: rasterChannel(c.B),
				A: 255,
			})
		}
	}
	return out
}

// rasterChannel converts a clamped channel to 8 bits
func rasterChannel(c float64) uint8 {
	if math.IsNaN(c) {
		return 0
	}
	return uint8(Channel(c))
}
