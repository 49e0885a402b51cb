package renderer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/df07/go-ppm-raytracer/pkg/core"
	"github.com/df07/go-ppm-raytracer/pkg/geometry"
	"github.com/df07/go-ppm-raytracer/pkg/ppm"
)

// ShadowEpsilon is the smallest ray parameter accepted as a hit, keeping a
// ray from re-hitting the surface it starts on
const ShadowEpsilon = 0.001

// ErrPixelOutOfRange is returned for pixel coordinates outside the image
var ErrPixelOutOfRange = errors.New("pixel out of range")

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetBackgroundColors() (topColor, bottomColor core.Color)
	GetWorld() geometry.Shape
}

// Raytracer resolves rays against a scene and drives whole-image renders
type Raytracer struct {
	scene  Scene
	width  int
	height int
	logger core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, width, height int) *Raytracer {
	return &Raytracer{
		scene:  scene,
		width:  width,
		height: height,
		logger: discardLogger{},
	}
}

// SetLogger sets where render progress is reported
func (rt *Raytracer) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = discardLogger{}
	}
	rt.logger = logger
}

// Width returns the output width in pixels
func (rt *Raytracer) Width() int { return rt.width }

// Height returns the output height in pixels
func (rt *Raytracer) Height() int { return rt.height }

// RayColor returns the color seen along r: the surface normal mapped into
// [0, 1] when the ray hits the world, otherwise the background gradient.
// It reads no mutable state and is safe for concurrent use.
func (rt *Raytracer) RayColor(r core.Ray) core.Color {
	c, _ := rt.rayColor(r)
	return c
}

func (rt *Raytracer) rayColor(r core.Ray) (core.Color, bool) {
	if hit, isHit := rt.scene.GetWorld().Hit(r, ShadowEpsilon, math.Inf(1)); isHit {
		n := hit.Normal
		return core.NewColor(0.5*(n.X+1), 0.5*(n.Y+1), 0.5*(n.Z+1)), true
	}
	return rt.backgroundGradient(r), false
}

// backgroundGradient returns a gradient color based on ray direction
func (rt *Raytracer) backgroundGradient(r core.Ray) core.Color {
	topColor, bottomColor := rt.scene.GetBackgroundColors()

	// A zero direction has no gradient position; MustUnit panics on it
	unitDirection := r.Direction.MustUnit()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return bottomColor.Lerp(topColor, t)
}

// checkSize rejects images too small to map pixels onto the viewport
func (rt *Raytracer) checkSize() error {
	if rt.width < 2 || rt.height < 2 {
		return fmt.Errorf("%w: render size %dx%d, need at least 2x2", ppm.ErrInvalidDimensions, rt.width, rt.height)
	}
	return nil
}

// pixelUV maps pixel column x of image row `row` (0 is the top row) onto
// viewport coordinates
func (rt *Raytracer) pixelUV(x, row int) (u, v float64) {
	j := rt.height - 1 - row
	return float64(x) / float64(rt.width-1), float64(j) / float64(rt.height-1)
}

// PixelRay returns the camera ray through pixel (x, y), with y = 0 the top
// row. It is the ray Render traces for that pixel.
func (rt *Raytracer) PixelRay(x, y int) (core.Ray, error) {
	if err := rt.checkSize(); err != nil {
		return core.Ray{}, err
	}
	if x < 0 || x >= rt.width || y < 0 || y >= rt.height {
		return core.Ray{}, fmt.Errorf("%w: pixel (%d, %d) outside %dx%d", ErrPixelOutOfRange, x, y, rt.width, rt.height)
	}
	return rt.scene.GetCamera().GetRay(rt.pixelUV(x, y)), nil
}

// renderRow fills out with image row `row` (0 is the top row) and returns
// how many of its pixels hit geometry
func (rt *Raytracer) renderRow(camera *Camera, row int, out []core.Color) int {
	hits := 0
	for i := range out {
		c, isHit := rt.rayColor(camera.GetRay(rt.pixelUV(i, row)))
		out[i] = c
		if isHit {
			hits++
		}
	}
	return hits
}

// Render traces one ray per pixel on the calling goroutine, bottom row
// first, and stores rows top to bottom
func (rt *Raytracer) Render() (*ppm.Image, RenderStats, error) {
	if err := rt.checkSize(); err != nil {
		return nil, RenderStats{}, err
	}
	img, err := ppm.NewBlank(rt.width, rt.height)
	if err != nil {
		return nil, RenderStats{}, err
	}

	start := time.Now()
	camera := rt.scene.GetCamera()
	stats := newRenderStats(rt.width, rt.height, 1)

	for j := rt.height - 1; j >= 0; j-- {
		row := rt.height - 1 - j
		stats.HitPixels += rt.renderRow(camera, row, img.Row(row))
	}

	stats.finalize(time.Since(start))
	rt.logger.Printf("Rendered %dx%d in %v (%d pixels hit geometry)\n", rt.width, rt.height, stats.Duration, stats.HitPixels)
	return img, stats, nil
}
