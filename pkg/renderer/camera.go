package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-ppm-raytracer/pkg/core"
)

// ErrInvalidCamera is returned when camera parameters cannot form a viewport
var ErrInvalidCamera = errors.New("invalid camera")

// Camera generates rays for rendering
type Camera struct {
	origin          core.Point3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a simple camera at the origin looking down -Z with a
// viewport two units tall at focal length one
func NewCamera(aspectRatio float64) *Camera {
	viewportHeight := 2.0
	viewportWidth := aspectRatio * viewportHeight
	focalLength := 1.0

	origin := core.NewVec3(0, 0, 0)
	horizontal := core.NewVec3(viewportWidth, 0, 0)
	vertical := core.NewVec3(0, viewportHeight, 0)
	lowerLeftCorner := origin.Subtract(horizontal.Divide(2)).
		Subtract(vertical.Divide(2)).
		Subtract(core.NewVec3(0, 0, focalLength))

	return &Camera{
		origin:          origin,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
	}
}

// NewLookAtCamera positions a camera at lookFrom aimed at lookAt.
// vfov is the vertical field of view in degrees.
func NewLookAtCamera(lookFrom, lookAt, vup core.Vec3, vfov, aspectRatio float64) (*Camera, error) {
	if !(vfov > 0 && vfov < 180) {
		return nil, fmt.Errorf("%w: vertical fov %v out of (0, 180)", ErrInvalidCamera, vfov)
	}
	if !(aspectRatio > 0) || math.IsInf(aspectRatio, 0) {
		return nil, fmt.Errorf("%w: aspect ratio %v", ErrInvalidCamera, aspectRatio)
	}

	w, err := lookFrom.Subtract(lookAt).Unit()
	if err != nil {
		return nil, fmt.Errorf("%w: look-from equals look-at: %v", ErrInvalidCamera, err)
	}
	u, err := vup.Cross(w).Unit()
	if err != nil {
		return nil, fmt.Errorf("%w: up vector parallel to view direction: %v", ErrInvalidCamera, err)
	}
	v := w.Cross(u)

	theta := vfov * math.Pi / 180
	viewportHeight := 2 * math.Tan(theta/2)
	viewportWidth := aspectRatio * viewportHeight

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := lookFrom.Subtract(horizontal.Divide(2)).
		Subtract(vertical.Divide(2)).
		Subtract(w)

	return &Camera{
		origin:          lookFrom,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
	}, nil
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1
// and (0, 0) is the lower left corner
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// Origin returns the camera position
func (c *Camera) Origin() core.Point3 {
	return c.origin
}
