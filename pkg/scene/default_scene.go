package scene

import (
	"github.com/df07/go-ppm-raytracer/pkg/core"
	"github.com/df07/go-ppm-raytracer/pkg/geometry"
	"github.com/df07/go-ppm-raytracer/pkg/renderer"
)

// NewDefaultScene creates the single-sphere scene: a sphere of radius 0.5
// one unit in front of a camera at the origin, under a white to sky blue
// gradient
func NewDefaultScene(aspectRatio float64) (*Scene, error) {
	sphere, err := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5)
	if err != nil {
		return nil, err
	}

	return &Scene{
		Name:        "default",
		Camera:      renderer.NewCamera(aspectRatio),
		World:       sphere,
		TopColor:    core.SkyBlue,
		BottomColor: core.White,
	}, nil
}
