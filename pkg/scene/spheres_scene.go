package scene

import (
	"github.com/df07/go-ppm-raytracer/pkg/core"
	"github.com/df07/go-ppm-raytracer/pkg/geometry"
	"github.com/df07/go-ppm-raytracer/pkg/renderer"
)

// NewSpheresScene creates three small spheres in a row on top of a large
// ground sphere, seen through a 90 degree look-at camera
func NewSpheresScene(aspectRatio float64) (*Scene, error) {
	camera, err := renderer.NewLookAtCamera(
		core.NewVec3(0, 0, 0),  // look from
		core.NewVec3(0, 0, -1), // look at
		core.NewVec3(0, 1, 0),  // up
		90,
		aspectRatio,
	)
	if err != nil {
		return nil, err
	}

	world := geometry.NewHittableList()
	spheres := []struct {
		center core.Vec3
		radius float64
	}{
		{core.NewVec3(0, -100.5, -1), 100}, // ground
		{core.NewVec3(0, 0, -1), 0.5},
		{core.NewVec3(-1, 0, -1), 0.5},
		{core.NewVec3(1, 0, -1), 0.5},
	}
	for _, s := range spheres {
		sphere, err := geometry.NewSphere(s.center, s.radius)
		if err != nil {
			return nil, err
		}
		world.Add(sphere)
	}

	return &Scene{
		Name:        "spheres",
		Camera:      camera,
		World:       world,
		TopColor:    core.SkyBlue,
		BottomColor: core.White,
	}, nil
}
