package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-ppm-raytracer/pkg/core"
	"github.com/df07/go-ppm-raytracer/pkg/geometry"
	"github.com/df07/go-ppm-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned when no built-in scene has the requested name
var ErrUnknownScene = errors.New("unknown scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Camera      *renderer.Camera
	World       geometry.Shape // Everything a ray can hit
	TopColor    core.Color     // Background straight up
	BottomColor core.Color     // Background straight down
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera { return s.Camera }

// GetBackgroundColors implements renderer.Scene
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Color) {
	return s.TopColor, s.BottomColor
}

// GetWorld implements renderer.Scene
func (s *Scene) GetWorld() geometry.Shape { return s.World }

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name passed to New
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
}

type builder struct {
	info  SceneInfo
	build func(aspectRatio float64) (*Scene, error)
}

var builtins = map[string]builder{
	"default": {
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default",
			Description: "A single sphere shaded by its normals against a sky gradient",
		},
		build: NewDefaultScene,
	},
	"spheres": {
		info: SceneInfo{
			ID:          "spheres",
			DisplayName: "Spheres",
			Description: "Three spheres resting on a large ground sphere",
		},
		build: NewSpheresScene,
	},
}

// New builds the named scene for an image of the given aspect ratio
func New(name string, aspectRatio float64) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	s, err := b.build(aspectRatio)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene %q: %w", name, err)
	}
	return s, nil
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		scenes = append(scenes, b.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}
