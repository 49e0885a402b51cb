package server

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-ppm-raytracer/pkg/core"
	"github.com/df07/go-ppm-raytracer/pkg/geometry"
	"github.com/df07/go-ppm-raytracer/pkg/renderer"
	"github.com/df07/go-ppm-raytracer/pkg/scene"
)

// InspectResponse represents the response for a pixel inspection request
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance,omitempty"`
	FrontFace    bool                   `json:"frontFace"`
	Color        [3]float64             `json:"color"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *geometry.HitRecord
	Shape     geometry.Shape // The member of the world that was hit, nil if unknown
	Color     core.Color     // Color Render produces for the pixel
}

// inspectPixel casts the render ray through pixel (x, y) and reports the first object hit
func inspectPixel(sceneObj *scene.Scene, width, height, x, y int) (InspectResult, error) {
	raytracer := renderer.NewRaytracer(sceneObj, width, height)
	ray, err := raytracer.PixelRay(x, y)
	if err != nil {
		return InspectResult{}, err
	}

	result := InspectResult{Color: raytracer.RayColor(ray)}
	world := sceneObj.GetWorld()
	hit, isHit := world.Hit(ray, renderer.ShadowEpsilon, math.Inf(1))
	if !isHit {
		return result, nil
	}
	result.Hit = true
	result.HitRecord = hit
	result.Shape = world

	// The list does not say which member was hit; find the one reporting the same T
	if list, ok := world.(*geometry.HittableList); ok {
		result.Shape = nil
		for _, shape := range list.Objects {
			if shapeHit, shapeIsHit := shape.Hit(ray, renderer.ShadowEpsilon, hit.T); shapeIsHit && shapeHit.T == hit.T {
				result.Shape = shape
				break
			}
		}
	}
	return result, nil
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.HittableList:
		properties["objectCount"] = geom.Len()
		return "hittable_list", properties

	default:
		return "unknown", properties
	}
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	req, err := parseRenderRequest(values)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(values.Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(values.Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := scene.New(req.Scene, float64(req.Width)/float64(req.Height))
	if err != nil {
		writeSceneError(w, err)
		return
	}

	result, err := inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY)
	if err != nil {
		if errors.Is(err, renderer.ErrPixelOutOfRange) {
			writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response := InspectResponse{
		Hit:   result.Hit,
		Color: [3]float64{result.Color.R, result.Color.G, result.Color.B},
	}
	if result.Hit {
		geometryType, geometryProps := extractGeometryInfo(result.Shape)
		response.GeometryType = geometryType
		response.Point = vecArray(result.HitRecord.Point)
		response.Normal = vecArray(result.HitRecord.Normal)
		response.Distance = result.HitRecord.T
		response.FrontFace = result.HitRecord.FrontFace
		response.Properties = geometryProps
	}

	writeJSON(w, http.StatusOK, response)
}
