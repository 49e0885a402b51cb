package geometry

import "github.com/df07/go-ppm-raytracer/pkg/core"

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Point3 // Point of intersection
	Normal    core.Vec3   // Unit surface normal, always facing against the ray
	T         float64     // Parameter t along the ray
	FrontFace bool        // Whether the ray arrived from outside the surface
}

// Shape is anything a ray can be tested against.
//
// Hit reports the closest intersection with t in [tMin, tMax]. On a miss it
// returns (nil, false). Implementations must not modify the ray or themselves,
// so a Shape is safe to share between goroutines.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool)
}

// FaceNormal orients an outward normal against the incoming ray.
// frontFace is true when the ray hits the outside of the surface; otherwise
// the returned normal is the outward normal flipped inward.
func FaceNormal(ray core.Ray, outwardNormal core.Vec3) (normal core.Vec3, frontFace bool) {
	frontFace = ray.Direction.Dot(outwardNormal) < 0
	if frontFace {
		return outwardNormal, true
	}
	return outwardNormal.Negate(), false
}
