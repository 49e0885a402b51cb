package geometry

import "github.com/df07/go-ppm-raytracer/pkg/core"

// HittableList composes several shapes into one. Its Hit returns the
// nearest intersection across all members.
type HittableList struct {
	Objects []Shape
}

// NewHittableList creates a list holding the given shapes
func NewHittableList(objects ...Shape) *HittableList {
	return &HittableList{Objects: append([]Shape(nil), objects...)}
}

// Add appends a shape to the list
func (l *HittableList) Add(object Shape) {
	l.Objects = append(l.Objects, object)
}

// Clear removes all shapes
func (l *HittableList) Clear() {
	l.Objects = nil
}

// Len returns the number of shapes in the list
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit checks every member, narrowing tMax to the closest hit found so far
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	var closestHit *HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
