package core

// Color is a linear RGB color. Channels are expected in [0, 1] once a
// color reaches an image writer; intermediate values may leave that range.
type Color struct {
	R, G, B float64
}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromVec reinterprets a vector's components as RGB channels
func ColorFromVec(v Vec3) Color {
	return Color{R: v.X, G: v.Y, B: v.Z}
}

// Vec returns the channels as a vector
func (c Color) Vec() Vec3 {
	return Vec3{X: c.R, Y: c.G, Z: c.B}
}

// Add returns the channel-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply scales every channel
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// Lerp blends from c (t=0) to other (t=1)
func (c Color) Lerp(other Color, t float64) Color {
	return c.Multiply(1 - t).Add(other.Multiply(t))
}

// Clamp returns a color with channels clamped to [min, max]
func (c Color) Clamp(minVal, maxVal float64) Color {
	return Color{
		R: max(minVal, min(maxVal, c.R)),
		G: max(minVal, min(maxVal, c.G)),
		B: max(minVal, min(maxVal, c.B)),
	}
}

// Common colors
var (
	White   = Color{1, 1, 1}
	Black   = Color{0, 0, 0}
	SkyBlue = Color{0.5, 0.7, 1.0}
)
