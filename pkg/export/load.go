package export

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"

	"github.com/df07/go-ppm-raytracer/pkg/core"
	"github.com/df07/go-ppm-raytracer/pkg/ppm"
)

// Load reads a PPM or raster image file into an Image. Raster channels are
// mapped from [0, 65535] onto [0, 1].
func Load(path string) (*ppm.Image, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	if format == PPM {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open image file: %w", err)
		}
		defer file.Close()
		return ppm.Decode(file)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img)
}

// FromImage converts any decoded image into an Image
func FromImage(img image.Image) (*ppm.Image, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	pixels := make([][]core.Color, height)
	for y := 0; y < height; y++ {
		pixels[y] = make([]core.Color, width)
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y][x] = core.NewColor(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}
	return ppm.New(width, height, pixels)
}
