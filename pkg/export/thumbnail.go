package export

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/df07/go-ppm-raytracer/pkg/ppm"
)

// Thumbnail scales img to fit within maxSize x maxSize, keeping its aspect
// ratio. Images already small enough are returned at their own size.
func Thumbnail(img *ppm.Image, maxSize uint) image.Image {
	return resize.Thumbnail(maxSize, maxSize, img.ToRGBA(), resize.Bilinear)
}

// SaveThumbnail writes a thumbnail of img to path in the format implied by
// its extension. PPM thumbnails are not supported.
func SaveThumbnail(img *ppm.Image, path string, maxSize uint) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if format == PPM {
		return fmt.Errorf("%w: thumbnails must use a raster format", ErrUnsupportedFormat)
	}
	if maxSize == 0 {
		return fmt.Errorf("thumbnail size must be positive")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := imaging.Save(Thumbnail(img, maxSize), path, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("failed to save thumbnail %s: %w", path, err)
	}
	return nil
}
