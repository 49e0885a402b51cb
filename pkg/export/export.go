// Package export writes rendered images to disk in PPM or common raster
// formats and publishes them to S3-compatible storage.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/df07/go-ppm-raytracer/pkg/ppm"
)

// ErrUnsupportedFormat is returned for output formats that cannot be written
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Format names an output encoding
type Format string

const (
	PPM  Format = "ppm"
	PNG  Format = "png"
	JPEG Format = "jpg"
	GIF  Format = "gif"
	TIFF Format = "tiff"
	BMP  Format = "bmp"
)

// jpegQuality is used for every JPEG we write
const jpegQuality = 95

var rasterFormats = map[Format]imaging.Format{
	PNG:  imaging.PNG,
	JPEG: imaging.JPEG,
	GIF:  imaging.GIF,
	TIFF: imaging.TIFF,
	BMP:  imaging.BMP,
}

var contentTypes = map[Format]string{
	PPM:  "image/x-portable-pixmap",
	PNG:  "image/png",
	JPEG: "image/jpeg",
	GIF:  "image/gif",
	TIFF: "image/tiff",
	BMP:  "image/bmp",
}

// ParseFormat accepts a format name or file extension, with or without the
// leading dot ("png", ".jpeg", "TIF")
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimPrefix(name, "."))
	switch name {
	case "ppm", "pnm":
		return PPM, nil
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	case "tif", "tiff":
		return TIFF, nil
	case "bmp":
		return BMP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// FormatFromPath picks the format from a file name's extension
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// ContentType returns the MIME type for a format
func (f Format) ContentType() string {
	if ct, ok := contentTypes[f]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Extension returns the file extension for a format, including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// Encode writes img to w in the given format. Raster formats clamp
// channels to [0, 1]; PPM writes them unclamped.
func Encode(w io.Writer, img *ppm.Image, format Format) error {
	if format == PPM {
		return img.Encode(w)
	}
	rasterFormat, ok := rasterFormats[format]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := imaging.Encode(w, img.ToRGBA(), rasterFormat, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// Save writes img to path, choosing the format from the extension
func Save(img *ppm.Image, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if format == PPM {
		return img.WriteFile(path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := imaging.Save(img.ToRGBA(), path, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
