package export

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/df07/go-ppm-raytracer/pkg/core"
	"github.com/df07/go-ppm-raytracer/pkg/ppm"
)

func testImage(t *testing.T) *ppm.Image {
	t.Helper()
	img, err := ppm.New(2, 1, [][]core.Color{{core.NewColor(1, 0, 0), core.NewColor(0, 1, 1)}})
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"ppm", PPM},
		{".PPM", PPM},
		{"png", PNG},
		{".jpeg", JPEG},
		{"JPG", JPEG},
		{"tif", TIFF},
		{"gif", GIF},
		{"bmp", BMP},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if err != nil {
			t.Errorf("ParseFormat(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseFormat(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}

	for _, bad := range []string{"", "webp", ".exr"} {
		if _, err := ParseFormat(bad); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("ParseFormat(%q): expected ErrUnsupportedFormat, got %v", bad, err)
		}
	}
}

func TestEncode_PPMMatchesWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(t), PPM); err != nil {
		t.Fatal(err)
	}
	expected := "P3\n2 1\n255\n255 0 0\n0 255 255\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestEncode_PNG(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(t), PNG); err != nil {
		t.Fatal(err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Fatalf("Expected 2x1, got %v", b)
	}
	r, g, b, _ := decoded.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("Expected red pixel, got (%d, %d, %d)", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = decoded.At(1, 0).RGBA()
	if r>>8 != 0 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("Expected cyan pixel, got (%d, %d, %d)", r>>8, g>>8, b>>8)
	}
}

func TestEncode_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(t), Format("exr")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	img := ppm.NewTestGradient(8, 6)

	for _, name := range []string{"out.ppm", "out.png", "out.jpg", "out.tiff", "out.bmp", "out.gif"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "sub", name)
			if err := Save(img, path); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			if filepath.Ext(name) == ".ppm" {
				f, err := os.Open(path)
				if err != nil {
					t.Fatal(err)
				}
				defer f.Close()
				decoded, err := ppm.Decode(f)
				if err != nil {
					t.Fatalf("Saved PPM does not decode: %v", err)
				}
				if decoded.Width() != 8 || decoded.Height() != 6 {
					t.Errorf("Expected 8x6, got %dx%d", decoded.Width(), decoded.Height())
				}
				return
			}

			decoded, err := imaging.Open(path)
			if err != nil {
				t.Fatalf("Saved file does not decode: %v", err)
			}
			if b := decoded.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
				t.Errorf("Expected 8x6, got %v", b)
			}
		})
	}
}

func TestSave_UnknownExtension(t *testing.T) {
	err := Save(testImage(t), filepath.Join(t.TempDir(), "out.webp"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestThumbnail(t *testing.T) {
	img := ppm.NewTestGradient(64, 36)

	thumb := Thumbnail(img, 16)
	if b := thumb.Bounds(); b.Dx() != 16 || b.Dy() != 9 {
		t.Errorf("Expected 16x9 thumbnail, got %v", b)
	}

	// Never upscales
	small := Thumbnail(img, 128)
	if b := small.Bounds(); b.Dx() != 64 || b.Dy() != 36 {
		t.Errorf("Expected original 64x36, got %v", b)
	}
}

func TestSaveThumbnail(t *testing.T) {
	dir := t.TempDir()
	img := ppm.NewTestGradient(40, 20)

	path := filepath.Join(dir, "thumb.png")
	if err := SaveThumbnail(img, path, 10); err != nil {
		t.Fatalf("SaveThumbnail failed: %v", err)
	}
	decoded, err := imaging.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if b := decoded.Bounds(); b.Dx() != 10 || b.Dy() != 5 {
		t.Errorf("Expected 10x5, got %v", b)
	}

	if err := SaveThumbnail(img, filepath.Join(dir, "thumb.ppm"), 10); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat for PPM thumbnail, got %v", err)
	}
	if err := SaveThumbnail(img, filepath.Join(dir, "zero.png"), 0); err == nil {
		t.Error("Expected error for zero thumbnail size")
	}
}

func TestFormat_ContentType(t *testing.T) {
	if PNG.ContentType() != "image/png" {
		t.Errorf("Expected image/png, got %s", PNG.ContentType())
	}
	if Format("x").ContentType() != "application/octet-stream" {
		t.Errorf("Expected octet-stream fallback, got %s", Format("x").ContentType())
	}
	if JPEG.Extension() != ".jpg" {
		t.Errorf("Expected .jpg, got %s", JPEG.Extension())
	}
}
