package renderer

import (
	"context"
	"errors"
	"testing"

	"github.com/df07/go-ppm-raytracer/pkg/core"
	"github.com/df07/go-ppm-raytracer/pkg/ppm"
)

func TestWorkerPool_RejectsMismatchedImage(t *testing.T) {
	rt := NewRaytracer(newSphereScene(t, 1), 4, 4)

	tests := []struct {
		name          string
		width, height int
	}{
		{"larger", 8, 8},
		{"smaller", 2, 2},
		{"wider", 8, 4},
		{"taller", 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ppm.NewBlank(tt.width, tt.height)
			if err != nil {
				t.Fatal(err)
			}

			stats, err := NewWorkerPool(rt, 2).Render(context.Background(), img)
			if !errors.Is(err, ppm.ErrInvalidDimensions) {
				t.Errorf("Expected ErrInvalidDimensions, got %v", err)
			}
			if stats.TotalPixels != 0 {
				t.Errorf("Expected empty stats, got %+v", stats)
			}
			for y := 0; y < img.Height(); y++ {
				for x := 0; x < img.Width(); x++ {
					if img.At(x, y) != core.Black {
						t.Fatalf("Expected image untouched, pixel (%d, %d) is %v", x, y, img.At(x, y))
					}
				}
			}
		})
	}
}

func TestWorkerPool_RejectsTooSmallRaytracer(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {1, 4}, {4, 1}} {
		rt := NewRaytracer(newSphereScene(t, 1), size[0], size[1])
		img, err := ppm.NewBlank(size[0], size[1])
		if err != nil {
			t.Fatal(err)
		}

		if _, err := NewWorkerPool(rt, 2).Render(context.Background(), img); !errors.Is(err, ppm.ErrInvalidDimensions) {
			t.Errorf("Size %v: expected ErrInvalidDimensions, got %v", size, err)
		}
	}
}

func TestWorkerPool_MatchingImage(t *testing.T) {
	rt := NewRaytracer(newSphereScene(t, 1), 4, 4)
	img, err := ppm.NewBlank(4, 4)
	if err != nil {
		t.Fatal(err)
	}

	stats, err := NewWorkerPool(rt, 2).Render(context.Background(), img)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.TotalPixels != 16 {
		t.Errorf("Expected 16 pixels, got %d", stats.TotalPixels)
	}

	expected, _, err := rt.Render()
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if img.At(x, y) != expected.At(x, y) {
				t.Errorf("Pixel (%d, %d): expected %v, got %v", x, y, expected.At(x, y), img.At(x, y))
			}
		}
	}
}
