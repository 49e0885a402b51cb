package ppm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// MaxValue is the maximum channel value written in the header
const MaxValue = 255

// Encode writes the image as a P3 pixmap: a three line header followed by
// one "R G B" line per pixel, top row first.
func (img *Image) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n%d\n", img.width, img.height, MaxValue); err != nil {
		return fmt.Errorf("failed to write ppm header: %w", err)
	}

	line := make([]byte, 0, 16)
	for _, row := range img.pixels {
		for _, c := range row {
			line = strconv.AppendInt(line[:0], int64(Channel(c.R)), 10)
			line = append(line, ' ')
			line = strconv.AppendInt(line, int64(Channel(c.G)), 10)
			line = append(line, ' ')
			line = strconv.AppendInt(line, int64(Channel(c.B)), 10)
			line = append(line, '\n')
			if _, err := bw.Write(line); err != nil {
				return fmt.Errorf("failed to write ppm pixels: %w", err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write ppm pixels: %w", err)
	}
	return nil
}

// WriteFile encodes the image to path, creating parent directories as needed
func (img *Image) WriteFile(path string) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create ppm file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close ppm file: %w", closeErr)
		}
	}()

	return img.Encode(file)
}
