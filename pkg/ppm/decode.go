package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/df07/go-ppm-raytracer/pkg/core"
)

// ErrMalformed is returned when decoding input that is not a valid P3 pixmap
var ErrMalformed = errors.New("malformed ppm")

// MaxDecodePixels caps width*height accepted from a header
const MaxDecodePixels = 1 << 25

// rowChunk bounds how many pixels a row reserves before they are read
const rowChunk = 4096

// Decode reads a P3 pixmap. Channels are scaled back to [0, 1] by the
// header's maximum value.
func Decode(r io.Reader) (*Image, error) {
	tokens := newTokenizer(r)

	magic, err := tokens.next()
	if err != nil {
		return nil, fmt.Errorf("%w: missing magic number: %v", ErrMalformed, err)
	}
	if magic != "P3" {
		return nil, fmt.Errorf("%w: unsupported magic number %q", ErrMalformed, magic)
	}

	width, err := tokens.nextInt("width")
	if err != nil {
		return nil, err
	}
	height, err := tokens.nextInt("height")
	if err != nil {
		return nil, err
	}
	maxVal, err := tokens.nextInt("max value")
	if err != nil {
		return nil, err
	}
	if width < 0 || height < 0 || maxVal <= 0 {
		return nil, fmt.Errorf("%w: bad header %d %d %d", ErrMalformed, width, height, maxVal)
	}

	// Zero sizes count as one so a 0xN header cannot declare unbounded rows
	w, h := max(width, 1), max(height, 1)
	if w > MaxDecodePixels || h > MaxDecodePixels/w {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrMalformed, width, height, MaxDecodePixels)
	}

	// Rows grow as pixels arrive, so a short file never pays for its header
	scale := 1.0 / float64(maxVal)
	pixels := make([][]core.Color, 0, min(height, rowChunk))
	for y := 0; y < height; y++ {
		row := make([]core.Color, 0, min(width, rowChunk))
		for x := 0; x < width; x++ {
			var rgb [3]float64
			for i := range rgb {
				v, err := tokens.nextInt("channel")
				if err != nil {
					return nil, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
				}
				rgb[i] = float64(v) * scale
			}
			row = append(row, core.NewColor(rgb[0], rgb[1], rgb[2]))
		}
		pixels = append(pixels, row)
	}
	return New(width, height, pixels)
}

// tokenizer splits a pixmap into whitespace separated words, skipping # comments
type tokenizer struct {
	scanner *bufio.Scanner
}

func newTokenizer(r io.Reader) *tokenizer {
	scanner := bufio.NewScanner(r)
	scanner.Split(scanPPMWords)
	return &tokenizer{scanner: scanner}
}

func (t *tokenizer) next() (string, error) {
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return t.scanner.Text(), nil
}

func (t *tokenizer) nextInt(what string) (int, error) {
	word, err := t.next()
	if err != nil {
		return 0, fmt.Errorf("%w: reading %s: %v", ErrMalformed, what, err)
	}
	v, err := strconv.Atoi(word)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrMalformed, what, word)
	}
	return v, nil
}

// scanPPMWords is bufio.ScanWords with '#' comments running to end of line
func scanPPMWords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) {
		c := data[start]
		if c == '#' {
			end := start
			for end < len(data) && data[end] != '\n' {
				end++
			}
			if end == len(data) && !atEOF {
				// Need the rest of the comment line
				return start, nil, nil
			}
			start = end
			continue
		}
		if !isSpace(c) {
			break
		}
		start++
	}

	for i := start; i < len(data); i++ {
		if isSpace(data[i]) || data[i] == '#' {
			return i, data[start:i], nil
		}
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
