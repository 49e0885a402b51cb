package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-ppm-raytracer/pkg/export"
	"github.com/df07/go-ppm-raytracer/pkg/renderer"
	"github.com/df07/go-ppm-raytracer/pkg/scene"
)

// Limits on request parameters
const (
	MinImageSize = 2
	MaxImageSize = 2000
	MaxWorkers   = 64
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string        // Scene name passed to scene.New
	Width   int           // Image width
	Height  int           // Image height
	Format  export.Format // Response encoding
	Workers int           // 0 means one per CPU
}

// handleRender renders the requested scene and writes the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := scene.New(req.Scene, float64(req.Width)/float64(req.Height))
	if err != nil {
		writeSceneError(w, err)
		return
	}

	renderID := fmt.Sprintf("render-%d", s.renders.Add(1))
	logger := NewWebLogger(renderID, s.console)

	raytracer := renderer.NewRaytracer(sceneObj, req.Width, req.Height)
	raytracer.SetLogger(logger)

	// Use request context to stop rendering when the client disconnects
	img, stats, err := raytracer.RenderParallel(r.Context(), req.Workers)
	if err != nil {
		if r.Context().Err() != nil {
			logger.Printf("Render cancelled: %v\n", err)
			return
		}
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := export.Encode(&buf, img, req.Format); err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Encode error: %v", err))
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-ID", renderID)
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("X-Hit-Pixels", strconv.Itoa(stats.HitPixels))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Printf("Failed to write response: %v\n", err)
	}
}

// writeSceneError maps scene construction failures onto status codes
func writeSceneError(w http.ResponseWriter, err error) {
	if errors.Is(err, scene.ErrUnknownScene) {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSONError(w, http.StatusBadRequest, err.Error())
}

// parseRenderRequest parses request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: "default", Format: export.PNG}

	if name := values.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, MinImageSize, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 225, MinImageSize, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(values, "workers", 0, 0, MaxWorkers); err != nil {
		return nil, err
	}
	if format := values.Get("format"); format != "" {
		if req.Format, err = export.ParseFormat(format); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
