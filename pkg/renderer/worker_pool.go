package renderer

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-ppm-raytracer/pkg/ppm"
)

// RowTask asks a worker to render one image row (0 is the top row)
type RowTask struct {
	Row int
}

// WorkerPool renders rows in parallel. Every row is handed to exactly one
// worker, so workers write disjoint cells of the shared image.
type WorkerPool struct {
	raytracer  *Raytracer
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(raytracer *Raytracer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		raytracer:  raytracer,
		numWorkers: numWorkers,
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Render fills img row by row. img must match the raytracer's size. It
// returns early with the context's error if ctx is cancelled; img is then
// only partially filled.
func (wp *WorkerPool) Render(ctx context.Context, img *ppm.Image) (RenderStats, error) {
	rt := wp.raytracer
	if err := rt.checkSize(); err != nil {
		return RenderStats{}, err
	}
	if img.Width() != rt.width || img.Height() != rt.height {
		return RenderStats{}, fmt.Errorf("%w: image is %dx%d, raytracer renders %dx%d",
			ppm.ErrInvalidDimensions, img.Width(), img.Height(), rt.width, rt.height)
	}
	if err := ctx.Err(); err != nil {
		return RenderStats{}, err
	}

	start := time.Now()
	camera := rt.scene.GetCamera()

	g, ctx := errgroup.WithContext(ctx)
	taskQueue := make(chan RowTask, wp.numWorkers)

	g.Go(func() error {
		defer close(taskQueue)
		for row := 0; row < img.Height(); row++ {
			select {
			case taskQueue <- RowTask{Row: row}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	// One counter per worker; summed after Wait
	hits := make([]int, wp.numWorkers)
	for w := 0; w < wp.numWorkers; w++ {
		g.Go(func() error {
			for task := range taskQueue {
				if err := ctx.Err(); err != nil {
					return err
				}
				hits[w] += rt.renderRow(camera, task.Row, img.Row(task.Row))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return RenderStats{}, err
	}

	stats := newRenderStats(img.Width(), img.Height(), wp.numWorkers)
	for _, h := range hits {
		stats.HitPixels += h
	}
	stats.finalize(time.Since(start))
	return stats, nil
}

// RenderParallel renders the whole image with numWorkers goroutines
// (0 means one per CPU). The result is identical to Render.
func (rt *Raytracer) RenderParallel(ctx context.Context, numWorkers int) (*ppm.Image, RenderStats, error) {
	if err := rt.checkSize(); err != nil {
		return nil, RenderStats{}, err
	}
	img, err := ppm.NewBlank(rt.width, rt.height)
	if err != nil {
		return nil, RenderStats{}, err
	}

	pool := NewWorkerPool(rt, numWorkers)
	stats, err := pool.Render(ctx, img)
	if err != nil {
		return nil, RenderStats{}, err
	}

	rt.logger.Printf("Rendered %dx%d with %d workers in %v (%d pixels hit geometry)\n",
		rt.width, rt.height, pool.GetNumWorkers(), stats.Duration, stats.HitPixels)
	return img, stats, nil
}
