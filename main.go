package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/df07/go-ppm-raytracer/pkg/config"
	"github.com/df07/go-ppm-raytracer/pkg/core"
	"github.com/df07/go-ppm-raytracer/pkg/export"
	"github.com/df07/go-ppm-raytracer/pkg/ppm"
	"github.com/df07/go-ppm-raytracer/pkg/renderer"
	"github.com/df07/go-ppm-raytracer/pkg/scene"
)

func main() {
	// A missing .env file is fine; the environment and flags still apply
	_ = godotenv.Load()

	cfg, err := config.Load(os.Args[1:], os.LookupEnv, io.Discard)
	if err != nil {
		log.Printf("Error: %v", err)
		os.Exit(2)
	}

	// Show help if requested
	if cfg.Help {
		printHelp()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := run(ctx, cfg, renderer.NewDefaultLogger()); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("PPM Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	config.Usage(os.Stdout)
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to <output>/<scene>/render_<timestamp>.<format>")
	fmt.Println("Defaults may also be set with RAYTRACER_* and S3_* variables or a .env file.")
}

// renderResult lists everything a run produced
type renderResult struct {
	ImagePath     string
	ThumbnailPath string
	S3Key         string
	Stats         renderer.RenderStats
}

// run renders the configured scene and writes every requested output
func run(ctx context.Context, cfg config.Config, logger core.Logger) (*renderResult, error) {
	logger.Printf("Starting PPM Raytracer...\n")

	selectedScene, err := scene.New(cfg.Scene, cfg.AspectRatio)
	if err != nil {
		return nil, err
	}
	logger.Printf("Using %s scene at %dx%d...\n", selectedScene.Name, cfg.Width, cfg.Height)

	raytracer := renderer.NewRaytracer(selectedScene, cfg.Width, cfg.Height)
	raytracer.SetLogger(logger)

	var (
		img   *ppm.Image
		stats renderer.RenderStats
	)
	if cfg.Workers == 1 {
		img, stats, err = raytracer.Render()
	} else {
		img, stats, err = raytracer.RenderParallel(ctx, cfg.Workers)
	}
	if err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}

	result := &renderResult{Stats: stats}
	base := createOutputBase(cfg.OutputDir, selectedScene.Name, time.Now())

	result.ImagePath = base + cfg.Format.Extension()
	if err := export.Save(img, result.ImagePath); err != nil {
		return nil, err
	}
	logger.Printf("Render saved as %s\n", result.ImagePath)

	if cfg.Thumbnail > 0 {
		result.ThumbnailPath = base + "_thumb" + export.PNG.Extension()
		if err := export.SaveThumbnail(img, result.ThumbnailPath, cfg.Thumbnail); err != nil {
			return nil, err
		}
		logger.Printf("Thumbnail saved as %s\n", result.ThumbnailPath)
	}

	if cfg.S3.Bucket != "" {
		publisher, err := export.NewS3Publisher(cfg.S3, logger)
		if err != nil {
			return nil, err
		}
		name := path.Join(selectedScene.Name, filepath.Base(base))
		result.S3Key, err = publisher.PublishImage(ctx, img, name, cfg.Format)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// createOutputBase returns <outputDir>/<scene>/render_<timestamp> without an extension
func createOutputBase(outputDir, sceneName string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join(outputDir, sceneName, fmt.Sprintf("render_%s", timestamp))
}
