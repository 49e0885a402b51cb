// Package config turns command line flags and environment variables into
// render settings. Flags win over the environment, which wins over defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/df07/go-ppm-raytracer/pkg/export"
)

// ErrInvalidConfig is returned for settings that fail validation
var ErrInvalidConfig = errors.New("invalid configuration")

// Environment variables consulted for defaults
const (
	EnvScene       = "RAYTRACER_SCENE"
	EnvWidth       = "RAYTRACER_WIDTH"
	EnvAspectRatio = "RAYTRACER_ASPECT"
	EnvOutputDir   = "RAYTRACER_OUTPUT_DIR"
	EnvFormat      = "RAYTRACER_FORMAT"
	EnvWorkers     = "RAYTRACER_WORKERS"
	EnvThumbnail   = "RAYTRACER_THUMBNAIL"
	EnvS3Bucket    = "S3_BUCKET"
	EnvS3Prefix    = "S3_PREFIX"
	EnvS3Region    = "S3_REGION"
	EnvS3Endpoint  = "S3_ENDPOINT"
	EnvS3AccessKey = "S3_ACCESS_KEY"
	EnvS3SecretKey = "S3_SECRET_KEY"
	EnvS3ACL       = "S3_ACL"
)

// Config holds everything the CLI needs to render and store one image
type Config struct {
	Scene       string
	Width       int
	Height      int // Derived from Width and AspectRatio
	AspectRatio float64
	OutputDir   string
	Format      export.Format
	Workers     int  // 0 means one per CPU
	Thumbnail   uint // Longest thumbnail edge; 0 disables thumbnails
	S3          export.S3Config
	Help        bool
}

// LookupFunc reads an environment variable; os.LookupEnv satisfies it
type LookupFunc func(key string) (string, bool)

// Default returns the built-in settings: a 400 pixel wide 16:9 PPM of the
// default scene
func Default() Config {
	c := Config{
		Scene:       "default",
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		OutputDir:   "output",
		Format:      export.PPM,
	}
	c.Height = HeightFor(c.Width, c.AspectRatio)
	return c
}

// HeightFor derives image height from width and aspect ratio, truncating
func HeightFor(width int, aspectRatio float64) int {
	return int(float64(width) / aspectRatio)
}

// Load parses args (without the program name) on top of environment defaults
func Load(args []string, lookup LookupFunc, output io.Writer) (Config, error) {
	c := Default()
	if err := c.applyEnv(lookup); err != nil {
		return Config{}, err
	}

	var format string
	fs := c.flagSet(&format, output)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			// -h is treated like -help
			c.Help = true
			return c, nil
		}
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	f, err := export.ParseFormat(format)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	c.Format = f

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	c.Height = HeightFor(c.Width, c.AspectRatio)
	return c, nil
}

// Usage writes the flag descriptions with their built-in defaults
func Usage(w io.Writer) {
	c := Default()
	var format string
	c.flagSet(&format, w).PrintDefaults()
}

func (c *Config) flagSet(format *string, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&c.Scene, "scene", c.Scene, "Scene type: 'default' or 'spheres'")
	fs.IntVar(&c.Width, "width", c.Width, "Image width in pixels")
	fs.Float64Var(&c.AspectRatio, "aspect", c.AspectRatio, "Image aspect ratio (width / height)")
	fs.StringVar(&c.OutputDir, "output", c.OutputDir, "Directory renders are written under")
	fs.StringVar(format, "format", string(c.Format), "Output format: ppm, png, jpg, gif, tiff or bmp")
	fs.IntVar(&c.Workers, "workers", c.Workers, "Parallel render workers (0 = one per CPU, 1 = sequential)")
	fs.UintVar(&c.Thumbnail, "thumbnail", c.Thumbnail, "Also write a PNG thumbnail no larger than this many pixels (0 = off)")
	fs.StringVar(&c.S3.Bucket, "s3-bucket", c.S3.Bucket, "Upload renders to this S3 bucket (empty = no upload)")
	fs.StringVar(&c.S3.Prefix, "s3-prefix", c.S3.Prefix, "Key prefix for uploaded renders")
	fs.BoolVar(&c.Help, "help", false, "Show help information")
	return fs
}

// Validate checks ranges that flag parsing cannot
func (c *Config) Validate() error {
	if c.Width < 2 {
		return fmt.Errorf("%w: width %d must be at least 2", ErrInvalidConfig, c.Width)
	}
	if !(c.AspectRatio > 0) {
		return fmt.Errorf("%w: aspect ratio %v must be positive", ErrInvalidConfig, c.AspectRatio)
	}
	if h := HeightFor(c.Width, c.AspectRatio); h < 2 {
		return fmt.Errorf("%w: width %d at aspect %v gives height %d, need at least 2", ErrInvalidConfig, c.Width, c.AspectRatio, h)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d must not be negative", ErrInvalidConfig, c.Workers)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output directory is required", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) applyEnv(lookup LookupFunc) error {
	if lookup == nil {
		return nil
	}

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str(EnvScene, &c.Scene)
	str(EnvOutputDir, &c.OutputDir)
	str(EnvS3Bucket, &c.S3.Bucket)
	str(EnvS3Prefix, &c.S3.Prefix)
	str(EnvS3Region, &c.S3.Region)
	str(EnvS3Endpoint, &c.S3.Endpoint)
	str(EnvS3AccessKey, &c.S3.AccessKey)
	str(EnvS3SecretKey, &c.S3.SecretKey)
	str(EnvS3ACL, &c.S3.ACL)

	if v, ok := lookup(EnvWidth); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvWidth, v, err)
		}
		c.Width = n
	}
	if v, ok := lookup(EnvAspectRatio); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvAspectRatio, v, err)
		}
		c.AspectRatio = f
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvWorkers, v, err)
		}
		c.Workers = n
	}
	if v, ok := lookup(EnvThumbnail); ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 0)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvThumbnail, v, err)
		}
		c.Thumbnail = uint(n)
	}
	if v, ok := lookup(EnvFormat); ok && v != "" {
		f, err := export.ParseFormat(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvFormat, err)
		}
		c.Format = f
	}
	return nil
}
