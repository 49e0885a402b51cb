package config

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/df07/go-ppm-raytracer/pkg/export"
)

func envMap(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(nil, nil, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c.Scene != "default" || c.Width != 400 || c.Height != 225 || c.Format != export.PPM {
		t.Errorf("Unexpected defaults %+v", c)
	}
	if c.S3.Bucket != "" {
		t.Errorf("Expected uploads disabled by default, got bucket %q", c.S3.Bucket)
	}
}

func TestLoad_Precedence(t *testing.T) {
	env := envMap(map[string]string{
		EnvScene:    "spheres",
		EnvWidth:    "800",
		EnvFormat:   "png",
		EnvS3Bucket: "from-env",
		EnvS3Region: "eu-west-1",
	})

	c, err := Load([]string{"-width", "200", "-aspect", "2", "-s3-bucket", "from-flag"}, env, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if c.Scene != "spheres" {
		t.Errorf("Expected scene from env, got %q", c.Scene)
	}
	if c.Width != 200 || c.Height != 100 {
		t.Errorf("Expected 200x100 from flags, got %dx%d", c.Width, c.Height)
	}
	if c.Format != export.PNG {
		t.Errorf("Expected png from env, got %q", c.Format)
	}
	if c.S3.Bucket != "from-flag" || c.S3.Region != "eu-west-1" {
		t.Errorf("Unexpected S3 config %+v", c.S3)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"width too small", []string{"-width", "1"}, nil},
		{"zero aspect", []string{"-aspect", "0"}, nil},
		{"height collapses", []string{"-width", "10", "-aspect", "20"}, nil},
		{"negative workers", []string{"-workers", "-2"}, nil},
		{"unknown format", []string{"-format", "webp"}, nil},
		{"unknown flag", []string{"-bogus"}, nil},
		{"bad env width", nil, map[string]string{EnvWidth: "wide"}},
		{"bad env format", nil, map[string]string{EnvFormat: "exr"}},
		{"empty output", []string{"-output", ""}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args, envMap(tt.env), io.Discard)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestHeightFor(t *testing.T) {
	if got := HeightFor(2000, 16.0/9.0); got != 1125 {
		t.Errorf("Expected 1125, got %d", got)
	}
	if got := HeightFor(400, 16.0/9.0); got != 225 {
		t.Errorf("Expected 225, got %d", got)
	}
}

func TestLoad_HelpFlags(t *testing.T) {
	for _, args := range [][]string{{"-help"}, {"-h"}} {
		c, err := Load(args, nil, io.Discard)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", args, err)
		}
		if !c.Help {
			t.Errorf("%v: expected Help to be set", args)
		}
	}
}

func TestUsage_ListsFlags(t *testing.T) {
	var buf bytes.Buffer
	Usage(&buf)

	for _, name := range []string{"-scene", "-width", "-aspect", "-output", "-format", "-workers", "-thumbnail", "-s3-bucket", "-s3-prefix", "-help"} {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("Expected usage to mention %s", name)
		}
	}
}
