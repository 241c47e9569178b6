// Package generate wires the seven generation modes: each one validates its
// inputs, issues the API call, checks moderation where images come back, and
// persists the artifact.
package generate

import (
	"fmt"
	"image"
	"os"
	"time"

	// Register decoders for the upscale input dimension check.
	_ "image/jpeg"
	_ "image/png"

	"github.com/forgelab/assetforge/internal/config"
	"github.com/forgelab/assetforge/internal/stability"
)

// MaxUpscalePixels is the largest input area the creative upscaler accepts.
const MaxUpscalePixels = 1048576

// Service runs generation modes against a client using the configured
// endpoints, writing artifacts into OutputDir.
type Service struct {
	Client    *stability.Client
	Endpoints config.Endpoints
	OutputDir string

	// now stamps output filenames; overridable in tests.
	now func() int64
}

func NewService(client *stability.Client, endpoints config.Endpoints, outputDir string) *Service {
	return &Service{
		Client:    client,
		Endpoints: endpoints,
		OutputDir: outputDir,
		now:       func() int64 { return time.Now().Unix() },
	}
}

// requireFile checks that a mandatory input file exists before any network
// call is made.
func requireFile(path, purpose string) error {
	if path == "" {
		return fmt.Errorf("a source image is required for %s", purpose)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("input file %s for %s is not readable: %w", path, purpose, err)
	}
	return nil
}

// checkPixelArea rejects images whose pixel area exceeds limit, reading only
// the header of the file.
func checkPixelArea(path string, limit int) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input image: %w", err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return fmt.Errorf("failed to read image dimensions from %s: %w", path, err)
	}

	area := cfg.Width * cfg.Height
	if area > limit {
		return fmt.Errorf("image dimensions exceed the maximum allowed pixels (%d), got %dx%d = %d", limit, cfg.Width, cfg.Height, area)
	}

	return nil
}
