package generate

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/forgelab/assetforge/internal/output"
	"github.com/forgelab/assetforge/internal/stability"
)

// ImageOptions are the parameters for standard text-to-image generation.
type ImageOptions struct {
	Prompt         string
	NegativePrompt string
	AspectRatio    string
	Seed           int64
	OutputFormat   string
}

// Image generates an image from a text prompt and returns the saved path.
func (s *Service) Image(ctx context.Context, opts ImageOptions) (string, error) {
	if opts.Prompt == "" {
		return "", fmt.Errorf("a text prompt is required for image generation")
	}
	applyImageDefaults(&opts)

	req := &stability.Request{
		Params: map[string]string{
			"prompt":          opts.Prompt,
			"negative_prompt": opts.NegativePrompt,
			"aspect_ratio":    opts.AspectRatio,
			"seed":            strconv.FormatInt(opts.Seed, 10),
			"output_format":   opts.OutputFormat,
		},
	}

	res, err := s.Client.Do(ctx, s.Endpoints.Image, req, "image/*")
	if err != nil {
		return "", err
	}
	if err := res.CheckModeration(); err != nil {
		return "", err
	}

	name := output.UniqueSeeded("generated", opts.OutputFormat, opts.Seed, s.now())
	path, err := output.Write(s.OutputDir, name, res.Body)
	if err != nil {
		return "", err
	}

	slog.Info("Image generated", "path", path)
	return path, nil
}

// SketchOptions are the parameters for refining a sketch into an image.
type SketchOptions struct {
	InputImage      string
	Prompt          string
	NegativePrompt  string
	ControlStrength float64
	Seed            int64
	OutputFormat    string
}

// Sketch refines a sketch image under a text prompt and returns the saved
// path. The output name derives from the source filename.
func (s *Service) Sketch(ctx context.Context, opts SketchOptions) (string, error) {
	if err := requireFile(opts.InputImage, "sketch-to-image generation"); err != nil {
		return "", err
	}
	if opts.Prompt == "" {
		return "", fmt.Errorf("a text prompt is required for sketch-to-image generation")
	}
	if opts.ControlStrength < 0 || opts.ControlStrength > 1 {
		return "", fmt.Errorf("control strength must be between 0 and 1, got %g", opts.ControlStrength)
	}
	if opts.OutputFormat == "" {
		opts.OutputFormat = "jpeg"
	}

	req := &stability.Request{
		Params: map[string]string{
			"prompt":           opts.Prompt,
			"negative_prompt":  opts.NegativePrompt,
			"control_strength": strconv.FormatFloat(opts.ControlStrength, 'g', -1, 64),
			"seed":             strconv.FormatInt(opts.Seed, 10),
			"output_format":    opts.OutputFormat,
		},
		ImagePath: opts.InputImage,
	}

	res, err := s.Client.Do(ctx, s.Endpoints.Sketch, req, "image/*")
	if err != nil {
		return "", err
	}
	if err := res.CheckModeration(); err != nil {
		return "", err
	}

	name := output.Derived("edited", opts.InputImage, opts.Seed, opts.OutputFormat)
	path, err := output.Write(s.OutputDir, name, res.Body)
	if err != nil {
		return "", err
	}

	slog.Info("Sketch refined", "path", path)
	return path, nil
}

// SD3Options are the parameters for SD3-family image generation.
type SD3Options struct {
	Prompt         string
	NegativePrompt string
	AspectRatio    string
	Seed           int64
	OutputFormat   string
	Model          string
}

// SD3Models maps the interactive menu choice to a model name.
var SD3Models = map[string]string{
	"1": "sd3.5-large",
	"2": "sd3-large-turbo",
	"3": "sd3-medium",
}

// SD3 generates an image with an SD3-family model and returns the saved
// path. Only the base sd3 model honors a negative prompt; the field is
// cleared for every other variant.
func (s *Service) SD3(ctx context.Context, opts SD3Options) (string, error) {
	if opts.Prompt == "" {
		return "", fmt.Errorf("a text prompt is required for SD3 generation")
	}
	if opts.AspectRatio == "" {
		opts.AspectRatio = "3:2"
	}
	if opts.OutputFormat == "" {
		opts.OutputFormat = "jpeg"
	}
	if opts.Model == "" {
		opts.Model = "sd3.5-large"
	}

	negative := ""
	if opts.Model == "sd3" {
		negative = opts.NegativePrompt
	}

	req := &stability.Request{
		Params: map[string]string{
			"prompt":          opts.Prompt,
			"negative_prompt": negative,
			"aspect_ratio":    opts.AspectRatio,
			"seed":            strconv.FormatInt(opts.Seed, 10),
			"output_format":   opts.OutputFormat,
			"model":           opts.Model,
			"mode":            "text-to-image",
		},
	}

	res, err := s.Client.Do(ctx, s.Endpoints.SD3, req, "image/*")
	if err != nil {
		return "", err
	}
	if err := res.CheckModeration(); err != nil {
		return "", err
	}

	name := output.UniqueSeeded("sd3_generated", opts.OutputFormat, opts.Seed, s.now())
	path, err := output.Write(s.OutputDir, name, res.Body)
	if err != nil {
		return "", err
	}

	slog.Info("SD3 image generated", "path", path, "model", opts.Model)
	return path, nil
}

// UpscaleOptions are the parameters for the creative upscaler.
type UpscaleOptions struct {
	InputImage     string
	Prompt         string
	NegativePrompt string
	Seed           int64
	Creativity     float64
	OutputFormat   string
}

// Upscale submits an image to the asynchronous creative upscaler, waits for
// the job, and returns the saved path. The input must not exceed
// MaxUpscalePixels; oversized inputs are rejected before any network call.
func (s *Service) Upscale(ctx context.Context, opts UpscaleOptions) (string, error) {
	if err := requireFile(opts.InputImage, "upscaling"); err != nil {
		return "", err
	}
	if opts.Prompt == "" {
		return "", fmt.Errorf("a text prompt is required for upscaling")
	}
	if opts.Creativity < 0 || opts.Creativity > 1 {
		return "", fmt.Errorf("creativity must be between 0 and 1, got %g", opts.Creativity)
	}
	if err := checkPixelArea(opts.InputImage, MaxUpscalePixels); err != nil {
		return "", err
	}
	if opts.OutputFormat == "" {
		opts.OutputFormat = "jpeg"
	}

	req := &stability.Request{
		Params: map[string]string{
			"prompt":          opts.Prompt,
			"negative_prompt": opts.NegativePrompt,
			"seed":            strconv.FormatInt(opts.Seed, 10),
			"creativity":      strconv.FormatFloat(opts.Creativity, 'g', -1, 64),
			"output_format":   opts.OutputFormat,
		},
		ImagePath: opts.InputImage,
	}

	res, err := s.Client.DoAsync(ctx, s.Endpoints.Upscale, req)
	if err != nil {
		return "", err
	}
	if err := res.CheckModeration(); err != nil {
		return "", err
	}

	name := output.Derived("upscaled", opts.InputImage, opts.Seed, opts.OutputFormat)
	path, err := output.Write(s.OutputDir, name, res.Body)
	if err != nil {
		return "", err
	}

	slog.Info("Image upscaled", "path", path)
	return path, nil
}

func applyImageDefaults(opts *ImageOptions) {
	if opts.AspectRatio == "" {
		opts.AspectRatio = "3:2"
	}
	if opts.OutputFormat == "" {
		opts.OutputFormat = "jpeg"
	}
}
