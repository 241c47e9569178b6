package generate

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/forgelab/assetforge/internal/output"
	"github.com/forgelab/assetforge/internal/stability"
)

// ThreeDOptions are the parameters shared by both 3D generation modes.
type ThreeDOptions struct {
	InputImage        string
	TextureResolution string
	ForegroundRatio   float64
	Remesh            string
	VertexCount       int64
}

func (o *ThreeDOptions) applyDefaults() {
	if o.TextureResolution == "" {
		o.TextureResolution = "1024"
	}
	if o.Remesh == "" {
		o.Remesh = "triangle"
	}
	if o.VertexCount == 0 {
		o.VertexCount = 20000
	}
}

func (o *ThreeDOptions) request() *stability.Request {
	return &stability.Request{
		Params: map[string]string{
			"texture_resolution": o.TextureResolution,
			"foreground_ratio":   strconv.FormatFloat(o.ForegroundRatio, 'g', -1, 64),
			"remesh":             o.Remesh,
			"vertex_count":       strconv.FormatInt(o.VertexCount, 10),
		},
		ImagePath: o.InputImage,
	}
}

// ThreeD generates a GLB model from a source image and returns the saved
// path.
func (s *Service) ThreeD(ctx context.Context, opts ThreeDOptions) (string, error) {
	if err := requireFile(opts.InputImage, "3D generation"); err != nil {
		return "", err
	}
	opts.applyDefaults()
	if opts.ForegroundRatio == 0 {
		opts.ForegroundRatio = 0.85
	}

	res, err := s.Client.Do(ctx, s.Endpoints.ThreeD, opts.request(), "image/*")
	if err != nil {
		return "", err
	}

	name := output.Unique("model", "glb", s.now())
	path, err := output.Write(s.OutputDir, name, res.Body)
	if err != nil {
		return "", err
	}

	slog.Info("3D model generated", "path", path)
	return path, nil
}

// ThreeDAware generates a GLB model with the point-aware pipeline. Its
// foreground ratio defaults to 1.0 and must not go below it.
func (s *Service) ThreeDAware(ctx context.Context, opts ThreeDOptions) (string, error) {
	if err := requireFile(opts.InputImage, "3D aware generation"); err != nil {
		return "", err
	}
	opts.applyDefaults()
	if opts.ForegroundRatio == 0 {
		opts.ForegroundRatio = 1.0
	}
	if opts.ForegroundRatio < 1.0 {
		return "", fmt.Errorf("foreground ratio must be greater than or equal to 1, got %g", opts.ForegroundRatio)
	}

	res, err := s.Client.Do(ctx, s.Endpoints.ThreeDAware, opts.request(), "image/*")
	if err != nil {
		return "", err
	}

	name := output.Unique("model_3d_aware", "glb", s.now())
	path, err := output.Write(s.OutputDir, name, res.Body)
	if err != nil {
		return "", err
	}

	slog.Info("3D aware model generated", "path", path)
	return path, nil
}
