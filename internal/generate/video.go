package generate

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/forgelab/assetforge/internal/output"
	"github.com/forgelab/assetforge/internal/stability"
)

// VideoOptions are the parameters for image-to-video generation.
type VideoOptions struct {
	InputImage     string
	Seed           int64
	CfgScale       float64
	MotionBucketID int64
}

// Video animates a source image into a video and returns the saved path.
// The video endpoint issues a job id and serves the result from its own
// per-job URL, so the poll targets that URL rather than the shared results
// endpoint.
func (s *Service) Video(ctx context.Context, opts VideoOptions) (string, error) {
	if err := requireFile(opts.InputImage, "video generation"); err != nil {
		return "", err
	}

	req := &stability.Request{
		Params: map[string]string{
			"seed":             strconv.FormatInt(opts.Seed, 10),
			"cfg_scale":        strconv.FormatFloat(opts.CfgScale, 'g', -1, 64),
			"motion_bucket_id": strconv.FormatInt(opts.MotionBucketID, 10),
		},
		ImagePath: opts.InputImage,
	}

	id, err := s.Client.SubmitJob(ctx, s.Endpoints.Video, req)
	if err != nil {
		return "", err
	}

	slog.Info("Video job submitted", "id", id)

	res, err := s.Client.PollVideo(ctx, s.Endpoints.Video+"/result/"+id)
	if err != nil {
		return "", err
	}

	name := output.UniqueSeeded("video", "mp4", opts.Seed, s.now())
	path, err := output.Write(s.OutputDir, name, res.Body)
	if err != nil {
		return "", err
	}

	slog.Info("Video generated", "path", path)
	return path, nil
}
