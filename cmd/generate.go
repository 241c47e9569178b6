package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/forgelab/assetforge/internal/config"
	"github.com/forgelab/assetforge/internal/generate"
	"github.com/forgelab/assetforge/internal/prompt"
	"github.com/forgelab/assetforge/internal/stability"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Interactively generate an image, video, or 3D model",
		Long: `Generate drives an interactive prompt sequence: pick a mode, answer the
mode's questions (defaults shown in brackets), and the resulting artifact is
written to the output directory.

Requires STABILITY_API_KEY in the environment or a local .env file.`,
		Example: `  # Run the interactive generation flow
  assetforge generate

  # Write artifacts somewhere else
  assetforge generate --output-dir ./artifacts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}

			apiKey := os.Getenv("STABILITY_API_KEY")
			if apiKey == "" {
				return fmt.Errorf("STABILITY_API_KEY environment variable not set")
			}

			client := stability.NewClient(apiKey, cfg.Endpoints.ResultsBase)
			client.PollInterval = cfg.PollInterval()
			client.PollTimeout = cfg.PollTimeout()

			svc := generate.NewService(client, cfg.Endpoints, cfg.OutputDir)
			p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())

			return runInteractive(cmd, p, svc)
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory to write generated artifacts to")

	return cmd
}

func runInteractive(cmd *cobra.Command, p *prompt.Prompter, svc *generate.Service) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Welcome to the assetforge generation flow.")
	fmt.Fprintln(out, "Press Enter to accept the default values shown in [brackets].")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Supported modes:")
	fmt.Fprintln(out, "  img        -> Standard image generation")
	fmt.Fprintln(out, "  video      -> Video generation from an image")
	fmt.Fprintln(out, "  3d         -> Standard 3D model generation")
	fmt.Fprintln(out, "  sketch     -> Sketch-to-image (refine a sketch)")
	fmt.Fprintln(out, "  sd3        -> SD3 image generation")
	fmt.Fprintln(out, "  upscale    -> Upscale an image")
	fmt.Fprintln(out, "  3d-aware   -> 3D aware model generation")

	mode := strings.ToLower(p.Ask("Choose mode", "img"))

	var path string
	var err error

	switch mode {
	case "img":
		path, err = runImageMode(cmd, p, svc)
	case "video":
		path, err = runVideoMode(cmd, p, svc)
	case "3d":
		path, err = runThreeDMode(cmd, p, svc, false)
	case "sketch":
		path, err = runSketchMode(cmd, p, svc)
	case "sd3":
		path, err = runSD3Mode(cmd, p, svc)
	case "upscale":
		path, err = runUpscaleMode(cmd, p, svc)
	case "3d-aware":
		path, err = runThreeDMode(cmd, p, svc, true)
	default:
		return fmt.Errorf("invalid mode %q: choose one of img, video, 3d, sketch, sd3, upscale, 3d-aware", mode)
	}

	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nArtifact saved to: %s\n", path)
	return nil
}

func runImageMode(cmd *cobra.Command, p *prompt.Prompter, svc *generate.Service) (string, error) {
	promptText, err := p.Required("Enter the prompt for image generation", "text prompt")
	if err != nil {
		return "", err
	}
	negative := p.Ask("Enter a negative prompt", "")
	aspect := p.Ask("Enter aspect ratio", "3:2")
	seed, err := p.Int("Enter seed", 42)
	if err != nil {
		return "", err
	}
	format := p.Ask("Enter output format", "jpeg")

	return svc.Image(cmd.Context(), generate.ImageOptions{
		Prompt:         promptText,
		NegativePrompt: negative,
		AspectRatio:    aspect,
		Seed:           seed,
		OutputFormat:   format,
	})
}

func runVideoMode(cmd *cobra.Command, p *prompt.Prompter, svc *generate.Service) (string, error) {
	inputFile, err := p.Required("Enter the source image path for video generation", "source image")
	if err != nil {
		return "", err
	}
	seed, err := p.Int("Enter seed", 42)
	if err != nil {
		return "", err
	}
	cfgScale, err := p.Float("Enter CFG scale", 7.5)
	if err != nil {
		return "", err
	}
	motionBucket, err := p.Int("Enter motion bucket ID", 127)
	if err != nil {
		return "", err
	}

	return svc.Video(cmd.Context(), generate.VideoOptions{
		InputImage:     inputFile,
		Seed:           seed,
		CfgScale:       cfgScale,
		MotionBucketID: motionBucket,
	})
}

func runThreeDMode(cmd *cobra.Command, p *prompt.Prompter, svc *generate.Service, aware bool) (string, error) {
	purpose := "3D generation"
	fgDefault := 0.85
	if aware {
		purpose = "3D aware generation"
		fgDefault = 1.0
	}

	inputFile, err := p.Required("Enter the source image path for "+purpose, "source image")
	if err != nil {
		return "", err
	}
	texture := p.Ask("Enter texture resolution", "1024")
	fgRatio, err := p.Float("Enter foreground ratio", fgDefault)
	if err != nil {
		return "", err
	}
	remesh := p.Ask("Enter remesh option", "triangle")
	vertexCount, err := p.Int("Enter vertex count", 20000)
	if err != nil {
		return "", err
	}

	opts := generate.ThreeDOptions{
		InputImage:        inputFile,
		TextureResolution: texture,
		ForegroundRatio:   fgRatio,
		Remesh:            remesh,
		VertexCount:       vertexCount,
	}
	if aware {
		return svc.ThreeDAware(cmd.Context(), opts)
	}
	return svc.ThreeD(cmd.Context(), opts)
}

func runSketchMode(cmd *cobra.Command, p *prompt.Prompter, svc *generate.Service) (string, error) {
	inputFile, err := p.Required("Enter the sketch image path", "sketch image")
	if err != nil {
		return "", err
	}
	promptText, err := p.Required("Enter the prompt for sketch-to-image generation", "text prompt")
	if err != nil {
		return "", err
	}
	negative := p.Ask("Enter a negative prompt", "")
	strength, err := p.FloatInRange("Enter control strength", 0.7, 0, 1)
	if err != nil {
		return "", err
	}
	seed, err := p.Int("Enter seed", 42)
	if err != nil {
		return "", err
	}
	format := p.Ask("Enter output format", "jpeg")

	return svc.Sketch(cmd.Context(), generate.SketchOptions{
		InputImage:      inputFile,
		Prompt:          promptText,
		NegativePrompt:  negative,
		ControlStrength: strength,
		Seed:            seed,
		OutputFormat:    format,
	})
}

func runSD3Mode(cmd *cobra.Command, p *prompt.Prompter, svc *generate.Service) (string, error) {
	out := cmd.OutOrStdout()

	promptText, err := p.Required("Enter the prompt for SD3 image generation", "text prompt")
	if err != nil {
		return "", err
	}
	negative := p.Ask("Enter a negative prompt", "")
	aspect := p.Ask("Enter aspect ratio", "3:2")
	seed, err := p.Int("Enter seed", 42)
	if err != nil {
		return "", err
	}
	format := p.Ask("Enter output format", "jpeg")

	fmt.Fprintln(out, "Choose a model:")
	fmt.Fprintln(out, "  1 -> sd3.5-large")
	fmt.Fprintln(out, "  2 -> sd3-large-turbo")
	fmt.Fprintln(out, "  3 -> sd3-medium")
	choice := p.Ask("Enter your choice", "1")
	model, ok := generate.SD3Models[choice]
	if !ok {
		model = "sd3.5-large"
	}

	return svc.SD3(cmd.Context(), generate.SD3Options{
		Prompt:         promptText,
		NegativePrompt: negative,
		AspectRatio:    aspect,
		Seed:           seed,
		OutputFormat:   format,
		Model:          model,
	})
}

func runUpscaleMode(cmd *cobra.Command, p *prompt.Prompter, svc *generate.Service) (string, error) {
	inputFile, err := p.Required("Enter the image path to upscale", "input image")
	if err != nil {
		return "", err
	}
	promptText, err := p.Required("Enter the prompt for upscaling", "text prompt")
	if err != nil {
		return "", err
	}
	negative := p.Ask("Enter a negative prompt", "")
	seed, err := p.Int("Enter seed", 42)
	if err != nil {
		return "", err
	}
	creativity, err := p.FloatInRange("Enter creativity level", 0.3, 0, 1)
	if err != nil {
		return "", err
	}
	format := p.Ask("Enter output format", "jpeg")

	return svc.Upscale(cmd.Context(), generate.UpscaleOptions{
		InputImage:     inputFile,
		Prompt:         promptText,
		NegativePrompt: negative,
		Seed:           seed,
		Creativity:     creativity,
		OutputFormat:   format,
	})
}

// loadConfig resolves the --config persistent flag into settings.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}
