package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Endpoints holds the generation API endpoint URLs. Each mode hits a fixed
// endpoint; the settings file can point them somewhere else (e.g. a proxy).
type Endpoints struct {
	Image       string `yaml:"image"`
	Video       string `yaml:"video"`
	ThreeD      string `yaml:"threed"`
	Sketch      string `yaml:"sketch"`
	SD3         string `yaml:"sd3"`
	Upscale     string `yaml:"upscale"`
	ThreeDAware string `yaml:"threed_aware"`
	ResultsBase string `yaml:"results_base"`
}

// Config is the optional assetforge.yaml settings file.
type Config struct {
	Endpoints           Endpoints `yaml:"endpoints"`
	PollIntervalSeconds int       `yaml:"poll_interval_seconds"`
	PollTimeoutSeconds  int       `yaml:"poll_timeout_seconds"`
	OutputDir           string    `yaml:"output_dir"`
	Provider            string    `yaml:"provider"`
	Model               string    `yaml:"model"`
}

// Default returns the built-in settings used when no file is given.
func Default() *Config {
	return &Config{
		Endpoints: Endpoints{
			Image:       "https://api.stability.ai/v2beta/stable-image/generate/ultra",
			Video:       "https://api.stability.ai/v2beta/image-to-video",
			ThreeD:      "https://api.stability.ai/v2beta/3d/stable-fast-3d",
			Sketch:      "https://api.stability.ai/v2beta/stable-image/control/sketch",
			SD3:         "https://api.stability.ai/v2beta/stable-image/generate/sd3",
			Upscale:     "https://api.stability.ai/v2beta/stable-image/upscale/creative",
			ThreeDAware: "https://api.stability.ai/v2beta/3d/stable-point-aware-3d",
			ResultsBase: "https://api.stability.ai/v2beta/results",
		},
		PollIntervalSeconds: 10,
		PollTimeoutSeconds:  500,
		OutputDir:           ".",
		Provider:            "openai",
	}
}

// Load reads the settings file at path, layered over the defaults. An empty
// path returns the defaults; a missing or malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if cfg.PollIntervalSeconds <= 0 {
		return nil, fmt.Errorf("poll_interval_seconds must be positive, got %d", cfg.PollIntervalSeconds)
	}
	if cfg.PollTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("poll_timeout_seconds must be positive, got %d", cfg.PollTimeoutSeconds)
	}

	return cfg, nil
}

// PollInterval returns the poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// PollTimeout returns the poll timeout as a duration.
func (c *Config) PollTimeout() time.Duration {
	return time.Duration(c.PollTimeoutSeconds) * time.Second
}
