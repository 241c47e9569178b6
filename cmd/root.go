package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assetforge",
		Short: "Generative asset toolkit for images, video, and 3D models",
		Long: `Assetforge drives generative AI APIs to produce images, videos, and 3D models,
and runs a plan/outline/explanation text pipeline that turns a project idea
into structured research notes with image prompts.

API keys are read from the environment (a local .env file is loaded if present).`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to an assetforge.yaml settings file")

	// Add subcommands
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newPipelineCmd())
	cmd.AddCommand(newChatCmd())

	return cmd
}
