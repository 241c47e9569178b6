package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/forgelab/assetforge/internal/pipeline"
	"github.com/forgelab/assetforge/internal/prompt"
	"github.com/forgelab/assetforge/internal/providers"
	"github.com/spf13/cobra"
)

func newPipelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Plan, outline, and explanation text pipeline",
		Long: `The pipeline turns a project idea into structured research notes in three
stages: a free-text plan, a multi-level numbered outline of that plan, and a
short explanation plus image prompt for every outline entry.

Each stage writes a JSON file the next stage consumes, so stages can be run
one at a time or all at once with "pipeline run".`,
	}

	cmd.AddCommand(newPlanCmd())
	cmd.AddCommand(newOutlineCmd())
	cmd.AddCommand(newExplainCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}

func newPlanCmd() *cobra.Command {
	var providerName string
	var model string
	var maxTokens int

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a project plan from a prompt",
		Long: `Generates a free-text project plan from an interactively entered prompt.
The first line of the plan becomes the project name, and the result is saved
as <project_name>_plan.json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, model, err := resolveProvider(cmd, providerName, model)
			if err != nil {
				return err
			}

			p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
			userPrompt, err := p.Required("Enter your prompt for the plan", "user prompt")
			if err != nil {
				return err
			}

			doc, err := pipeline.GeneratePlan(cmd.Context(), provider, model, userPrompt, maxTokens)
			if err != nil {
				return err
			}

			outPath := pipeline.SanitizeName(doc.ProjectName) + "_plan.json"
			if err := doc.Save(outPath); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Generated project name: %s\n", doc.ProjectName)
			fmt.Fprintf(cmd.OutOrStdout(), "Plan saved to %s\n", outPath)
			return nil
		},
	}

	addProviderFlags(cmd, &providerName, &model)
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 1500, "Token budget for the plan completion")

	return cmd
}

func newOutlineCmd() *cobra.Command {
	var providerName string
	var model string
	var inputPath string
	var maxTokens int

	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Generate a numbered outline from a plan file",
		Long: `Reads a plan JSON file and generates a multi-level numbered outline of it.
The outline is parsed line by line: everything before the first ". " is the
item id, the rest is the title. Lines without that separator are kept as
title-only entries with an empty id.`,
		Example: `  assetforge pipeline outline --input my_project_plan.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, model, err := resolveProvider(cmd, providerName, model)
			if err != nil {
				return err
			}

			doc, err := pipeline.Load(inputPath)
			if err != nil {
				return err
			}

			items, err := pipeline.GenerateOutline(cmd.Context(), provider, model, doc, maxTokens)
			if err != nil {
				return err
			}
			doc.Items = items

			outPath := inputStem(inputPath) + "_numbered_list.json"
			if err := doc.Save(outPath); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Outline with %d items saved to %s\n", len(items), outPath)
			return nil
		},
	}

	addProviderFlags(cmd, &providerName, &model)
	cmd.Flags().StringVar(&inputPath, "input", "", "Path to the plan JSON file (required)")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 1500, "Token budget for the outline completion")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func newExplainCmd() *cobra.Command {
	var providerName string
	var model string
	var inputPath string
	var explanationTokens int
	var imgPromptTokens int

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Add explanations and image prompts to an outline file",
		Long: `Reads a numbered-list JSON file and, for every entry, generates a short
explanation and a visual-description prompt suitable for feeding back into
the asset generation modes. The result is saved as processed_<input>.`,
		Example: `  assetforge pipeline explain --input my_project_plan_numbered_list.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, model, err := resolveProvider(cmd, providerName, model)
			if err != nil {
				return err
			}

			doc, err := pipeline.Load(inputPath)
			if err != nil {
				return err
			}

			if err := pipeline.Explain(cmd.Context(), provider, model, doc, explanationTokens, imgPromptTokens); err != nil {
				return err
			}

			outPath := "processed_" + filepath.Base(inputPath)
			if err := doc.Save(outPath); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Processed data saved to %s\n", outPath)
			return nil
		},
	}

	addProviderFlags(cmd, &providerName, &model)
	cmd.Flags().StringVar(&inputPath, "input", "", "Path to the numbered-list JSON file (required)")
	cmd.Flags().IntVar(&explanationTokens, "explanation-tokens", pipeline.DefaultExplanationTokens, "Token budget per explanation")
	cmd.Flags().IntVar(&imgPromptTokens, "img-prompt-tokens", pipeline.DefaultImgPromptTokens, "Token budget per image prompt")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func newRunCmd() *cobra.Command {
	var providerName string
	var model string
	var maxTokens int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run all three pipeline stages end to end",
		Long: `Runs plan, outline, and explain in sequence from an interactively entered
prompt, then writes the combined result as <project_name>_processed.json and
an indented plain-text report next to it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, model, err := resolveProvider(cmd, providerName, model)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Welcome to the research assistant pipeline.")
			fmt.Fprintln(out, "This run generates a plan, a numbered outline, and per-item explanations with image prompts.")

			p := prompt.New(cmd.InOrStdin(), out)
			userPrompt, err := p.Required("Enter your prompt for the plan", "user prompt")
			if err != nil {
				return err
			}

			doc, err := pipeline.GeneratePlan(cmd.Context(), provider, model, userPrompt, maxTokens)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Generated project name: %s\n", doc.ProjectName)

			items, err := pipeline.GenerateOutline(cmd.Context(), provider, model, doc, maxTokens)
			if err != nil {
				return err
			}
			doc.Items = items

			if err := pipeline.Explain(cmd.Context(), provider, model, doc, pipeline.DefaultExplanationTokens, pipeline.DefaultImgPromptTokens); err != nil {
				return err
			}

			stem := pipeline.SanitizeName(doc.ProjectName)
			jsonPath := stem + "_processed.json"
			if err := doc.Save(jsonPath); err != nil {
				return err
			}

			report := pipeline.Report(doc)
			fmt.Fprintln(out)
			fmt.Fprint(out, report)

			txtPath := stem + "_processed.txt"
			if err := os.WriteFile(txtPath, []byte(report), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", txtPath, err)
			}

			fmt.Fprintf(out, "Final output saved to %s\n", jsonPath)
			fmt.Fprintf(out, "Formatted output also saved to %s\n", txtPath)
			return nil
		},
	}

	addProviderFlags(cmd, &providerName, &model)
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 1500, "Token budget for the plan and outline completions")

	return cmd
}

func newExportCmd() *cobra.Command {
	var inputPath string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a processed document as a parquet dataset",
		Long: `Exports the items of a processed pipeline JSON file to a parquet file,
one row per outline item, keeping outline order.`,
		Example: `  assetforge pipeline export --input my_project_processed.json --output items.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := pipeline.Load(inputPath)
			if err != nil {
				return err
			}

			if outputPath == "" {
				outputPath = inputStem(inputPath) + ".parquet"
			}

			if err := pipeline.ExportParquet(doc, outputPath); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items to %s\n", len(doc.Items), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to the processed JSON file (required)")
	cmd.Flags().StringVar(&outputPath, "output", "", "Output parquet path (defaults to the input stem)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func addProviderFlags(cmd *cobra.Command, providerName, model *string) {
	cmd.Flags().StringVar(providerName, "provider", "", "LLM provider (openai, gemini, or ollama; defaults to the config file setting)")
	cmd.Flags().StringVar(model, "model", "", "Model name (defaults to the provider's default)")
}

// resolveProvider layers the provider choice: flag, then config file, then
// the provider's default model.
func resolveProvider(cmd *cobra.Command, name, model string) (providers.Provider, string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", err
	}

	if name == "" {
		name = cfg.Provider
	}
	if model == "" {
		model = cfg.Model
	}

	provider, err := pipeline.NewProvider(name)
	if err != nil {
		return nil, "", err
	}
	if model == "" {
		model = pipeline.DefaultModel(name)
	}
	return provider, model, nil
}

func inputStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
