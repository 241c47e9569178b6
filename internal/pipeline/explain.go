package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/forgelab/assetforge/internal/providers"
)

// Token budgets for the per-item completions, matching the sizes the
// explanations and prompts are written for.
const (
	DefaultExplanationTokens = 120
	DefaultImgPromptTokens   = 69
)

// Explain fills in an explanation and an image prompt for every item in the
// document, one completion pair per item.
func Explain(ctx context.Context, provider providers.Provider, model string, doc *Document, explanationTokens, imgPromptTokens int) error {
	if len(doc.Items) == 0 {
		return fmt.Errorf("the input document carries no numbered list")
	}

	for i := range doc.Items {
		item := &doc.Items[i]
		slog.Info("Processing item", "progress", fmt.Sprintf("%d/%d", i+1, len(doc.Items)), "id", item.ID, "title", item.Title)

		explanation, err := generateExplanation(ctx, provider, model, item.Title, explanationTokens)
		if err != nil {
			return err
		}
		item.Explanation = explanation

		imgPrompt, err := generateImagePrompt(ctx, provider, model, item.Title, explanation, imgPromptTokens)
		if err != nil {
			return err
		}
		item.ImgPrompt = imgPrompt
	}

	return nil
}

func generateExplanation(ctx context.Context, provider providers.Provider, model, title string, maxTokens int) (string, error) {
	prompt := fmt.Sprintf(
		"Provide a detailed and specific explanation for the following topic or subtopic: '%s'. "+
			"The explanation should focus on the key aspects, details, and context of the topic, "+
			"ensuring it is informative and relevant and should not exceed 10 lines/sentences.",
		title,
	)

	text, err := provider.Complete(ctx, providers.Config{
		Model:       model,
		Temperature: 0.7,
		MaxTokens:   maxTokens,
		Prompt:      prompt,
	})
	if err != nil {
		return "", fmt.Errorf("explanation generation failed for %q: %w", title, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "No explanation generated.", nil
	}
	return text, nil
}

func generateImagePrompt(ctx context.Context, provider providers.Provider, model, title, explanation string, maxTokens int) (string, error) {
	prompt := fmt.Sprintf(
		"Based on the title '%s' and the explanation '%s', generate a detailed and descriptive "+
			"image prompt suitable for an AI image or 3d model generator. The prompt should "+
			"describe the visual elements, context, and style of the image or infographic.",
		title, explanation,
	)

	text, err := provider.Complete(ctx, providers.Config{
		Model:       model,
		Temperature: 0.7,
		MaxTokens:   maxTokens,
		Prompt:      prompt,
	})
	if err != nil {
		return "", fmt.Errorf("image prompt generation failed for %q: %w", title, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "No image prompt generated.", nil
	}
	return text, nil
}
