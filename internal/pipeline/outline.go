package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/forgelab/assetforge/internal/providers"
)

const outlineSystemPrompt = `You are a research assistant whose primary task is to break down the user's prompt into a structured, numbered list of topics and subtopics. Your output should follow a strategic, step-by-step guide format and be organized using a multi-level numbering system (e.g., 1, 1.1, 1.1.1, 1.2, 1.3, ... up to 10.11.12 if needed and beyond).

Guidelines:
1. Analyze the user prompt carefully to extract key themes, tasks, or steps.
2. Organize your response as a numbered list where:
   - Main topics are numbered as 1, 2, 3, etc.
   - Subtopics follow the format 1.1, 1.2, etc.
   - Deeper levels follow further decimal notation (e.g., 1.1.1, 1.1.2, etc.).
3. Your list should serve as a strategic guide, timeline, or set of steps, rather than an analytical or deeply interpretive essay.
4. Avoid over-analysis; keep the structure straightforward and directly related to the user's prompt.
5. Ensure clarity and logical progression in the numbered format, so each point builds on the previous ones.

When a user provides a prompt, return only the structured numbered list according to these instructions.`

// GenerateOutline asks the provider for a multi-level numbered outline of
// the document's plan and parses it into items.
func GenerateOutline(ctx context.Context, provider providers.Provider, model string, doc *Document, maxTokens int) ([]Item, error) {
	userPrompt := strings.TrimSpace(doc.ProjectName + " " + doc.Plan)
	if userPrompt == "" {
		return nil, fmt.Errorf("the input document carries no plan to outline")
	}

	text, err := provider.Complete(ctx, providers.Config{
		Model:       model,
		Temperature: 0.5,
		MaxTokens:   maxTokens,
		System:      outlineSystemPrompt,
		Prompt:      userPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("outline generation failed: %w", err)
	}

	return ParseOutline(text), nil
}

// ParseOutline splits the model output into outline items, one per non-empty
// line. The numbering is everything before the first ". " occurrence; a line
// without that separator becomes a title-only item with an empty id. The
// upstream numbering is taken at face value: ids are not checked for
// contiguity or correct nesting.
func ParseOutline(text string) []Item {
	var items []Item
	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		if id, title, found := strings.Cut(stripped, ". "); found {
			items = append(items, Item{
				ID:    strings.TrimSpace(id),
				Title: strings.TrimSpace(title),
			})
		} else {
			items = append(items, Item{ID: "", Title: stripped})
		}
	}
	return items
}
