package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/forgelab/assetforge/internal/providers"
)

const planSystemPrompt = "You are a visionary CEO and strategic planner. Generate high-level, " +
	"actionable project plans with clear objectives, major milestones, and concise executive " +
	"summaries. Focus on strategy, impact, and resource allocation. Your output should reflect " +
	"the perspective and priorities of a top executive."

// GeneratePlan produces a free-text plan for the user prompt. The first line
// of the plan doubles as the project name.
func GeneratePlan(ctx context.Context, provider providers.Provider, model, userPrompt string, maxTokens int) (*Document, error) {
	if userPrompt == "" {
		return nil, fmt.Errorf("a user prompt is required")
	}

	plan, err := provider.Complete(ctx, providers.Config{
		Model:       model,
		Temperature: 0.6,
		MaxTokens:   maxTokens,
		System:      planSystemPrompt,
		Prompt:      userPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("plan generation failed: %w", err)
	}

	plan = strings.TrimSpace(plan)
	projectName := plan
	if i := strings.Index(plan, "\n"); i >= 0 {
		projectName = plan[:i]
	}

	return &Document{
		ProjectName: projectName,
		Plan:        plan,
	}, nil
}
