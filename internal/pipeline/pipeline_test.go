package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/forgelab/assetforge/internal/providers"
)

// stubProvider answers completions from a canned function.
type stubProvider struct {
	complete func(config providers.Config) (string, error)
}

func (s *stubProvider) Complete(_ context.Context, config providers.Config) (string, error) {
	return s.complete(config)
}

func TestGeneratePlan(t *testing.T) {
	provider := &stubProvider{complete: func(config providers.Config) (string, error) {
		if config.System == "" {
			t.Error("Plan generation should set a system prompt")
		}
		if config.Prompt != "build a drone" {
			t.Errorf("Unexpected user prompt %q", config.Prompt)
		}
		return "\nDrone Initiative\nPhase one: research.\nPhase two: build.\n", nil
	}}

	doc, err := GeneratePlan(context.Background(), provider, "gpt-4o", "build a drone", 1500)
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}

	if doc.ProjectName != "Drone Initiative" {
		t.Errorf("Project name should be the first line of the plan, got %q", doc.ProjectName)
	}
	if !strings.HasPrefix(doc.Plan, "Drone Initiative\n") {
		t.Errorf("Plan should be trimmed, got %q", doc.Plan)
	}
}

func TestGeneratePlanRequiresPrompt(t *testing.T) {
	provider := &stubProvider{complete: func(config providers.Config) (string, error) {
		t.Error("No completion should run for an empty prompt")
		return "", nil
	}}

	if _, err := GeneratePlan(context.Background(), provider, "gpt-4o", "", 1500); err == nil {
		t.Error("Expected an error for an empty prompt")
	}
}

func TestGenerateOutline(t *testing.T) {
	provider := &stubProvider{complete: func(config providers.Config) (string, error) {
		if !strings.Contains(config.Prompt, "Drone Initiative") {
			t.Errorf("Outline prompt should carry the project name, got %q", config.Prompt)
		}
		return "1. Research\n1.1. Market survey\n2. Build", nil
	}}

	doc := &Document{ProjectName: "Drone Initiative", Plan: "Research then build."}
	items, err := GenerateOutline(context.Background(), provider, "gpt-4o", doc, 1500)
	if err != nil {
		t.Fatalf("GenerateOutline failed: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	if items[1].ID != "1.1" || items[1].Title != "Market survey" {
		t.Errorf("Unexpected item: %+v", items[1])
	}
}

func TestExplain(t *testing.T) {
	var calls int
	provider := &stubProvider{complete: func(config providers.Config) (string, error) {
		calls++
		if strings.Contains(config.Prompt, "image prompt") {
			return fmt.Sprintf("visual %d", calls), nil
		}
		return fmt.Sprintf("explanation %d", calls), nil
	}}

	doc := &Document{
		ProjectName: "P",
		Plan:        "plan",
		Items: []Item{
			{ID: "1", Title: "Alpha"},
			{ID: "2", Title: "Beta"},
		},
	}

	if err := Explain(context.Background(), provider, "gpt-4o", doc, 120, 69); err != nil {
		t.Fatalf("Explain failed: %v", err)
	}

	if calls != 4 {
		t.Errorf("Expected two completions per item, got %d calls", calls)
	}
	for i, item := range doc.Items {
		if item.Explanation == "" || item.ImgPrompt == "" {
			t.Errorf("Item %d not filled in: %+v", i, item)
		}
	}
}

func TestExplainEmptyDocument(t *testing.T) {
	provider := &stubProvider{complete: func(config providers.Config) (string, error) {
		t.Error("No completion should run without items")
		return "", nil
	}}

	doc := &Document{ProjectName: "P", Plan: "plan"}
	if err := Explain(context.Background(), provider, "gpt-4o", doc, 120, 69); err == nil {
		t.Error("Expected an error for a document without a numbered list")
	}
}

func TestExplainBlankCompletions(t *testing.T) {
	provider := &stubProvider{complete: func(config providers.Config) (string, error) {
		return "   ", nil
	}}

	doc := &Document{Items: []Item{{ID: "1", Title: "Alpha"}}}
	if err := Explain(context.Background(), provider, "gpt-4o", doc, 120, 69); err != nil {
		t.Fatalf("Explain failed: %v", err)
	}

	if doc.Items[0].Explanation != "No explanation generated." {
		t.Errorf("Blank explanation should fall back to placeholder, got %q", doc.Items[0].Explanation)
	}
	if doc.Items[0].ImgPrompt != "No image prompt generated." {
		t.Errorf("Blank image prompt should fall back to placeholder, got %q", doc.Items[0].ImgPrompt)
	}
}

func TestNewProvider(t *testing.T) {
	for _, name := range []string{"openai", "gemini", "ollama"} {
		if _, err := NewProvider(name); err != nil {
			t.Errorf("NewProvider(%q) failed: %v", name, err)
		}
	}
	if _, err := NewProvider("anthropic"); err == nil {
		t.Error("Expected an error for an unsupported provider")
	}
}
