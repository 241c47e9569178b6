package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forgelab/assetforge/internal/providers"
)

func TestComplete(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Missing bearer token, got %q", got)
		}

		var payload struct {
			Model     string `json:"model"`
			MaxTokens int    `json:"max_tokens"`
			Messages  []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("Bad request body: %v", err)
		}
		if payload.Model != "gpt-4o" || payload.MaxTokens != 800 {
			t.Errorf("Unexpected payload: %+v", payload)
		}
		if len(payload.Messages) != 2 || payload.Messages[0].Role != "system" || payload.Messages[1].Role != "user" {
			t.Errorf("Expected system then user message, got %+v", payload.Messages)
		}

		fmt.Fprint(w, `{"choices":[{"message":{"content":"the plan"}}]}`)
	}))
	defer server.Close()

	provider := &OpenAI{BaseURL: server.URL}
	got, err := provider.Complete(context.Background(), providers.Config{
		Model:     "gpt-4o",
		MaxTokens: 800,
		System:    "You are a planner.",
		Prompt:    "plan something",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "the plan" {
		t.Errorf("Expected 'the plan', got %q", got)
	}
}

func TestCompleteMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	provider := New()
	if _, err := provider.Complete(context.Background(), providers.Config{Prompt: "x"}); err == nil {
		t.Error("Expected an error without an API key")
	}
}

func TestCompleteAPIError(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := &OpenAI{BaseURL: server.URL}
	if _, err := provider.Complete(context.Background(), providers.Config{Prompt: "x"}); err == nil {
		t.Error("Expected an error for a non-200 response")
	}
}

func TestCompleteNoChoices(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer server.Close()

	provider := &OpenAI{BaseURL: server.URL}
	if _, err := provider.Complete(context.Background(), providers.Config{Prompt: "x"}); err == nil {
		t.Error("Expected an error when no choices are returned")
	}
}
