package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/forgelab/assetforge/internal/providers"
)

// OpenAI is a provider for OpenAI
type OpenAI struct {
	// BaseURL overrides the API host in tests; empty means the real API.
	BaseURL string
}

// New returns a new OpenAI provider
func New() *OpenAI {
	return &OpenAI{}
}

// Complete runs a chat completion for the given prompt using OpenAI
func (o *OpenAI) Complete(ctx context.Context, config providers.Config) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	base := o.BaseURL
	if base == "" {
		base = "https://api.openai.com"
	}
	url := base + "/v1/chat/completions"

	messages := []map[string]string{}
	if config.System != "" {
		messages = append(messages, map[string]string{
			"role":    "system",
			"content": config.System,
		})
	}
	messages = append(messages, map[string]string{
		"role":    "user",
		"content": config.Prompt,
	})

	payload := map[string]interface{}{
		"model":       config.Model,
		"messages":    messages,
		"temperature": config.Temperature,
	}
	if config.MaxTokens > 0 {
		payload["max_tokens"] = config.MaxTokens
	}

	requestBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from OpenAI")
	}

	return response.Choices[0].Message.Content, nil
}
