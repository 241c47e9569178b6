// Package pipeline implements the three-stage text pipeline: plan
// generation, numbered outline generation, and per-item explanation plus
// image prompt generation. Each stage reads the previous stage's JSON file
// and writes its own.
package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Item is one entry of the numbered outline. The id is a dotted hierarchy
// string ("1", "1.2", "1.2.3"); its dot count is the rendering depth.
type Item struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Explanation string `json:"explanation,omitempty"`
	ImgPrompt   string `json:"img_prompt,omitempty"`
}

// Depth returns the nesting depth implied by the item's dotted id.
func (i Item) Depth() int {
	return strings.Count(i.ID, ".")
}

// Document is the JSON carried between pipeline stages.
type Document struct {
	ProjectName string `json:"project_name"`
	Plan        string `json:"plan"`
	Items       []Item `json:"numbered_list,omitempty"`
}

// Save writes the document as indented JSON.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Load reads a document written by a previous stage.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &doc, nil
}

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeName turns a project name into a safe filename stem: invalid
// filename characters are dropped, spaces become underscores, ampersands
// become "and", and the result is lowercased.
func SanitizeName(name string) string {
	s := invalidFilenameChars.ReplaceAllString(name, "")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "&", "and")
	return strings.ToLower(s)
}
