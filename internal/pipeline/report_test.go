package pipeline

import (
	"strings"
	"testing"
)

func TestDashRule(t *testing.T) {
	tests := []struct {
		depth  int
		dashes int
	}{
		{0, 40},
		{1, 20},
		{2, 10},
		{3, 5},
		{4, 5},
	}

	for _, tt := range tests {
		got := DashRule(tt.depth)
		if got != strings.Repeat("-", tt.dashes) {
			t.Errorf("Depth %d: expected %d dashes, got %q", tt.depth, tt.dashes, got)
		}
	}
}

func TestReport(t *testing.T) {
	doc := &Document{
		ProjectName: "Drone Project",
		Plan:        "Build a drone.",
		Items: []Item{
			{ID: "1", Title: "Frame", Explanation: "The chassis.", ImgPrompt: "A drone frame."},
			{ID: "1.1", Title: "Arms", Explanation: "Motor arms.", ImgPrompt: "Carbon arms."},
		},
	}

	report := Report(doc)

	if !strings.HasPrefix(report, "PLAN\nBuild a drone.\n\n") {
		t.Errorf("Report does not start with the plan section:\n%s", report)
	}
	if !strings.Contains(report, strings.Repeat("-", 40)+"\n1. Frame\n") {
		t.Errorf("Top-level item not rendered under a 40-dash rule:\n%s", report)
	}
	if !strings.Contains(report, strings.Repeat("-", 20)+"\n1.1. Arms\n") {
		t.Errorf("Nested item not rendered under a 20-dash rule:\n%s", report)
	}
	if !strings.Contains(report, "Explanation: The chassis.\n") {
		t.Errorf("Explanation line missing:\n%s", report)
	}
	if !strings.Contains(report, "Image Prompt: Carbon arms.\n") {
		t.Errorf("Image prompt line missing:\n%s", report)
	}
}
