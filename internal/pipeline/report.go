package pipeline

import (
	"fmt"
	"strings"
)

// DashRule returns the separator line for an outline depth. Top-level topics
// get the widest rule, deeper levels progressively narrower ones.
func DashRule(depth int) string {
	switch depth {
	case 0:
		return strings.Repeat("-", 40)
	case 1:
		return strings.Repeat("-", 20)
	case 2:
		return strings.Repeat("-", 10)
	default:
		return strings.Repeat("-", 5)
	}
}

// Report renders the document as an indented plain-text report: the plan
// followed by every item under a depth-scaled dash rule.
func Report(doc *Document) string {
	var b strings.Builder

	b.WriteString("PLAN\n")
	b.WriteString(doc.Plan)
	b.WriteString("\n\n")

	for _, item := range doc.Items {
		b.WriteString(DashRule(item.Depth()))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s. %s\n", item.ID, item.Title)
		fmt.Fprintf(&b, "Explanation: %s\n", item.Explanation)
		fmt.Fprintf(&b, "Image Prompt: %s\n", item.ImgPrompt)
		b.WriteString("\n")
	}

	return b.String()
}
