package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/qanda/internal/models"
)

// formatResult formats a generation result as markdown
func formatResult(result *models.GenerationResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Q&A: %s\n\n", result.Topic))
	sb.WriteString(fmt.Sprintf("**ID:** %s\n", result.ID))
	sb.WriteString(fmt.Sprintf("**Difficulty:** %s\n", result.Difficulty))
	sb.WriteString(fmt.Sprintf("**Created:** %s\n\n", result.CreatedAt.Format(time.RFC3339)))

	for i, qa := range result.QAList {
		sb.WriteString(fmt.Sprintf("### %d. %s\n%s\n\n", i+1, qa.Question, qa.Answer))
	}

	if len(result.Sources) > 0 {
		sb.WriteString("## Sources\n\n")
		for _, src := range result.Sources {
			sb.WriteString(fmt.Sprintf("- [%s](%s)", src.Title, src.URI))
			if src.Summary != "" {
				sb.WriteString(": " + src.Summary)
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// formatHistory formats stored results as a markdown list
func formatHistory(results []*models.GenerationResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Q&A History (%d results)\n\n", len(results)))

	if len(results) == 0 {
		sb.WriteString("No results found.\n")
		return sb.String()
	}

	for _, r := range results {
		sb.WriteString(fmt.Sprintf("- **%s** (%s, %d questions, %d sources) `%s` %s\n",
			r.Topic, r.Difficulty, len(r.QAList), len(r.Sources), r.ID, r.CreatedAt.Format(time.RFC3339)))
	}

	return sb.String()
}
