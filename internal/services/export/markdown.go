package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ternarybob/qanda/internal/models"
)

var (
	whitespaceRun     = regexp.MustCompile(`\s+`)
	orderedListMarker = regexp.MustCompile(`^(\d+)([.)])`)
)

// markdownEscaper escapes characters goldmark would treat as inline syntax
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
	`|`, `\|`,
	`~`, `\~`,
)

// escapeInline escapes s for use inside a markdown line. Line breaks collapse to spaces.
func escapeInline(s string) string {
	s = whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
	s = markdownEscaper.Replace(s)
	// A leading list marker would start a block
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		s = `\` + s
	}
	return orderedListMarker.ReplaceAllString(s, `$1\$2`)
}

// autolink renders uri as a markdown autolink when it is safe to do so
func autolink(uri string) string {
	if strings.ContainsAny(uri, " <>\t\n") {
		return escapeInline(uri)
	}
	return "<" + uri + ">"
}

// RenderMarkdown lays out result as a markdown document: title, difficulty,
// numbered question/answer sections and the source list.
func RenderMarkdown(result *models.GenerationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Q&A: %s\n\n", escapeInline(result.Topic))
	fmt.Fprintf(&b, "**Difficulty:** %s\n\n", capitalize(string(result.Difficulty)))

	for i, qa := range result.QAList {
		fmt.Fprintf(&b, "## %d\\. %s\n\n", i+1, escapeInline(qa.Question))
		fmt.Fprintf(&b, "%s\n\n", escapeInline(qa.Answer))
	}

	if len(result.Sources) > 0 {
		b.WriteString("---\n\n## Sources\n\n")
		for _, src := range result.Sources {
			fmt.Fprintf(&b, "- **%s**\\\n  %s", escapeInline(src.Title), autolink(src.URI))
			if src.Summary != "" {
				fmt.Fprintf(&b, "\\\n  *%s*", escapeInline(src.Summary))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
