package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/21R01A7263/docGPT/pkg/markdown"
)

var (
	h1Style       = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("33"))
	h2Style       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	boldStyle     = lipgloss.NewStyle().Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// RenderMarkdown renders model output for a terminal.
func RenderMarkdown(text string) string {
	blocks := markdown.Render(text)
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, renderBlock(b))
	}
	return strings.Join(out, "\n\n")
}

func renderBlock(b markdown.Block) string {
	switch b.Kind {
	case markdown.KindHeading:
		return headingStyle(b.Level).Render(markdown.PlainText(b.Inline))
	case markdown.KindUnorderedList:
		lines := make([]string, len(b.Items))
		for i, item := range b.Items {
			lines[i] = "  • " + renderRuns(item)
		}
		return strings.Join(lines, "\n")
	case markdown.KindOrderedList:
		lines := make([]string, len(b.Items))
		for i, item := range b.Items {
			lines[i] = fmt.Sprintf("  %d. %s", i+1, renderRuns(item))
		}
		return strings.Join(lines, "\n")
	default:
		if b.Emphasized {
			return titleStyle.Render(markdown.PlainText(b.Inline))
		}
		return renderRuns(b.Inline)
	}
}

func renderRuns(runs []markdown.Run) string {
	var sb strings.Builder
	for _, r := range runs {
		if r.Kind == markdown.RunBold {
			sb.WriteString(boldStyle.Render(r.Text))
			continue
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}

func headingStyle(level int) lipgloss.Style {
	switch level {
	case 1:
		return h1Style
	case 2:
		return h2Style
	default:
		return boldStyle
	}
}
