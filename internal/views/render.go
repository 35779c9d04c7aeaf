package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type PaneData struct {
	Title   string
	Body    string
	Focused bool
}

type AppData struct {
	Header     string
	Panes      []PaneData
	Side       string
	Modal      string
	StatusLine string
	Footer     string
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusedStyle = panelStyle.BorderForeground(lipgloss.Color("12"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	modalStyle   = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("11")).Padding(1, 4)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderApp stacks the panes top to bottom with an optional side column. A
// modal replaces the panes until it is dismissed.
func RenderApp(data AppData) string {
	var body string
	if data.Modal != "" {
		body = modalStyle.Render(data.Modal)
	} else {
		stack := make([]string, 0, len(data.Panes))
		for _, pane := range data.Panes {
			style := panelStyle
			if pane.Focused {
				style = focusedStyle
			}
			content := titleStyle.Render(pane.Title)
			if pane.Body != "" {
				content += "\n" + pane.Body
			}
			stack = append(stack, style.Width(64).Render(content))
		}
		body = lipgloss.JoinVertical(lipgloss.Left, stack...)
		if strings.TrimSpace(data.Side) != "" {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, panelStyle.Width(52).Render(data.Side))
		}
	}

	status := statusStyle.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		body,
		status,
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
