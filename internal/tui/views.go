package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/snapfeed/internal/tui/styles"
)

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}

func (m Model) renderTitle() string {
	total := m.Grid.Total()
	switch total {
	case 0:
		return "snapfeed"
	case 1:
		return "snapfeed · 1 image"
	default:
		return fmt.Sprintf("snapfeed · %d images", total)
	}
}

func (m Model) renderFooter() string {
	var left string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.BannerStyle.Render(m.StatusMsg)
	case m.Loading:
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	case m.StatusMsg != "":
		left = styles.SuccessStyle.Render(m.StatusMsg)
	case m.ErrorMessage != "":
		left = styles.ErrorStyle.Render(m.ErrorMessage) + styles.DimStyle.Render(" · r to retry")
	}

	right := styles.HelpKeyStyle.Render("?") + styles.HelpDescStyle.Render(" help")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderHelp() string {
	var columns []string
	for _, section := range helpSections() {
		lines := []string{styles.TitleStyle.Render(section.Title)}
		for _, b := range section.Bindings {
			h := b.Help()
			lines = append(lines, fmt.Sprintf("  %s %s",
				styles.HelpKeyStyle.Render(fmt.Sprintf("%-10s", h.Key)),
				styles.HelpDescStyle.Render(h.Desc)))
		}
		columns = append(columns, strings.Join(lines, "\n"))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, columns[0], "    ", columns[1])
	body += "\n\n" + styles.DimStyle.Render("Press any key to return...")

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(body))
}
