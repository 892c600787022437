package tui

import (
	"strings"

	"roster-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

const (
	modalMaxW     = 72
	modalMinStory = 3
)

func modalBoxWidth(width int) int {
	return max(24, min(modalMaxW, width-4))
}

// modalBodyWidth is the text width inside the box (border + padding removed).
func modalBodyWidth(width int) int {
	return modalBoxWidth(width) - 2 - 4
}

func renderModalBox(width int, title string, content string) string {
	box := lipgloss.NewStyle().
		Width(modalBoxWidth(width)-2).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Foreground(colorSurfaceFg)
	head := lipgloss.NewStyle().Bold(true).Render(title)
	return box.Render(head + "\n\n" + content)
}

func renderDetailBody(p model.Person, story string, bodyW int, gs glyphSet) string {
	role := lipgloss.NewStyle().Foreground(colorCardMetaFg).Render(truncateToWidth(p.Role, bodyW, gs))
	image := styleMuted().Render(truncateToWidth("image: "+p.Image, bodyW, gs))
	help := styleMuted().Render("esc/x: close   " + gs.scroll() + ": scroll")
	return strings.Join([]string{role, image, "", story, "", help}, "\n")
}

// placeOverlay centres box on a width x height screen and reports where it
// landed, for mapping clicks.
func placeOverlay(width, height int, box string) (string, zone) {
	bw, bh := lipgloss.Width(box), lipgloss.Height(box)
	out := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
	return out, zone{x: max(0, (width-bw)/2), y: max(0, (height-bh)/2), w: bw, h: bh}
}
