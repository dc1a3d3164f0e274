package home

import (
	"charm.land/lipgloss/v2"

	"github.com/nmehta/dermascan/internal/ui/theme"
)

var bannerLines = []string{
	` ____                         ____                  `,
	`|  _ \  ___ _ __ _ __ ___    / ___|  ___ __ _ _ __  `,
	`| | | |/ _ \ '__| '_ ' _ \   \___ \ / __/ _' | '_ \ `,
	`| |_| |  __/ |  | | | | | |   ___) | (_| (_| | | | |`,
	`|____/ \___|_|  |_| |_| |_|  |____/ \___\__,_|_| |_|`,
}

// renderBanner renders the title banner centered in the given width.
func renderBanner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	out := ""
	for _, line := range bannerLines {
		out += lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)) + "\n"
	}
	out += lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render("skin lesion screening assistant"))
	return out
}
