package tui

import "github.com/charmbracelet/lipgloss"

// bannerStyle uses the same adaptive color scheme as the header for consistency.
var bannerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#EEEEEE"}).
	Bold(true)

// Banner is the ASCII art shown at the top of the landing page. It spells
// "CODEXPLAIN".
const Banner = `  ___ ___  ___  _____  _____ _      _   ___ _  _
 / __/ _ \|   \| __\ \/ / _ \ |    /_\ |_ _| \| |
| (_| (_) | |) | _| >  <|  _/ |__ / _ \ | || .` + "`" + ` |
 \___\___/|___/|___/_/\_\_| |____/_/ \_\___|_|\_|`

// bannerMinWidth is the narrowest terminal the banner fits in.
const bannerMinWidth = 50

// renderBanner returns the styled banner, or just the name when the
// terminal is too narrow for the art.
func renderBanner(width int, name string) string {
	if width < bannerMinWidth {
		return bannerStyle.Render(name)
	}
	return bannerStyle.Render(Banner)
}
