package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/finfluency/internal/ui/theme"
)

const bannerArt = `
 ███████╗██╗███╗   ██╗ █████╗ ███╗   ██╗ ██████╗███████╗
 ██╔════╝██║████╗  ██║██╔══██╗████╗  ██║██╔════╝██╔════╝
 █████╗  ██║██╔██╗ ██║███████║██╔██╗ ██║██║     █████╗
 ██╔══╝  ██║██║╚██╗██║██╔══██║██║╚██╗██║██║     ██╔══╝
 ██║     ██║██║ ╚████║██║  ██║██║ ╚████║╚██████╗███████╗
 ╚═╝     ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝╚══════╝
                 F  L  U  E  N  C  Y`

const bannerCompact = "F I N A N C E   F L U E N C Y"

// RenderBanner returns the banner styled in the primary color, or a
// one-line version for terminals narrower than 60 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 60 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
