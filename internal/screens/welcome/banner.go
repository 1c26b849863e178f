package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vectortutor/internal/ui/theme"
)

const bannerArt = `
 ██╗   ██╗███████╗ ██████╗████████╗ ██████╗ ██████╗
 ██║   ██║██╔════╝██╔════╝╚══██╔══╝██╔═══██╗██╔══██╗
 ██║   ██║█████╗  ██║        ██║   ██║   ██║██████╔╝
 ╚██╗ ██╔╝██╔══╝  ██║        ██║   ██║   ██║██╔══██╗
  ╚████╔╝ ███████╗╚██████╗   ██║   ╚██████╔╝██║  ██║
   ╚═══╝  ╚══════╝ ╚═════╝   ╚═╝    ╚═════╝ ╚═╝  ╚═╝

 ████████╗██╗   ██╗████████╗ ██████╗ ██████╗
 ╚══██╔══╝██║   ██║╚══██╔══╝██╔═══██╗██╔══██╗
    ██║   ██║   ██║   ██║   ██║   ██║██████╔╝
    ██║   ██║   ██║   ██║   ██║   ██║██╔══██╗
    ██║   ╚██████╔╝   ██║   ╚██████╔╝██║  ██║
    ╚═╝    ╚═════╝    ╚═╝    ╚═════╝ ╚═╝  ╚═╝`

const bannerCompact = "V E C T O R T U T O R"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 54

// RenderBanner returns the product banner styled in the primary color.
// Uses a compact fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
