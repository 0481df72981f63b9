package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/chicken-invaders/internal/core"
)

func fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// colorStyles maps cell roles to lipgloss styles (ANSI 256-color codes).
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),

	core.ColorShip:         fg("10").Bold(true),
	core.ColorShipShielded: fg("14").Bold(true),

	core.ColorChicken:      fg("11"),
	core.ColorChickenAlt:   fg("3"),
	core.ColorBoss:         fg("9").Bold(true),
	core.ColorBossWounded:  fg("208").Bold(true),

	core.ColorBullet:      fg("10"),
	core.ColorHeavyBullet: fg("13").Bold(true),
	core.ColorEgg:         fg("15"),

	core.ColorExplosion: fg("208"),
	core.ColorSmoke:     fg("245"),

	core.ColorSpreadShot: fg("12").Bold(true),
	core.ColorRapidFire:  fg("11").Bold(true),
	core.ColorShield:     fg("14").Bold(true),
	core.ColorDamageUp:   fg("13").Bold(true),

	core.ColorLives:  fg("9"),
	core.ColorStatus: fg("14"),
	core.ColorTitle:  fg("11").Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
