package ui

import "github.com/charmbracelet/lipgloss"

// Category colors, a warm orange-based palette so the ticker reads like
// a broadcast chyron rather than a log tail.
var categoryColors = map[string]lipgloss.Color{
	"Politics":   lipgloss.Color("#FFA500"), // flagship orange
	"Technology": lipgloss.Color("#FFD700"), // gold
	"Business":   lipgloss.Color("#FF8C00"), // dark orange
	"World":      lipgloss.Color("#FFC850"), // light amber
	"Science":    lipgloss.Color("#FFAB3D"), // tangerine
	"Sports":     lipgloss.Color("#FFB84D"), // butterscotch
	"Arts":       lipgloss.Color("#FFA07A"), // light salmon
	"Health":     lipgloss.Color("#FFE4B5"), // moccasin
	"Opinion":    lipgloss.Color("#F0E68C"), // khaki
	"HomePage":   lipgloss.Color("#FFA500"),
	"Default":    lipgloss.Color("#FFA500"),
}

// Compact category tags prefixed to each headline.
var categoryTags = map[string]string{
	"Politics":   "[POL]",
	"Technology": "[TECH]",
	"Business":   "[BIZ]",
	"World":      "[WORLD]",
	"Science":    "[SCI]",
	"Sports":     "[SPORT]",
	"Arts":       "[ARTS]",
	"Health":     "[HEALTH]",
	"Opinion":    "[OP]",
	"HomePage":   "[TOP]",
}

const pauseIcon = "⏸"

var (
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	pauseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f85149")).Bold(true)
	descStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#c9d1d9")).Italic(true)
)

func categoryColor(category string) lipgloss.Color {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return categoryColors["Default"]
}
