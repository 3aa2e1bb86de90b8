package color

import "github.com/charmbracelet/lipgloss"

var (
	Cyan   = lipgloss.Color("14") // Bright cyan
	Green  = lipgloss.Color("10") // Bright green
	Red    = lipgloss.Color("9")  // Bright red
	Yellow = lipgloss.Color("11") // Bright yellow

	DarkGreen = lipgloss.Color("2")   // Dark green
	DarkRed   = lipgloss.Color("1")   // Dark red
	LightGray = lipgloss.Color("252") // Light gray
	DarkGray  = lipgloss.Color("240") // Dark gray
)
