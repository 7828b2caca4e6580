// Package style provides shared UI styling primitives including brand colors,
// icons and the score palette used for match listings.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
	Arrow   = "→"
)

// scoreBands maps lower score bounds to colors, highest first.
var scoreBands = []struct {
	min   float64
	color lipgloss.Color
}{
	{100, lipgloss.Color("#2B83BA")},
	{90, lipgloss.Color("#66C2A5")},
	{80, lipgloss.Color("#ABDDA4")},
	{70, lipgloss.Color("#E6F598")},
	{60, lipgloss.Color("#FEE08B")},
	{50, lipgloss.Color("#FDAE61")},
	{40, lipgloss.Color("#F46D43")},
}

// ScoreColor returns the color of a match score in percent.
// Scores below the lowest band are drawn in Slate.
func ScoreColor(score float64) lipgloss.Color {
	for _, b := range scoreBands {
		if score >= b.min {
			return b.color
		}
	}
	return Slate
}
