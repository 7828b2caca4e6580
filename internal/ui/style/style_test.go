package style_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/matchview/internal/ui/style"
)

func TestScoreColor(t *testing.T) {
	tests := []struct {
		score float64
		want  lipgloss.Color
	}{
		{100, lipgloss.Color("#2B83BA")},
		{95.5, lipgloss.Color("#66C2A5")},
		{40, lipgloss.Color("#F46D43")},
		{39.9, style.Slate},
		{0, style.Slate},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, style.ScoreColor(tt.score), "score %v", tt.score)
	}
}
