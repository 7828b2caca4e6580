// Package textdiagram renders match diagrams as plain text.
package textdiagram

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// Extension is the file extension of rendered diagrams.
	Extension = ".txt"

	barWidth = 40
)

// Renderer implements ports.DiagramRenderer with a stacked per-family summary.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Extension returns the file extension of rendered artifacts.
func (r *Renderer) Extension() string {
	return Extension
}

type familyGroup struct {
	id      int
	name    string
	samples []domain.SampleMatch
}

// Render writes one block per matched family, each listing its samples with a bar
// proportional to the matched share of the reference.
func (r *Renderer) Render(ctx context.Context, w io.Writer, result *domain.MatchingResult, filter domain.DiagramFilter) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	ref := result.Reference
	fmt.Fprintf(bw, "reference %s (sample %d, %d functions)\n", displayName(ref.Filename, ref.SHA256), ref.ID, ref.NumFunctions)
	switch filter.Dimension {
	case domain.DiagramFamily:
		fmt.Fprintf(bw, "restricted to family %d\n", filter.ID)
	case domain.DiagramSample:
		fmt.Fprintf(bw, "restricted to sample %d\n", filter.ID)
	}

	groups := groupByFamily(result.SampleMatches)
	if len(groups) == 0 {
		fmt.Fprintln(bw, "\nno matches")
	}
	for _, g := range groups {
		fmt.Fprintf(bw, "\n%s (family %d)\n", displayName(g.name, "unnamed"), g.id)
		for _, s := range g.samples {
			fmt.Fprintf(bw, "  %8d %-12s %s %6.2f%%\n", s.SampleID, truncate(s.Version, 12), bar(s.MatchedPercent), s.MatchedPercent)
		}
	}

	if err := bw.Flush(); err != nil {
		return zerr.Wrap(err, "failed to write diagram")
	}
	return nil
}

func groupByFamily(matches []domain.SampleMatch) []*familyGroup {
	index := make(map[int]*familyGroup)
	var groups []*familyGroup
	for _, m := range matches {
		g, ok := index[m.FamilyID]
		if !ok {
			g = &familyGroup{id: m.FamilyID, name: m.Family}
			index[m.FamilyID] = g
			groups = append(groups, g)
		}
		g.samples = append(g.samples, m)
	}
	return groups
}

func bar(percent float64) string {
	filled := int(percent / 100 * barWidth)
	filled = max(0, min(filled, barWidth))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

func displayName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
