package ports

import (
	"context"
	"io"

	"go.trai.ch/matchview/internal/core/domain"
)

//go:generate mockgen -source=diagram.go -destination=mocks/mock_diagram.go -package=mocks

// DiagramRenderer draws a match diagram for a matching result.
type DiagramRenderer interface {
	// Extension returns the file extension of rendered artifacts, including the dot.
	Extension() string
	// Render writes the diagram for the filtered result to w.
	Render(ctx context.Context, w io.Writer, result *domain.MatchingResult, filter domain.DiagramFilter) error
}

// DiagramCache memoizes rendered diagrams on disk.
type DiagramCache interface {
	// GetOrRender returns the path of the artifact for the job and filter, rendering it if absent.
	GetOrRender(ctx context.Context, jobID string, result *domain.MatchingResult, filter domain.DiagramFilter) (string, error)
}
