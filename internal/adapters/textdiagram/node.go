package textdiagram

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/matchview/internal/core/ports"
)

// NodeID is the unique identifier for the diagram renderer Graft node.
const NodeID graft.ID = "adapter.diagram_renderer"

func init() {
	graft.Register(graft.Node[ports.DiagramRenderer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DiagramRenderer, error) {
			return NewRenderer(), nil
		},
	})
}
