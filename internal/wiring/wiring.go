// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/matchview/internal/adapters/config"
	_ "go.trai.ch/matchview/internal/adapters/logger"
	_ "go.trai.ch/matchview/internal/adapters/telemetry"
	_ "go.trai.ch/matchview/internal/adapters/textdiagram"
	// Register app nodes.
	_ "go.trai.ch/matchview/internal/app"
)
