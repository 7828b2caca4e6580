// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how results and logs are rendered.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModePretty renders colored text for an interactive terminal.
	ModePretty
	// ModePlain renders uncolored text, for pipes and CI logs.
	ModePlain
	// ModeJSON renders machine readable JSON.
	ModeJSON
)

// String returns the flag value of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModePretty:
		return "pretty"
	case ModePlain:
		return "plain"
	case ModeJSON:
		return "json"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the recommended output mode based on the environment.
// It checks whether stdout is a TTY and whether CI environment variables are set.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) OutputMode {
	isCI := ci == "true" || ci == "1"
	if !isTTY || isCI {
		return ModePlain
	}
	return ModePretty
}

// ResolveMode applies a user override to the detected mode.
// userFlag is one of "auto", "pretty", "plain", "ci", "json" or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "pretty":
		return ModePretty
	case "plain", "ci":
		return ModePlain
	case "json":
		return ModeJSON
	default:
		return autoDetected
	}
}
