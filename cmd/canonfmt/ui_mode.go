package main

import (
	"fmt"
	"os"
	"strings"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// uiConflict names the first fmt flag that rules out the interactive display.
// The empty string means the display can run.
func uiConflict(writeToStdout, watchMode bool, outputFormat string) string {
	switch {
	case writeToStdout:
		return "--stdout"
	case watchMode:
		return "--watch"
	case outputFormat != "text":
		return outputFormat + " output"
	}
	return ""
}

// shouldUseTUI resolves auto mode: a terminal on stdout enables the display
// unless --quiet asked for silence. Explicit on and off always win.
func shouldUseTUI(mode uiMode, quiet bool) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return !quiet && isTerminal(os.Stdout)
	}
}
