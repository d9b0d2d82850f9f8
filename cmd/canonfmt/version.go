package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"canonfmt/internal/version"
)

const versionTagline = "comments stay where you wrote them"

// buildDetails is rendered both as the text banner and as the json payload.
type buildDetails struct {
	Tool       string   `json:"tool"`
	Version    string   `json:"version"`
	Tagline    string   `json:"tagline"`
	GitCommit  string   `json:"git_commit,omitempty"`
	GitMessage string   `json:"git_message,omitempty"`
	BuildDate  string   `json:"build_date,omitempty"`
	Dialects   []string `json:"dialects"`
}

var (
	versionFormat string
	versionFull   bool
)

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "text", "output format (text|json)")
	versionCmd.Flags().BoolVar(&versionFull, "full", false, "include git and build metadata")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show canonfmt build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		details := collectBuildDetails()
		switch strings.ToLower(versionFormat) {
		case "text":
			colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
			if err != nil {
				return err
			}
			useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
			renderVersionText(cmd.OutOrStdout(), details, versionFull, useColor)
			return nil
		case "json":
			return renderVersionJSON(cmd.OutOrStdout(), details)
		default:
			return fmt.Errorf("unsupported format %q (must be text or json)", versionFormat)
		}
	},
}

func collectBuildDetails() buildDetails {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	return buildDetails{
		Tool:       "canonfmt",
		Version:    v,
		Tagline:    versionTagline,
		GitCommit:  strings.TrimSpace(version.GitCommit),
		GitMessage: strings.TrimSpace(version.GitMessage),
		BuildDate:  strings.TrimSpace(version.BuildDate),
		Dialects:   []string{"jsonc", "yaml"},
	}
}

func renderVersionText(out io.Writer, details buildDetails, full, useColor bool) {
	banner := details.Version
	if useColor {
		if c := version.Colored(); c != "" {
			banner = c
		}
	}
	fmt.Fprintf(out, "canonfmt %s: %s\n", banner, details.Tagline)
	fmt.Fprintf(out, "dialects: %s\n", strings.Join(details.Dialects, ", "))
	if !full {
		fmt.Fprintln(out, "set --full for the build trivia")
		return
	}
	fmt.Fprintf(out, "commit:  %s\n", valueOrUnknown(details.GitCommit))
	fmt.Fprintf(out, "message: %s\n", valueOrUnknown(details.GitMessage))
	fmt.Fprintf(out, "built:   %s\n", valueOrUnknown(details.BuildDate))
}

func renderVersionJSON(out io.Writer, details buildDetails) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(details)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
