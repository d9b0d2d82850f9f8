package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"canonfmt/internal/config"
	"canonfmt/internal/driver"
	"canonfmt/internal/fmtcache"
	"canonfmt/internal/fmtpipeline"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format JSONC and YAML files in place",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted content to stdout instead of rewriting files")
	fmtCmd.Flags().Bool("watch", false, "keep running and reformat files as they change")
	fmtCmd.Flags().Int("jobs", 0, "number of files formatted in parallel (0 = number of CPUs)")
	fmtCmd.Flags().Bool("no-cache", false, "ignore the formatted-content cache")
	fmtCmd.Flags().String("ui", "auto", "interactive progress display (auto|on|off)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}

	watchMode, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	if watchMode && (check || writeToStdout) {
		return fmt.Errorf("fmt: --watch rewrites files in place and cannot be combined with --check or --stdout")
	}

	switch outputFormat {
	case "text", "json":
		// supported
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	if conflict := uiConflict(writeToStdout, watchMode, outputFormat); mode == uiModeOn && conflict != "" {
		return fmt.Errorf("fmt: --ui on cannot be combined with %s", conflict)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))

	cfg, _, err := config.Discover(".")
	if err != nil {
		return err
	}

	opts := driver.Options{
		Check:   check,
		Stdout:  writeToStdout,
		NoCache: noCache || !cfg.Cache.Enabled,
		Jobs:    jobs,
	}
	if !opts.NoCache {
		cache, cacheErr := fmtcache.Open("canonfmt")
		if cacheErr != nil {
			if !quiet {
				fmt.Fprintf(os.Stderr, "fmt: cache disabled: %v\n", cacheErr)
			}
			opts.NoCache = true
		} else {
			opts.Cache = cache
		}
	}

	if watchMode {
		return runFmtWatch(cmd.Context(), args, cfg, opts, quiet, useColor)
	}

	inputs, err := driver.CollectFiles(cmd.Context(), args, cfg)
	if err != nil {
		return err
	}

	var timings *fmtpipeline.Timings
	if showTimings {
		timings = &fmtpipeline.Timings{}
		opts.Timings = timings
	}

	var formatResults []driver.FormatResult
	if shouldUseTUI(mode, quiet) && uiConflict(writeToStdout, watchMode, outputFormat) == "" {
		formatResults, err = runFmtWithUI(cmd.Context(), "canonfmt fmt", inputs, opts)
	} else {
		formatResults, err = driver.FormatPaths(cmd.Context(), inputs, opts)
	}
	if err != nil {
		return err
	}

	var hasErrors bool
	var hasChanges bool

	switch outputFormat {
	case "text":
		if writeToStdout {
			renderFmtStdout(os.Stdout, os.Stderr, formatResults)
		} else {
			renderFmtText(os.Stdout, os.Stderr, formatResults, check, quiet, &hasChanges)
		}
		hasErrors = renderFmtFailures(os.Stderr, formatResults, useColor)
	case "json":
		if err := renderFmtJSON(os.Stdout, formatResults, check); err != nil {
			return err
		}
		for _, res := range formatResults {
			if res.Err != nil {
				hasErrors = true
			}
			if res.Changed {
				hasChanges = true
			}
		}
	}

	if timings != nil {
		printStageTimings(os.Stdout, timings)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

func renderFmtStdout(out, errOut io.Writer, results []driver.FormatResult) {
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		for _, w := range res.Warnings {
			fmt.Fprintf(errOut, "fmt: %s: warning: %s\n", res.Path, w)
		}
		_, _ = out.Write(res.Formatted)
	}
}

func renderFmtText(out, errOut io.Writer, results []driver.FormatResult, check, quiet bool, hasChanges *bool) {
	for _, res := range results {
		if res.Err != nil {
			continue
		}

		for _, w := range res.Warnings {
			fmt.Fprintf(errOut, "fmt: %s: warning: %s\n", res.Path, w)
		}

		if check {
			if res.Changed {
				*hasChanges = true
				if !quiet {
					_, printErr := fmt.Fprintln(out, res.Path)
					if printErr != nil {
						panic(printErr)
					}
				}
			}
			continue
		}

		if res.Changed && !quiet {
			_, printErr := fmt.Fprintf(out, "reformatted %s\n", res.Path)
			if printErr != nil {
				panic(printErr)
			}
		}
	}
}

// renderFmtFailures prints the accumulated failure list once, after every file
// had its chance, and reports whether anything failed.
func renderFmtFailures(out io.Writer, results []driver.FormatResult, useColor bool) bool {
	var failed []driver.FormatResult
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	if len(failed) == 0 {
		return false
	}

	headline := "canonfmt: failed to format:"
	if useColor {
		headline = color.New(color.FgRed, color.Bold).Sprint(headline)
	}
	fmt.Fprintln(out, headline)
	for _, res := range failed {
		fmt.Fprintf(out, "  %s: %v\n", res.Path, res.Err)
	}
	return true
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string   `json:"path"`
		Dialect  string   `json:"dialect"`
		Changed  bool     `json:"changed"`
		Skipped  bool     `json:"skipped,omitempty"`
		Warnings []string `json:"warnings,omitempty"`
		Error    string   `json:"error,omitempty"`
		CheckRun bool     `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{
			Path:     res.Path,
			Dialect:  string(res.Dialect),
			Changed:  res.Changed,
			Skipped:  res.Skipped,
			Warnings: res.Warnings,
			CheckRun: check,
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
