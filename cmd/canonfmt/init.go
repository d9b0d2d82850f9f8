package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"canonfmt/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a starter canonfmt.toml manifest",
	Long: `Create a canonfmt.toml manifest in the given directory (or the current
directory when [path] is omitted). The manifest pins which extensions map to
which dialect and which paths formatting should skip. If a non-existing path
is provided, the directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit creates a canonfmt.toml manifest at the specified target path (or
// the current working directory when no argument or "." is provided).
//
// It resolves the target path, creates the directory if it does not exist,
// and refuses to initialize if canonfmt.toml already exists. On success it
// writes the manifest and prints the created file; it returns an error for
// any filesystem failure.
func runInit(cmd *cobra.Command, args []string) error {
	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		// treat as path or name relative to cwd
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Create manifest file if not exists
	manifestPath := filepath.Join(target, config.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("already initialized: %s exists", manifestPath)
	}

	if err := os.WriteFile(manifestPath, []byte(buildDefaultManifest()), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized canonfmt manifest in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - %s\n", config.ManifestName)
	return nil
}

// buildDefaultManifest returns the starter TOML manifest, matching the
// defaults used when no manifest is found.
func buildDefaultManifest() string {
	return `# canonfmt manifest
[format]
jsonc_extensions = [".json", ".jsonc"]
yaml_extensions = [".yaml", ".yml"]
exclude = ["vendor/**", "node_modules/**"]

[cache]
enabled = true
`
}
