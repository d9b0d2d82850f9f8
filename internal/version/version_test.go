package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersionDefaults(t *testing.T) {
	if Version == "" {
		t.Fatal("Version should have a default value")
	}
	if GitCommit != "" || GitMessage != "" || BuildDate != "" {
		t.Fatal("git and build metadata must stay empty until ldflags set them")
	}
}

func TestColoredReassemblesVersion(t *testing.T) {
	prevNoColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prevNoColor }()

	prevVersion := Version
	defer func() { Version = prevVersion }()

	versions := []string{
		"0.1.0-dev",
		"1.2.3",
		"2.0.0+build.5",
		"1.0.0-beta.1",
		"not-semver",
		"1.2",
	}
	for _, v := range versions {
		Version = v
		if got := Colored(); got != v {
			t.Fatalf("Colored() with Version=%q = %q, want the plain version back", v, got)
		}
	}
}
