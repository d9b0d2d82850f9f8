package driver

import (
	"fmt"

	"canonfmt/internal/fmtcache"
	"canonfmt/internal/fmtpipeline"
	"canonfmt/internal/jsonc"
	"canonfmt/internal/yamldoc"
)

// Dialect names a supported comment-preserving format.
type Dialect string

const (
	// DialectJSONC is JSON with // comments.
	DialectJSONC Dialect = "jsonc"
	// DialectYAML is YAML with # comments.
	DialectYAML Dialect = "yaml"
)

// Input is one file queued for formatting.
type Input struct {
	Path    string
	Dialect Dialect
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Dialect   Dialect
	Changed   bool
	Skipped   bool // попадание в кеш: содержимое уже каноническое
	Err       error
	Warnings  []string
	Formatted []byte
}

// Options configures a formatting run. When Check is true, files are not
// modified; Changed indicates whether formatting would update the file.
// When Stdout is true, formatted content is returned in the results without
// touching files on disk.
type Options struct {
	Check    bool
	Stdout   bool
	NoCache  bool
	Jobs     int
	Cache    *fmtcache.DiskCache
	Progress fmtpipeline.ProgressSink
	Timings  *fmtpipeline.Timings
}

// formatContent runs the dialect pipeline over in-memory content.
func formatContent(dialect Dialect, content []byte) ([]byte, []string, error) {
	switch dialect {
	case DialectJSONC:
		return jsonc.Format(content)
	case DialectYAML:
		return yamldoc.Format(content)
	default:
		return nil, nil, fmt.Errorf("unknown dialect %q", dialect)
	}
}
