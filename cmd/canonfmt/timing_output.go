package main

import (
	"fmt"
	"io"
	"time"

	"canonfmt/internal/fmtpipeline"
)

func printStageTimings(out io.Writer, timings *fmtpipeline.Timings) {
	if out == nil || timings == nil {
		return
	}
	var printErr error
	if timings.Has(fmtpipeline.StageScan) {
		_, printErr = fmt.Fprintf(out, "scanned %.1f ms\n", toMillis(timings.Duration(fmtpipeline.StageScan)))
		if printErr != nil {
			panic(printErr)
		}
	}
	if timings.Has(fmtpipeline.StageParse) {
		_, printErr = fmt.Fprintf(out, "parsed %.1f ms\n", toMillis(timings.Duration(fmtpipeline.StageParse)))
		if printErr != nil {
			panic(printErr)
		}
	}
	if timings.Has(fmtpipeline.StageRender) {
		_, printErr = fmt.Fprintf(out, "rendered %.1f ms\n", toMillis(timings.Duration(fmtpipeline.StageRender)))
		if printErr != nil {
			panic(printErr)
		}
	}
	if timings.Has(fmtpipeline.StageWrite) {
		_, printErr = fmt.Fprintf(out, "wrote %.1f ms\n", toMillis(timings.Duration(fmtpipeline.StageWrite)))
		if printErr != nil {
			panic(printErr)
		}
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
