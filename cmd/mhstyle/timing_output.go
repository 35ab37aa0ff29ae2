package main

import (
	"fmt"
	"io"
	"time"

	"github.com/CerenB/miss-hit/internal/driver"
)

func printTimings(out io.Writer, timings driver.Timings) {
	if out == nil {
		return
	}
	if timings.Has(driver.StageLoad) {
		fmt.Fprintf(out, "loaded %.1f ms\n", toMillis(timings.Duration(driver.StageLoad)))
	}
	if timings.Has(driver.StageAnalyze) {
		fmt.Fprintf(out, "analyzed %.1f ms\n", toMillis(timings.Duration(driver.StageAnalyze)))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
