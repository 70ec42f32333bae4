package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jrh3k5/multichain-txn-export/internal/history"
)

func writeSummary(out io.Writer, results []history.ChainResult) {
	_, _ = fmt.Fprintln(out, "Export summary:")
	for _, result := range results {
		switch result.Status {
		case history.StatusSucceeded:
			_, _ = fmt.Fprintf(out, "  %s %s: %d record(s) written to %s\n",
				color.GreenString("✔"), result.Chain, result.Records, result.OutputPath)
		case history.StatusFailed:
			_, _ = fmt.Fprintf(out, "  %s %s: %v\n", color.RedString("✘"), result.Chain, result.Err)
		case history.StatusSkipped:
			_, _ = fmt.Fprintf(out, "  %s %s: %s\n", color.YellowString("-"), result.Chain, color.YellowString("not supported"))
		}
	}

	counts := history.Counts(results)
	_, _ = fmt.Fprintf(out, "%s succeeded, %s failed, %s skipped\n",
		color.GreenString("%d", counts[history.StatusSucceeded]),
		color.RedString("%d", counts[history.StatusFailed]),
		color.YellowString("%d", counts[history.StatusSkipped]),
	)
}
