package ui

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/brogergvhs/mangawatch/internal/chapters"
	"github.com/brogergvhs/mangawatch/internal/providers"
	"github.com/brogergvhs/mangawatch/internal/updates"
)

// WriteReport prints one line per series with unread chapters to out and
// the series that could not be checked to errOut.
func WriteReport(out, errOut io.Writer, res updates.Result) error {
	w := tabwriter.NewWriter(out, 0, 0, 4, ' ', 0)
	for _, r := range res.Updates {
		_, _ = fmt.Fprintf(w, "%s\tlast chapter %s\n", r.LastReadURL(), r.Latest)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, f := range res.Failures {
		_, _ = fmt.Fprintf(errOut, "failed to check %s: %v\n", f.Series, failureCause(f.Err))
	}

	return nil
}

func failureCause(err error) error {
	var fe *providers.FetchError
	if errors.As(err, &fe) && fe.Err != nil {
		return fe.Err
	}
	return err
}

// WriteTracked lists the last read chapter of every series in tracked.
func WriteTracked(out io.Writer, tracked chapters.Tracked) error {
	w := tabwriter.NewWriter(out, 0, 0, 4, ' ', 0)
	_, _ = fmt.Fprintln(w, "SERIES\tLAST READ")
	for _, key := range tracked.Keys() {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", key, tracked[key])
	}
	return w.Flush()
}

// WriteSummary prints the totals shown after a check.
func WriteSummary(out io.Writer, res updates.Result, stats *Stats) {
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Check Summary:")
	_, _ = fmt.Fprintf(out, "Series:   %d\n", res.Checked)
	_, _ = fmt.Fprintf(out, "Updates:  %d\n", len(res.Updates))
	_, _ = fmt.Fprintf(out, "Failures: %d\n", len(res.Failures))
	if stats != nil {
		_, _ = fmt.Fprintf(out, "Fetched:  %d\n", stats.Fetched.Load())
	}
}
