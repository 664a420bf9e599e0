package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/brogergvhs/mangawatch/internal/store"

	"github.com/spf13/cobra"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the most recent checks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(st *store.Store) error {
			runs, err := st.RecentRuns(cmd.Context(), flagRunsLimit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tSTARTED\tDURATION\tSERIES\tNEW\tUPDATES\tFAILURES")

			for _, r := range runs {
				duration := "unfinished"
				if !r.FinishedAt.IsZero() {
					duration = r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String()
				}

				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
					r.ID.String()[:8],
					r.StartedAt.Local().Format("2006-01-02 15:04"),
					duration, r.Tracked, r.Discovered, r.Updates, r.Failures)
			}

			if err := w.Flush(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to flush table output: %v\n", err)
			}
			return nil
		})
	},
}

func init() {
	runsCmd.Flags().IntVarP(&flagRunsLimit, "limit", "n", 10, "number of runs to show")
	rootCmd.AddCommand(runsCmd)
}
