package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/schedule-cli/internal/model"
	"github.com/sells-group/schedule-cli/internal/schedule"
	"github.com/sells-group/schedule-cli/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect parse run history",
	Long:  "Commands for listing, viewing, and summarizing stored parse runs.",
}

// -- runs list --

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List parse runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		source, _ := cmd.Flags().GetString("source")
		limit, _ := cmd.Flags().GetInt("limit")

		runs, err := st.ListRuns(ctx, store.RunFilter{Source: source, Limit: limit})
		if err != nil {
			return eris.Wrap(err, "runs list")
		}

		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs found.")
			return nil
		}

		formatRunsList(os.Stdout, runs)
		return nil
	},
}

// -- runs show --

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the full result of a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "runs show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

// -- runs projects --

var runsProjectsCmd = &cobra.Command{
	Use:   "projects [run-id]",
	Short: "Tabulate the projects of a run (default latest)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		var run *model.Run
		if len(args) == 1 {
			run, err = st.GetRun(ctx, args[0])
		} else {
			run, err = st.LatestRun(ctx)
		}
		if err != nil {
			return eris.Wrap(err, "runs projects")
		}

		formatProjects(os.Stdout, run.Result)
		return nil
	},
}

func init() {
	runsListCmd.Flags().String("source", "", "filter by source document path")
	runsListCmd.Flags().Int("limit", 50, "max number of runs to display")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsProjectsCmd)
	rootCmd.AddCommand(runsCmd)
}

// formatRunsList writes a tabular list of runs to w.
func formatRunsList(out io.Writer, runs []model.Run) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSOURCE\tSTRATEGY\tPROJECTS\tCREATED")
	_, _ = fmt.Fprintln(w, "--\t------\t--------\t--------\t-------")

	for _, r := range runs {
		source := r.Source
		if len(source) > 40 {
			source = "..." + source[len(source)-37:]
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			truncateID(r.ID),
			source,
			r.Strategy,
			r.ProjectCount,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

// formatProjects writes one line per project followed by the community
// summary.
func formatProjects(out io.Writer, res *model.ParseResult) {
	if res == nil {
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PROJECT\tCOMMUNITY\tLOT\tSQFT\tPHASE\tDONE\tTASKS")
	for _, p := range res.Projects {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1f%%\t%d\n",
			p.ProjectID,
			p.Community,
			p.Lot,
			p.SquareFootage,
			p.CurrentPhase,
			schedule.Completion(p.Schedule, res.ParsedDate),
			len(p.Schedule),
		)
	}
	_ = w.Flush()

	communities := make([]string, 0, len(res.Summary.ByCommunity))
	for c := range res.Summary.ByCommunity {
		communities = append(communities, c)
	}
	sort.Strings(communities)

	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "\nTotal projects:\t%d\n", res.Summary.TotalProjects)
	for _, c := range communities {
		_, _ = fmt.Fprintf(w, "  %s:\t%d\n", c, res.Summary.ByCommunity[c])
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
