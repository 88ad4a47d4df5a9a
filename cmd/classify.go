package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/schedule-cli/internal/schedule"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [task]...",
	Short: "Show the construction phase assigned to task texts",
	Long:  "Classifies each argument, or each line of stdin when no arguments are given, with the configured phase table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyParseFlags(cmd); err != nil {
			return err
		}
		table, err := phaseTable(cfg.Parse.PhaseFile, cfg.Parse.PhaseTable)
		if err != nil {
			return err
		}
		c := schedule.NewClassifier(table)

		if list, _ := cmd.Flags().GetBool("list"); list {
			for _, p := range c.Phases() {
				fmt.Fprintln(os.Stdout, p)
			}
			return nil
		}

		tasks := args
		if len(tasks) == 0 {
			if tasks, err = readLines(os.Stdin); err != nil {
				return err
			}
		}
		formatClassified(os.Stdout, c, tasks)
		return nil
	},
}

func init() {
	classifyCmd.Flags().String("phase-table", "", "built-in phase table: detailed or compact")
	classifyCmd.Flags().String("phase-file", "", "YAML phase table file")
	classifyCmd.Flags().Bool("list", false, "list the phases of the table in match order")
	rootCmd.AddCommand(classifyCmd)
}

func formatClassified(out io.Writer, c *schedule.Classifier, tasks []string) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, t := range tasks {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", c.Classify(t), t)
	}
	_ = w.Flush()
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, eris.Wrap(sc.Err(), "classify: read stdin")
}
