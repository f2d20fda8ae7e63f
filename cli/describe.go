// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ik5/soundprep/corpus"
)

func newDescribeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print class, fold and duration statistics of the corpus.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := a.pipeline().Records()
			if err != nil {
				return err
			}

			return printReport(cmd.OutOrStdout(), corpus.Describe(records))
		},
	}
}

func printReport(out io.Writer, rep corpus.Report) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "records\t%d\n", rep.Records)
	fmt.Fprintf(w, "classes\t%d\n", len(rep.Classes))
	fmt.Fprintf(w, "folds\t%d\n\n", len(rep.Folds))

	fmt.Fprintln(w, "CLASS\tID\tCOUNT")
	for _, c := range rep.Classes {
		fmt.Fprintf(w, "%s\t%d\t%d\n", c.Class, c.ClassID, c.Count)
	}

	fmt.Fprintln(w, "\nFOLD\tCOUNT")
	for _, f := range rep.Folds {
		fmt.Fprintf(w, "%d\t%d\n", f.Fold, f.Count)
	}

	fmt.Fprintln(w, "\nSALIENCE\tCOUNT")
	for _, s := range rep.Salience {
		fmt.Fprintf(w, "%s\t%d\n", s.Salience, s.Count)
	}

	fmt.Fprintln(w, "\nCOLUMN\tMISSING")
	for _, m := range rep.Missing {
		fmt.Fprintf(w, "%s\t%d\n", m.Column, m.Count)
	}

	d := rep.Duration
	fmt.Fprintln(w, "\nDURATION\tCOUNT\tMEAN\tSTD\tMIN\t25%\t50%\t75%\tMAX")
	fmt.Fprintf(w, "seconds\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
		d.Count, d.Mean, d.Std, d.Min, d.Q1, d.Median, d.Q3, d.Max)

	ct := rep.Crosstab
	header := []string{"CLASS"}
	for _, f := range ct.Folds {
		header = append(header, "fold"+strconv.Itoa(f))
	}
	fmt.Fprintln(w, "\n"+strings.Join(header, "\t"))
	for i, class := range ct.Classes {
		row := []string{class}
		for _, n := range ct.Counts[i] {
			row = append(row, strconv.Itoa(n))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return w.Flush()
}
