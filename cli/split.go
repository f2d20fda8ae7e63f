// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ik5/soundprep/dataset"
)

func newSplitCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Write the train/test split that holds one fold out.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			p := a.pipeline()
			records, err := p.Records()
			if err != nil {
				return err
			}

			res, err := p.Splitter().Split(cmd.Context(), records, a.cfg.TestFold)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "split written to %s: %d training, %d testing\n", res.Dir, len(res.Train), len(res.Test))
			printFailures(out, res.Failures)

			return nil
		},
	}
	splitFlags(cmd, a)

	return cmd
}

func printFailures(out io.Writer, failures []dataset.ItemError) {
	if len(failures) == 0 {
		return
	}

	fmt.Fprintf(out, "%d skipped:\n", len(failures))
	for _, f := range failures {
		fmt.Fprintf(out, "  %v\n", f)
	}
}
