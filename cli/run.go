// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

func newRunCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Split, mix and write the run summary.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.pipeline().Run(cmd.Context())
			if err != nil {
				return err
			}

			s := res.Summary
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s: %d training, %d testing, %d mixtures (seed %d)\n",
				s.RunID, s.TrainingSamples, s.TestingSamples, s.MixedAudioSamples, s.Seed)
			fmt.Fprintf(out, "summary written to %s\n", res.SummaryPath)
			printFailures(out, slices.Concat(res.Split.Failures, res.Mix.Failures))

			return nil
		},
	}
	splitFlags(cmd, a)
	mixFlags(cmd, a)

	return cmd
}
