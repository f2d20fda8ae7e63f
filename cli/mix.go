// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/soundprep"
)

func newMixCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mix",
		Short: "Synthesize multi-label mixtures from the corpus.",
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

			seed := soundprep.ResolveSeed(a.cfg.Seed)
			res, err := p.Synthesizer(seed).Synthesize(cmd.Context(), records, a.cfg.MixCount, a.cfg.MixArity)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d mixtures written to %s (seed %d)\n", len(res.Rows), res.Dir, seed)
			printFailures(out, res.Failures)

			return nil
		},
	}
	mixFlags(cmd, a)

	return cmd
}
