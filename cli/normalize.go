// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/soundprep"
)

func newNormalizeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <input> <output.wav>",
		Short: "Convert one audio file to a fixed-length mono WAV at the target rate.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.pipeline()

			clip, err := soundprep.NormalizeFile(p.Registry, args[0], args[1], a.cfg.TargetRate, a.cfg.ClipSeconds)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d samples at %d Hz\n", args[1], clip.Len(), clip.SampleRate)

			return nil
		},
	}
}
