// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/soundprep/storage"
)

func newPublishCommand(a *app) *cobra.Command {
	var bucket, prefix string

	cmd := &cobra.Command{
		Use:   "publish [dir...]",
		Short: "Upload output directories to S3-compatible storage.",
		Long: `Upload every file below the given directories, or below the split and
mixture output directories when none are given, to the configured bucket.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Storage
			if cmd.Flags().Changed("bucket") {
				cfg.Bucket = bucket
			}
			if cmd.Flags().Changed("prefix") {
				cfg.Prefix = prefix
			}

			pub, err := storage.NewPublisher(cfg, a.log)
			if err != nil {
				return err
			}
			pub.Progress = a.prog

			dirs := args
			if len(dirs) == 0 {
				dirs = []string{a.cfg.OutputDir, a.cfg.MixedDir}
			}

			for _, dir := range dirs {
				uploads, err := pub.Publish(cmd.Context(), dir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d objects uploaded to %s\n", dir, len(uploads), cfg.Bucket)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "target bucket")
	cmd.Flags().StringVar(&prefix, "prefix", "", "object key prefix")
	cmd.Example = `  # publish the default output directories
  soundprep publish

  # publish one directory under another prefix
  soundprep publish --prefix runs/2026-10 EdgeImpulse_Dataset`

	return cmd
}
