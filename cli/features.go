// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/soundprep/corpus"
	"github.com/ik5/soundprep/features"
)

func newFeaturesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "Print audio features of the first clip of every class.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := a.pipeline()

			records, err := p.Records()
			if err != nil {
				return err
			}

			l := p.Loader()
			ex := features.NewExtractor()
			groups := corpus.ByClass(records)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CLASS\tFILE\tRMS\tZCR\tCENTROID_HZ\tROLLOFF_HZ\tMFCC_MEAN\tMFCC_STD")

			for _, class := range corpus.Classes(records) {
				rec := groups[class][0]

				clip, err := l.Load(rec.SliceFileName, rec.Fold)
				if err != nil {
					a.log.Warn("skipping class", zap.String("class", class), zap.Error(err))
					continue
				}

				f := ex.Extract(clip)
				fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%.1f\t%.1f\t%s\t%s\n",
					class, rec.SliceFileName, f.RMS, f.ZCR, f.Centroid, f.Rolloff,
					coeffList(f.MFCCMean[:]), coeffList(f.MFCCStd[:]))
			}

			return w.Flush()
		},
	}
}

func coeffList(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatFloat(x, 'f', 1, 64)
	}

	return strings.Join(parts, ",")
}
