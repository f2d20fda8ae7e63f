// SPDX-License-Identifier: EPL-2.0

// Package soundprep prepares an annotated environmental-sound corpus for
// classifier training and builds a multi-label evaluation set from it.
//
// The corpus follows the UrbanSound8K layout: a metadata table with one row
// per slice and the audio stored as <audio dir>/fold<N>/<slice file name>.
//
// # Pipeline
//
// A Pipeline runs the whole preparation in order:
//
//  1. split: one fold is held out for testing, every clip is resampled to
//     mono at the target rate, fixed to the clip length and written as
//     <class>.<slice file name> with a metadata table per side
//  2. mix: clips of distinct classes are overlaid with random gains, peak
//     normalized and lightly noised into labelled mixtures
//  3. summary: dataset_summary.json records how the run was configured
//
//	cfg := config.Load()
//	log, _ := logger.New(cfg.Logger())
//	res, err := soundprep.New(cfg, log).Run(ctx)
//
// Clips that cannot be read are skipped and reported in the result; they
// never abort a run.
//
// # Single Files
//
// NormalizeFile applies the same resample, downmix and length fix to one
// file of any registered format (WAV, MP3, Ogg Vorbis, AIFF).
//
// See the subpackages for the individual stages.
package soundprep
