// SPDX-License-Identifier: EPL-2.0

// Package dataset writes the training material derived from a corpus.
//
// A Splitter holds one fold out for testing and writes every other record
// to the training side, each clip fixed to one length and renamed
// <class>.<original name> so downstream tools can infer the label from the
// file name. A Synthesizer overlays clips of distinct classes into
// multi-label mixtures. Both write a CSV table next to the audio they
// produce.
//
// Items that cannot be loaded are skipped. The skip is logged and reported
// back as an ItemError; it never aborts the run.
package dataset
