// SPDX-License-Identifier: EPL-2.0

// Package corpus loads the annotated metadata table of a sound-event corpus
// laid out like UrbanSound8K:
//
//	slice_file_name,fsID,start,end,salience,fold,classID,class
//	100032-3-0-0.wav,100032,0.0,0.317551,1,5,3,dog_bark
//
// Records are plain values and are never modified after Load. The helpers
// group them by class, partition them by fold and describe the corpus with
// gonum statistics.
package corpus
