// Package io reads word lists and writes nesting index reports.
//
// # Word Lists
//
// A word list is plain text with words separated by whitespace, any number
// per line. Each word uses the notation accepted by word.Parse, so "123321"
// and "1,2,3,3,2,1" may be mixed freely. Text from a '#' to the end of its
// line is a comment:
//
//	# genus-one curves
//	1212 123123
//	1,2,3,4,1,2,3,4
//
// Use [ImportWords] to read a list from a file path, or [ReadWords] to read
// from any io.Reader. Each returned entry records the line it came from so
// reports can point back at the input. Words are not parsed here; a word
// that fails to parse is reported by the batch run like any other invalid
// word.
//
// # Reports
//
// A batch report can be written in two forms:
//
//   - [WriteText] prints one "word: index" line per input word, or
//     "word: not DOW" when it could not be evaluated.
//   - [WriteJSON] encodes the complete report, including traces, the run
//     ID, and the histogram. [ReadJSON] decodes it again.
//
// [WriteHistogram] prints the distribution of indices as "NI = i: count"
// lines, one per index from 1 to the largest index seen.
//
// Use [ExportReport] to write a report to a file path in either format.
package io
