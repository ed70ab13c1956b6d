package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/nestindex/pkg/errors"
	"github.com/matzehuels/nestindex/pkg/pipeline"
)

// WriteText writes one line per outcome, in input order:
// "word: index" for evaluated words and "word: not DOW" otherwise.
func WriteText(w io.Writer, report *pipeline.Report) error {
	for _, o := range report.Outcomes {
		var err error
		if o.OK() {
			_, err = fmt.Fprintf(w, "%s: %d\n", o.Input, o.Result.Index)
		} else {
			_, err = fmt.Fprintf(w, "%s: not DOW\n", o.Input)
		}
		if err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	return nil
}

// WriteJSON encodes the complete report as indented JSON.
// The output can be re-imported with [ReadJSON].
func WriteJSON(w io.Writer, report *pipeline.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteHistogram writes "NI = i: count" for every index from 1 up to the
// largest index in h, including indices no word reached. Words of index 0
// (the empty word) get their own line only when present.
func WriteHistogram(w io.Writer, h pipeline.Histogram) error {
	if n := h.Count(0); n > 0 {
		if _, err := fmt.Fprintf(w, "NI = 0: %d\n", n); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	highest := 0
	for _, b := range h {
		highest = max(highest, b.Index)
	}
	for i := 1; i <= highest; i++ {
		if _, err := fmt.Fprintf(w, "NI = %d: %d\n", i, h.Count(i)); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	return nil
}

// Write writes report in the given format, one of pipeline.FormatText or
// pipeline.FormatJSON.
func Write(w io.Writer, report *pipeline.Report, format string) error {
	if err := pipeline.ValidateFormat(format); err != nil {
		return err
	}
	if format == pipeline.FormatJSON {
		return WriteJSON(w, report)
	}
	return WriteText(w, report)
}

// ExportReport writes report to a file at path in the given format.
// This is a convenience wrapper around [Write] for file-based output.
func ExportReport(report *pipeline.Report, path, format string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "couldn't create file: %s", path)
	}
	if err := Write(f, report, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
