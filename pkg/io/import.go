package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/nestindex/pkg/errors"
	"github.com/matzehuels/nestindex/pkg/pipeline"
)

// maxLineLength bounds a single input line. Words with tens of thousands of
// letters are far beyond what the search can finish anyway.
const maxLineLength = 1 << 20

// ReadWords splits r into whitespace-separated words, skipping comments.
// Entries are returned in input order with 1-based line numbers.
// ReadWords does not close r.
func ReadWords(r io.Reader) ([]pipeline.Entry, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var entries []pipeline.Entry
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		for _, tok := range strings.Fields(text) {
			entries = append(entries, pipeline.Entry{Line: line, Input: tok})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read words at line %d", line+1)
	}
	return entries, nil
}

// ImportWords reads the word list at path.
//
// A missing file is reported with [errors.ErrCodeFileNotFound]; a path that
// is not usable at all with [errors.ErrCodeInvalidPath].
func ImportWords(path string) ([]pipeline.Entry, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "couldn't open file: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadWords(f)
}

// ReadJSON decodes a report written by [WriteJSON].
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*pipeline.Report, error) {
	var report pipeline.Report
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode report")
	}
	return &report, nil
}

// ImportReport reads the JSON report at path.
func ImportReport(path string) (*pipeline.Report, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "couldn't open file: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
