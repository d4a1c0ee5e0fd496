// Package tsv parses the tab-separated review files.
//
// Labeled files hold one "label<TAB>text" record per line; unlabeled files
// hold the text alone. Malformed lines abort parsing: nothing is skipped.
package tsv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ReadLabeled parses r into index-aligned labels and texts.
func ReadLabeled(r io.Reader) (labels, texts []string, err error) {
	err = eachLine(r, false, func(n int, line string) error {
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return &ParseError{Line: n, Fields: len(fields)}
		}
		labels = append(labels, fields[0])
		texts = append(texts, fields[1])
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return labels, texts, nil
}

// ReadUnlabeled parses r into one text per line. A blank line between two
// texts is kept as an empty document so that positions stay aligned with
// line numbers.
func ReadUnlabeled(r io.Reader) ([]string, error) {
	var texts []string
	err := eachLine(r, true, func(_ int, line string) error {
		texts = append(texts, line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return texts, nil
}

// ReadLabeledFile opens path and parses it with ReadLabeled.
func ReadLabeledFile(path string) (labels, texts []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	labels, texts, err = ReadLabeled(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return labels, texts, nil
}

// eachLine decodes r line by line, strips trailing whitespace and calls fn
// for every non-empty line. Blank lines at the end of the input are dropped.
// A blank line followed by more data is passed to fn as "" when keepBlank is
// set and is a ParseError otherwise.
func eachLine(r io.Reader, keepBlank bool, fn func(n int, line string) error) error {
	br := bufio.NewReader(r)
	var blanks []int // pending blank line numbers
	for n := 1; ; n++ {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if raw == "" && errors.Is(err, io.EOF) {
			return nil
		}
		if !utf8.ValidString(raw) {
			return &DecodeError{Line: n}
		}
		line := strings.TrimRightFunc(raw, unicode.IsSpace)
		if line == "" {
			blanks = append(blanks, n)
		} else {
			for _, b := range blanks {
				if !keepBlank {
					return &ParseError{Line: b, Fields: 1}
				}
				if ferr := fn(b, ""); ferr != nil {
					return ferr
				}
			}
			blanks = blanks[:0]
			if ferr := fn(n, line); ferr != nil {
				return ferr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
	}
}
