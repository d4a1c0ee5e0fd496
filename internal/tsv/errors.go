package tsv

import "fmt"

// ParseError reports a labeled line that does not split into exactly two
// tab-separated fields, or a blank line in the middle of the data.
type ParseError struct {
	Line   int // 1-based
	Fields int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: expected 2 tab-separated fields, got %d", e.Line, e.Fields)
}

// DecodeError reports a line that is not valid UTF-8.
type DecodeError struct {
	Line int // 1-based
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d: invalid UTF-8", e.Line)
}
