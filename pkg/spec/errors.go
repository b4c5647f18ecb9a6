package spec

import (
	"fmt"
	"strings"
)

// SyntaxError reports a malformed encoded spec. Offset is the byte offset
// of the offending character in Source; Error renders a caret pointing at
// it so the failure is legible inside long spec lists.
type SyntaxError struct {
	Source string
	Offset int
	Msg    string
	Err    error
}

func (e *SyntaxError) Error() string {
	offset := e.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > len(e.Source) {
		offset = len(e.Source)
	}
	return fmt.Sprintf("%s at offset %d\n%s\n%s^", e.Msg, e.Offset, e.Source, strings.Repeat(" ", offset))
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// syntaxErr builds a SyntaxError without a cause.
func syntaxErr(source string, offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Source: source, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// UnknownVariableError reports a layout variable with no binding anywhere
// in the LayoutMap chain. Distinct from a syntax problem: the spec text was
// well-formed but referenced a key nobody defined.
type UnknownVariableError struct {
	Name string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown layout variable %q", e.Name)
}
