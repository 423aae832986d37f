package parser

import "fmt"

// MalformedLineError reports a non-blank line that does not match the
// combined log format grammar (or carries a non-numeric status/size). It
// keeps the offending text so bad input files surface with context.
type MalformedLineError struct {
	Line string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed log line: %q", e.Line)
}
