package query

import (
	"errors"
	"fmt"
)

// ParseError reports query text that was rejected, with the JSON path of the
// offending element (e.g. "query.operator_and[1].operator_crop.region").
type ParseError struct {
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed query: %s: %s", e.Path, e.Message)
}

// IsParseError reports whether err is (or wraps) a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

func parseErrorf(path, format string, args ...any) *ParseError {
	return &ParseError{Path: path, Message: fmt.Sprintf(format, args...)}
}
