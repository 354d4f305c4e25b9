package dataset

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	// KindDataSource covers a missing or unreadable dataset file.
	KindDataSource ErrorKind = "data_source"
	// KindSchema covers a required column missing from the header.
	KindSchema ErrorKind = "schema"
	// KindParse covers a cell that cannot be converted to its field type.
	KindParse ErrorKind = "parse"
)

// Error is the loader's failure type. Loading is fail-fast: the first bad
// cell aborts the whole load rather than dropping the row, so report totals
// can never silently undercount.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func sourceErr(msg string, err error) *Error {
	return &Error{Kind: KindDataSource, Msg: msg, Err: err}
}

func schemaErr(msg string) *Error {
	return &Error{Kind: KindSchema, Msg: msg}
}

func parseErr(msg string, err error) *Error {
	return &Error{Kind: KindParse, Msg: msg, Err: err}
}

// KindOf extracts the error kind, or "" when err is not a dataset error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
