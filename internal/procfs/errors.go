// Package procfs reads CPU time-accounting counters and process identifiers
// from the Linux proc filesystem. It performs no caching, no differencing and
// no logging: every call opens its source, reads it to completion or failure,
// and hands the result (or a typed error) back to the caller.
package procfs

import "fmt"

// RuntimeError reports a structural violation of the expected text shape,
// such as an empty counter file or an accounting line with too few fields.
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string {
	return e.Msg
}

// IOError reports that a counter source could not be opened or read. It
// wraps the underlying OS-level error.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("procfs: %v", e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError reports that a token expected to be a counter failed to parse
// as an unsigned integer. It wraps the underlying *strconv.NumError.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("procfs: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
