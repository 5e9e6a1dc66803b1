package tracker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable reports that no price is known for a ticker: the quote
// source failed and no prior value was ever cached.
var ErrUnavailable = errors.New("price unavailable")

// ErrNotFound reports that no position exists for a given id.
var ErrNotFound = errors.New("position not found")

// ValidationError collects the constraint failures of a user-entered
// position. It is returned before any state is mutated.
type ValidationError struct {
	Fields []string // one message per failing field
}

func (e *ValidationError) Error() string {
	return "invalid position: " + strings.Join(e.Fields, "; ")
}

// add records a field failure and returns the error for chaining.
func (e *ValidationError) add(format string, args ...any) *ValidationError {
	e.Fields = append(e.Fields, fmt.Sprintf(format, args...))
	return e
}

// orNil returns nil when no field failed.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// QuoteError reports a failure of the external quote source for one ticker.
// Permanent failures (the source does not know the ticker) are retried far
// less often than transient ones (network, timeout, rate limit).
type QuoteError struct {
	Ticker    string
	Permanent bool
	Err       error
}

func (e *QuoteError) Error() string {
	kind := "transient"
	if e.Permanent {
		kind = "permanent"
	}
	return fmt.Sprintf("quote fetch for %q failed (%s): %v", e.Ticker, kind, e.Err)
}

func (e *QuoteError) Unwrap() error { return e.Err }

// PersistenceError reports a failure to read or write the position file.
// It is fatal for the operation attempted: the edit is not silently dropped.
type PersistenceError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("cannot %s position file %q: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
