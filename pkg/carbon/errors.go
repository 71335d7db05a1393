package carbon

import (
	"errors"
	"fmt"
)

// Sentinel errors for the accounting core. Handlers map these onto HTTP
// statuses; callers elsewhere test them with errors.Is.
var (
	ErrReferenceNotFound   = errors.New("referenced entity not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInsufficientBalance = errors.New("insufficient credits available")
)

// TransactionAbortedError reports a rolled-back bulk batch. Index is the
// zero-based position of the first offending entry.
type TransactionAbortedError struct {
	Index int
	Err   error
}

func (e *TransactionAbortedError) Error() string {
	return fmt.Sprintf("batch aborted at entry %d: %v", e.Index, e.Err)
}

func (e *TransactionAbortedError) Unwrap() error {
	return e.Err
}
