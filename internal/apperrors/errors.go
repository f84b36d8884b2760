package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a referenced record could not be found.
var ErrNotFound = errors.New("record not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// AccountInUseError indicates that an account cannot be deleted because
// transactions still reference it.
type AccountInUseError struct {
	AccountID        int
	TransactionCount int
}

func (e *AccountInUseError) Error() string {
	return fmt.Sprintf("account %d is referenced by %d transaction(s) and cannot be deleted",
		e.AccountID, e.TransactionCount)
}

// ImportSourceError indicates that the import source could not be read at
// all (missing file, unreadable stream).
type ImportSourceError struct {
	Source string
	Err    error
}

func (e *ImportSourceError) Error() string {
	return fmt.Sprintf("import source %q unreadable: %v", e.Source, e.Err)
}

func (e *ImportSourceError) Unwrap() error { return e.Err }

// ImportFormatError indicates that the snapshot violates the schema. It is
// raised before any write happens.
type ImportFormatError struct {
	Err error
}

func (e *ImportFormatError) Error() string {
	return fmt.Sprintf("malformed snapshot: %v", e.Err)
}

func (e *ImportFormatError) Unwrap() error { return e.Err }

// ImportTransactionError indicates a persistence failure during an
// incremental import. The whole import is rolled back when it is raised.
type ImportTransactionError struct {
	Table    string
	RecordID int
	Err      error
}

func (e *ImportTransactionError) Error() string {
	return fmt.Sprintf("import failed on table %s, record %d: %v", e.Table, e.RecordID, e.Err)
}

func (e *ImportTransactionError) Unwrap() error { return e.Err }
