package record

import (
	"errors"
	"fmt"

	"github.com/roach88/notary/internal/ledger"
)

// ErrorCode categorizes store failures.
type ErrorCode string

const (
	// CodeDuplicateOperation indicates the registry rejected the
	// operation fingerprint as already admitted. Recoverable: retry at
	// a later timestamp.
	CodeDuplicateOperation ErrorCode = "DUPLICATE_OPERATION"

	// CodeNotFound indicates the target record id is absent from the
	// store.
	CodeNotFound ErrorCode = "NOT_FOUND"
)

// OpError is the failure result of a store operation. Every failure is
// returned as a value; the store never panics and never leaves partial
// state behind a failed call.
type OpError struct {
	Code     ErrorCode
	Op       ledger.Op
	RecordID string
	Message  string
}

// Error implements the error interface.
func (e *OpError) Error() string {
	return e.Message
}

// IsDuplicate reports whether err is a duplicate-operation rejection.
// Uses errors.As to handle wrapped errors.
func IsDuplicate(err error) bool {
	var oe *OpError
	return errors.As(err, &oe) && oe.Code == CodeDuplicateOperation
}

// IsNotFound reports whether err is a missing-record failure.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var oe *OpError
	return errors.As(err, &oe) && oe.Code == CodeNotFound
}

func duplicateErr(op ledger.Op, recordID string) *OpError {
	return &OpError{
		Code:     CodeDuplicateOperation,
		Op:       op,
		RecordID: recordID,
		Message:  fmt.Sprintf("%s failed: duplicate operation detected for %s", op, recordID),
	}
}

func notFoundErr(op ledger.Op, recordID string) *OpError {
	return &OpError{
		Code:     CodeNotFound,
		Op:       op,
		RecordID: recordID,
		Message:  fmt.Sprintf("record %s not found", recordID),
	}
}
