// Package ledger posts bank-account transactions: it validates requests
// against the reference data, writes ledger entries, soft-deletes them, and
// assembles per-customer account reports. Persistence and reference lookups
// are delegated to the storage layer; every mutating operation runs in a
// single database transaction.
package ledger

import "errors"

// Domain errors. The HTTP layer maps these onto status codes; this package
// makes no distinction between transport concerns.
var (
	// ErrNilRequest means a required request body was missing.
	ErrNilRequest = errors.New("transaction request is required")

	// ErrInvalidID means the caller supplied no usable transaction id.
	ErrInvalidID = errors.New("transaction id is required")

	// ErrTransactionNotFound means the referenced ledger entry does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransactionTypeNotFound means no active type matched the sign of the
	// requested amount.
	ErrTransactionTypeNotFound = errors.New("transaction type not found")

	// ErrAccountNotFound means the target account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrNotSaved means the store accepted the write but persisted nothing.
	ErrNotSaved = errors.New("transaction was not saved")
)
