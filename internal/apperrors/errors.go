package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the resource is in a state that forbids the requested change.
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates that the caller is not allowed to perform the action.
var ErrForbidden = errors.New("action forbidden")

// ErrInternal indicates an unexpected internal failure that should not leak details to the caller.
var ErrInternal = errors.New("internal error")

// ErrInsufficientFunds indicates the sender's balance cannot cover the requested amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrAccountFrozen indicates the account is frozen and cannot send money.
var ErrAccountFrozen = errors.New("account is frozen")

// ErrSelfTransfer indicates sender and receiver are the same ledger account.
var ErrSelfTransfer = errors.New("cannot transfer to the same account")

// ErrInvalidTransition indicates an attempt to move a ledger entry out of a terminal status.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrTransferFailed indicates the balance mutation failed after the ledger entry
// was recorded; the entry has been marked FAILED.
var ErrTransferFailed = errors.New("transfer failed")
