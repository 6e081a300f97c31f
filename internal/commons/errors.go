package commons

import "errors"

// Closed set of failure kinds surfaced by the ledger engine. Callers are
// expected to match with errors.Is; every service error wraps exactly one of
// these sentinels.
var ErrValidation = errors.New("Validation failed")
var ErrRecordNotFound = errors.New("Record not found")
var ErrAccountInactive = errors.New("Account is inactive")
var ErrCurrencyMismatch = errors.New("Currency mismatch")
var ErrInsufficientFunds = errors.New("Insufficient funds")
var ErrConcurrencyConflict = errors.New("Concurrent update conflict")
