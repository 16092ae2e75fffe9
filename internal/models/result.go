package models

// Result is the unified outcome of a balance operation. Invalid amounts,
// insufficient funds and unknown accounts are reported here, not as errors:
// callers branch on OK, and Record carries the history entry the attempt
// produced (zero-valued when the operation never reached an account).
type Result struct {
	OK     bool
	Status Status
	Reason string // empty on success
	Record Transaction
}

// Success wraps a settled SUCCESS record.
func Success(rec Transaction) Result {
	return Result{OK: true, Status: StatusSuccess, Record: rec}
}

// Failure wraps a rejected operation with the status it settled under.
func Failure(status Status, reason string, rec Transaction) Result {
	return Result{OK: false, Status: status, Reason: reason, Record: rec}
}
