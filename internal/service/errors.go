package service

// Domain error taxonomy. Services raise these; the HTTP layer alone decides
// how they map onto wire-level status codes.

// NotFoundError means a referenced record does not exist.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// ConflictError means the requested mutation violates current state
// (locked timesheet, duplicate period, already-invoiced entry).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// ValidationError means the request payload itself is invalid.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }
