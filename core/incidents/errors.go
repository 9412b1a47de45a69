package incidents

import "errors"

// Error taxonomy returned by the service. The API layer maps these to HTTP
// statuses; anything else is a storage failure and surfaces as a 500.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
)
