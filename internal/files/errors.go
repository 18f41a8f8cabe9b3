package files

import "errors"

// ErrNotFound covers both "no such record" and "record not visible to
// this requester". The two are deliberately indistinguishable so that
// non-owners cannot probe for the existence of private files.
var ErrNotFound = errors.New("not found")

// ValidationError rejects malformed create input. The message is safe
// to return to the client verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}
