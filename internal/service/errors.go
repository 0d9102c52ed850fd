package service

import "errors"

// ErrAlreadySubscribed is returned when a newsletter email is already on file, whatever its status.
var ErrAlreadySubscribed = errors.New("email already subscribed")

// ValidationError reports the first failing rule category of a submission. Message is safe to
// show to the submitter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
