package plant

import "errors"

var (
	// ErrPlantNotFound is returned when no plant has the requested ID.
	ErrPlantNotFound = errors.New("plant not found")

	// ErrValidation is the sentinel wrapped by every *ValidationError.
	ErrValidation = errors.New("plant validation failed")
)

// ValidationKind classifies why a request body was rejected.
type ValidationKind string

// Validation failure kinds.
const (
	KindEmptyBody    ValidationKind = "empty_body"
	KindMalformed    ValidationKind = "malformed"
	KindMissingField ValidationKind = "missing_field"
	KindInvalidType  ValidationKind = "invalid_type"
)

// Client-facing validation messages.
const (
	msgMissingFields = "Missing required fields"
	msgInvalidJSON   = "Invalid JSON body"
)

// ValidationError describes a rejected request body.
// errors.Is(err, ErrValidation) reports true for every ValidationError.
type ValidationError struct {
	Kind    ValidationKind
	Field   string // empty for body-level failures
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets callers match any validation failure with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
