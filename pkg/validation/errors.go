package validation

import "fmt"

// Code is a machine-readable validation error code.
type Code string

// Error codes.
const (
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidQuantity Code = "INVALID_QUANTITY"
	CodeInvalidURL      Code = "INVALID_URL"
	CodeInvalidJSON     Code = "INVALID_JSON"
)

// ErrorMessage is the top-level message of every validation response.
const ErrorMessage = "Validation failed"

// FieldError describes a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    Code   `json:"code"`
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}

// Response is the 400 body for a validation failure. Details always holds
// exactly one entry.
type Response struct {
	Error   string        `json:"error"`
	Details []*FieldError `json:"details"`
}

// Response wraps e in the validation response envelope.
func (e *FieldError) Response() Response {
	return Response{Error: ErrorMessage, Details: []*FieldError{e}}
}

// NewFieldError creates a FieldError.
func NewFieldError(field, message string, code Code) *FieldError {
	return &FieldError{Field: field, Message: message, Code: code}
}
