package store

import (
	"errors"
	"fmt"
	"net/http"
)

// Resource names used in errors.
const (
	ResourceOrder   = "order"
	ResourceWebhook = "webhook"
)

// NotFoundError is returned when an order or webhook does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// StatusCode returns the HTTP status code for this error.
func (e *NotFoundError) StatusCode() int {
	return http.StatusNotFound
}

// ConflictError is returned when an operation is not allowed in the
// current state of an entity.
type ConflictError struct {
	Resource string
	ID       string
	Reason   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Resource, e.ID, e.Reason)
}

// StatusCode returns the HTTP status code for this error. Conflicts are
// reported as 400 to match the upstream API.
func (e *ConflictError) StatusCode() int {
	return http.StatusBadRequest
}

// IsNotFound reports whether err is or wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConflict reports whether err is or wraps a *ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}
