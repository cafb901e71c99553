package domain

import (
	"errors"
	"fmt"
)

var ErrNotAuthenticated = errors.New("not authenticated")
var ErrForbidden = errors.New("access forbidden")
var ErrNoRefreshToken = errors.New("no refresh token")
var ErrSignupTokenMissing = errors.New("oauth2 signup token missing or expired")
var ErrSessionFieldNotFound = errors.New("session field not found")
var ErrGroupPurchaseFull = errors.New("group purchase has no remaining quantity")

// ValidationError reports a form field that blocks submission. These are
// caught before any upstream call and never sent to the server.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError for the given field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
