package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthenticated covers every credential failure: missing or malformed
	// header, bad signature, expired token, unknown identity.
	ErrUnauthenticated    = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")

	ErrProductNotFound  = errors.New("product does not exist")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrDuplicateRequest = errors.New("duplicate request")

	ErrValidation = errors.New("validation failed")
)

// Forbidden variants. All of them match ErrForbidden with errors.Is.
var (
	ErrRoleMismatch      = fmt.Errorf("%w: role not permitted", ErrForbidden)
	ErrNotProductOwner   = fmt.Errorf("%w: you are not the owner of the product", ErrForbidden)
	ErrNotCartOwner      = fmt.Errorf("%w: you are not the owner of this cart item", ErrForbidden)
	ErrInsufficientStock = fmt.Errorf("%w: product is outnumbered", ErrForbidden)
)

// FieldViolation describes one rejected field of a request payload.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a payload does not match its schema.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
