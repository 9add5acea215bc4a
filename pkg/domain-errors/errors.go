// Package domainerrors defines the small error taxonomy the HTTP layer
// translates into response statuses. The engine itself is total over its
// pre-validated domain and never constructs these; they belong to the thin
// glue around it.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code identifies an error class. The string value is the wire-visible
// "error" field.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeInternal     Code = "internal_error"
)

// DomainError carries a code plus a human-readable description. Descriptions
// for internal errors are never exposed to clients.
type DomainError struct {
	Code        Code
	Description string
}

func (e *DomainError) Error() string {
	return string(e.Code) + ": " + e.Description
}

// New constructs a DomainError.
func New(code Code, description string) *DomainError {
	return &DomainError{Code: code, Description: description}
}

// CodeOf extracts the code from any error, defaulting to internal.
func CodeOf(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
