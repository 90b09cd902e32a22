package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing form.
	ErrNotFound = errors.New("not found")
	// ErrInvalidForm signals a form record that failed validation.
	ErrInvalidForm = errors.New("invalid form")
	// ErrDuplicateCode signals two catalog entries sharing one form code.
	ErrDuplicateCode = errors.New("duplicate form code")
	// ErrCatalogUnavailable signals that the catalog could not be loaded from storage.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// DuplicateCodeError wraps ErrDuplicateCode with the offending code.
type DuplicateCodeError struct {
	Code string
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("%s: %q", ErrDuplicateCode.Error(), e.Code)
}

func (e *DuplicateCodeError) Unwrap() error { return ErrDuplicateCode }

// NewDuplicateCode creates a duplicate code error.
func NewDuplicateCode(code string) error {
	return &DuplicateCodeError{Code: code}
}
