package domain

import (
	"errors"
	"fmt"
)

var (
	ErrResourceNotFound   = errors.New("spreadsheet not found")
	ErrResourceRead       = errors.New("spreadsheet read failed")
	ErrResourceWrite      = errors.New("spreadsheet write failed")
	ErrResourceLocked     = errors.New("spreadsheet locked")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrProductNotFound    = errors.New("product not found")
	ErrStockColumnMissing = errors.New("stock column missing")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
)

// ResourceError ties a failure kind (one of the ErrResource* values) to the
// file it happened on and the underlying cause. errors.Is matches both.
type ResourceError struct {
	Kind error
	Path string
	Err  error
}

func NewResourceError(kind error, path string, err error) *ResourceError {
	return &ResourceError{Kind: kind, Path: path, Err: err}
}

func (e *ResourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
