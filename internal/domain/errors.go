package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrDetailsUnavailable = errors.New("details unavailable")
	ErrSpeciesUnavailable = errors.New("species unavailable")
	ErrSelection          = errors.New("selection error")
	ErrPageInFlight       = errors.New("page request already in flight")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// DetailsError reports that the details sub-record of a pokemon could not be
// obtained, either because it was never loaded or because the fetch failed.
type DetailsError struct {
	Name string
	Err  error
}

func (e *DetailsError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("pokemon [%s] has no details loaded", e.Name)
	}
	return fmt.Sprintf("unable to find details for pokemon [%s]: %v", e.Name, e.Err)
}

func (e *DetailsError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDetailsUnavailable}
	}
	return []error{ErrDetailsUnavailable, e.Err}
}

// SpeciesError reports that the species sub-record of a pokemon could not be
// obtained. Forced holds the fallback name tried after the first lookup failed.
type SpeciesError struct {
	Name   string
	Forced string
	Err    error
}

func (e *SpeciesError) Error() string {
	switch {
	case e.Forced != "":
		return fmt.Sprintf("unable to find species data for pokemon [%s] (forced %s): %v", e.Name, e.Forced, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("unable to find species data for pokemon [%s]: %v", e.Name, e.Err)
	default:
		return fmt.Sprintf("pokemon [%s] has no species loaded", e.Name)
	}
}

func (e *SpeciesError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSpeciesUnavailable}
	}
	return []error{ErrSpeciesUnavailable, e.Err}
}

// SelectionError is returned when selecting a pokemon that was never loaded.
type SelectionError struct {
	Name string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("pokemon [%s] wasn't previously loaded", e.Name)
}

func (e *SelectionError) Unwrap() error { return ErrSelection }
