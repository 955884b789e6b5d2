// Package errs provides the standardized error types used across the
// application. Every component failure is classified into one of four
// categories and returned as a structured error rather than an uncaught fault:
//
//   - ValidationError: a required value is missing or malformed
//   - NotFoundError: a referenced object does not exist
//   - ConflictError: the request conflicts with current state
//     (insufficient stock, carrying available vs. requested)
//   - ExternalServiceError: a collaborator (backing store, text generator)
//     failed or returned a malformed result
//
// Each type follows the same pattern: a sentinel error variable, a struct with
// the error details, constructors with and without cause, an Error method,
// and an Unwrap method so errors.Is can classify any wrapped error.
package errs

import (
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is.
var (
	ErrValidation      = fmt.Errorf("validation failed")
	ErrObjectNotFound  = fmt.Errorf("object not found")
	ErrConflict        = fmt.Errorf("conflict with current state")
	ErrExternalService = fmt.Errorf("external service failed")
	ErrValueIsRequired = fmt.Errorf("value is required")
	ErrValueIsInvalid  = fmt.Errorf("value is invalid")
)

// sanitize keeps error messages on a single line for log friendliness.
func sanitize(v any) string {
	return strings.ReplaceAll(strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " "), "\r", " ")
}

// ValueIsRequiredError reports a missing required value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the named parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping a cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, sanitize(e.ParamName), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a malformed or out-of-domain value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the named parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping a cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, sanitize(e.ParamName), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValidationError reports malformed request input at a component boundary.
// Both ValueIsRequiredError and ValueIsInvalidError unwrap to more specific
// sentinels; ValidationError is the component-boundary wrapper the transport
// layer maps to HTTP 400.
type ValidationError struct {
	Message string
	Cause   error
}

// NewValidationError creates a ValidationError with a human-readable message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NewValidationErrorWithCause creates a ValidationError wrapping a cause.
func NewValidationErrorWithCause(message string, cause error) *ValidationError {
	return &ValidationError{Message: message, Cause: cause}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValidation, sanitize(e.Message), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, sanitize(e.Message))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ObjectNotFoundError reports a lookup that matched nothing: an unknown stock
// item, order number, vehicle, or delivery assignment.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the named parameter and id.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping a cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, sanitize(e.ParamName), sanitize(e.ID), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// InsufficientStockError reports a requested quantity exceeding the on-hand
// quantity. It carries both quantities so callers can present
// available-vs-requested detail.
type InsufficientStockError struct {
	ItemName  string
	Available int
	Requested int
}

// NewInsufficientStockError creates an InsufficientStockError for the named item.
func NewInsufficientStockError(itemName string, available, requested int) *InsufficientStockError {
	return &InsufficientStockError{ItemName: itemName, Available: available, Requested: requested}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: insufficient stock for %s: available %d, requested %d",
		ErrConflict, sanitize(e.ItemName), e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrConflict
}

// ConflictError reports an operation that clashes with current state, such
// as dispatching an order that already has an active delivery.
type ConflictError struct {
	Message string
}

// NewConflictError creates a ConflictError with the given message.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConflict, sanitize(e.Message))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ExternalServiceError reports a collaborator failure, including malformed
// output from the text generator.
type ExternalServiceError struct {
	Service string
	Cause   error
}

// NewExternalServiceError creates an ExternalServiceError for the named service.
func NewExternalServiceError(service string, cause error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Cause: cause}
}

func (e *ExternalServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrExternalService, sanitize(e.Service), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrExternalService, sanitize(e.Service))
}

func (e *ExternalServiceError) Unwrap() error {
	return ErrExternalService
}
