// Package errors maps domain failures onto client-facing error categories.
package errors

import (
	"errors"
	"net/http"
)

// Category classifies a ServiceError for status mapping and metrics.
type Category int

const (
	CategoryNoError Category = iota
	// CategoryDataError covers invalid or missing request content.
	CategoryDataError
	CategoryUnauthorized
	CategoryForbidden
	CategoryResourceNotFound
	CategoryNotSupported
	// CategoryDataConflict is returned when a request collides with in-flight or existing work.
	CategoryDataConflict
	// CategoryDependencyFailure means a remote dependency (metadata store, ledger) failed.
	CategoryDependencyFailure
	CategoryGeneralError
	// CategoryConnectionTimeout means a dependency did not answer in time.
	CategoryConnectionTimeout
)

var categoryNames = map[Category]string{
	CategoryNoError:           "CategoryNoError",
	CategoryDataError:         "CategoryDataError",
	CategoryUnauthorized:      "CategoryUnauthorized",
	CategoryForbidden:         "CategoryForbidden",
	CategoryResourceNotFound:  "CategoryResourceNotFound",
	CategoryNotSupported:      "CategoryNotSupported",
	CategoryDataConflict:      "CategoryDataConflict",
	CategoryDependencyFailure: "CategoryDependencyFailure",
	CategoryConnectionTimeout: "CategoryConnectionTimeout",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "CategoryGeneralError"
}

// ServiceError carries a client-safe Message and optional structured Details
// alongside the internal Err that is only logged.
type ServiceError struct {
	Category Category
	Message  string
	Details  map[string]any
	Err      error
}

func (err ServiceError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	return err.Message
}

// Unwrap returns the underlying error
func (err ServiceError) Unwrap() error {
	return err.Err
}

// Is checks that err is a ServiceError of the given category.
func Is(err error, cat Category) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Category == cat
}

// IsInternalError reports whether err should be treated as a server-side failure.
func IsInternalError(err error) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.Category < CategoryDependencyFailure {
		return false
	}
	return true
}

func newError(cat Category, err error, message, fallback string) error {
	if err == nil {
		err = errors.New(fallback)
	}
	return &ServiceError{Category: cat, Message: message, Err: err}
}

// GeneralError hides err behind "Internal Server Error".
func GeneralError(err error) error {
	return newError(CategoryGeneralError, err, "Internal Server Error", "internal server error")
}

// ResourceNotFoundError returns an error with category ResourceNotFound
func ResourceNotFoundError(err error, message string) error {
	return newError(CategoryResourceNotFound, err, message, "resource not found: "+message)
}

// BadRequestError returns an error with category DataError
func BadRequestError(err error, message string) error {
	return newError(CategoryDataError, err, message, "bad request: "+message)
}

// UnAuthorizedError returns an error with category Unauthorized
func UnAuthorizedError(err error, message string) error {
	return newError(CategoryUnauthorized, err, message, "unauthorized")
}

// ConflictError returns an error with category DataConflict
func ConflictError(err error, message string) error {
	return newError(CategoryDataConflict, err, message, "conflict")
}

// DependencyFailureError returns an error with category DependencyFailure
func DependencyFailureError(err error, message string) error {
	return newError(CategoryDependencyFailure, err, message, "dependency failure: "+message)
}

// TimeoutError returns an error with category ConnectionTimeout
func TimeoutError(err error, message string) error {
	return newError(CategoryConnectionTimeout, err, message, "timeout: "+message)
}

// WithDetails attaches client-visible details to a ServiceError. Errors of
// other types are returned unchanged.
func WithDetails(err error, details map[string]any) error {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		svcErr.Details = details
	}
	return err
}

// StatusCode returns the HTTP status code for the error category
func (err ServiceError) StatusCode() int {
	switch err.Category {
	case CategoryDataError:
		return http.StatusBadRequest
	case CategoryUnauthorized:
		return http.StatusUnauthorized
	case CategoryForbidden:
		return http.StatusForbidden
	case CategoryResourceNotFound:
		return http.StatusNotFound
	case CategoryNotSupported:
		return http.StatusMethodNotAllowed
	case CategoryDataConflict:
		return http.StatusConflict
	case CategoryDependencyFailure:
		return http.StatusBadGateway
	case CategoryConnectionTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
