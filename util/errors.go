package util

import "net/http"

// APIError pairs a message with the HTTP status the controller should
// answer with. Services return these so controllers stay thin.
type APIError struct {
	Status     int
	Message    string
	Suggestion string
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

func BadRequest(message string) *APIError {
	return NewAPIError(http.StatusBadRequest, message)
}

func Unauthorized(message string) *APIError {
	return NewAPIError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *APIError {
	return NewAPIError(http.StatusForbidden, message)
}

func NotFound(message string) *APIError {
	return NewAPIError(http.StatusNotFound, message)
}

// NotFoundWithSuggestion is for listings that must never answer an empty
// 200, e.g. the clinic search.
func NotFoundWithSuggestion(message string, suggestion string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: message, Suggestion: suggestion}
}

func Conflict(message string) *APIError {
	return NewAPIError(http.StatusConflict, message)
}

// ValidationError carries per-field messages for schema failures. All
// offending fields are reported together, not just the first.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// FieldError builds a single-field validation error.
func FieldError(field string, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
