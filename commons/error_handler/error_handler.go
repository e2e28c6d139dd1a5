package error_handler

import (
	"jobtrack/commons/response"
	"net/http"
)

type ErrorCollection struct {
	errors []response.Errors
}

func NewErrorCollection() *ErrorCollection {
	return &ErrorCollection{
		errors: make([]response.Errors, 0),
	}
}

func (ec *ErrorCollection) AddError(code int, message string, data any) *ErrorCollection {
	ec.errors = append(ec.errors, response.Errors{
		ErrorCode: code,
		Message:   message,
		Data:      data,
	})
	return ec
}

// Append adds prebuilt errors, such as those from the Get*Error helpers.
func (ec *ErrorCollection) Append(errs ...response.Errors) *ErrorCollection {
	ec.errors = append(ec.errors, errs...)
	return ec
}

func (ec *ErrorCollection) HasErrors() bool {
	return len(ec.errors) > 0
}

func (ec *ErrorCollection) GetErrors() []response.Errors {
	return ec.errors
}

// GetHTTPStatus picks the most severe status in the collection:
// server errors, then not found, then unauthorized, then bad request.
func (ec *ErrorCollection) GetHTTPStatus() int {
	if !ec.HasErrors() {
		return http.StatusOK
	}

	status := http.StatusBadRequest
	for _, err := range ec.errors {
		switch {
		case err.ErrorCode >= 500:
			return http.StatusInternalServerError
		case err.ErrorCode == CodeNotFound:
			status = http.StatusNotFound
		case err.ErrorCode == CodeUnauthorized && status != http.StatusNotFound:
			status = http.StatusUnauthorized
		}
	}

	return status
}

// Common error codes
const (
	CodeValidationError     = 400
	CodeUnauthorized        = 401
	CodeNotFound            = 404
	CodeInternalServerError = 500
)

// Helper functions for common errors
func GetValidationError(message string) response.Errors {
	return response.Errors{
		ErrorCode: CodeValidationError,
		Message:   message,
		Data:      nil,
	}
}

func GetUnauthorizedError(message string) response.Errors {
	return response.Errors{
		ErrorCode: CodeUnauthorized,
		Message:   message,
		Data:      nil,
	}
}

func GetNotFoundError(message string) response.Errors {
	return response.Errors{
		ErrorCode: CodeNotFound,
		Message:   message,
		Data:      nil,
	}
}

func GetInternalServerError(message string) response.Errors {
	return response.Errors{
		ErrorCode: CodeInternalServerError,
		Message:   message,
		Data:      nil,
	}
}
