package domain

import (
	"errors"
	"fmt"
)

// ErrorType classifies domain-specific errors
type ErrorType string

const (
	ErrorTypeSourceNotFound    ErrorType = "source_not_found"
	ErrorTypeDocumentOpen      ErrorType = "document_open"
	ErrorTypeInvalidPageNumber ErrorType = "invalid_page_number"
	ErrorTypeInvalidPageRange  ErrorType = "invalid_page_range"
	ErrorTypeValidation        ErrorType = "validation"
	ErrorTypeRender            ErrorType = "render"
	ErrorTypeExtraction        ErrorType = "extraction"
	ErrorTypeAPI               ErrorType = "api"
	ErrorTypeConfig            ErrorType = "config"
	ErrorTypeIO                ErrorType = "io"
)

// DomainError represents a domain-specific error with context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewError creates a new domain error
func NewError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// IsType reports whether err is, or wraps, a DomainError of the given type
func IsType(err error, errType ErrorType) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Type == errType
	}
	return false
}

// Common error constructors
func SourceNotFoundError(message string, err error) *DomainError {
	return NewError(ErrorTypeSourceNotFound, message, err)
}

func DocumentOpenError(message string, err error) *DomainError {
	return NewError(ErrorTypeDocumentOpen, message, err)
}

func InvalidPageNumberError(token string) *DomainError {
	return NewError(ErrorTypeInvalidPageNumber, fmt.Sprintf("invalid page number: %s", token), nil)
}

func InvalidPageRangeError(token string) *DomainError {
	return NewError(ErrorTypeInvalidPageRange, fmt.Sprintf("invalid page range: %s", token), nil)
}

func ValidationError(message string, err error) *DomainError {
	return NewError(ErrorTypeValidation, message, err)
}

func RenderError(message string, err error) *DomainError {
	return NewError(ErrorTypeRender, message, err)
}

func ExtractionError(message string, err error) *DomainError {
	return NewError(ErrorTypeExtraction, message, err)
}

func APIError(message string, err error) *DomainError {
	return NewError(ErrorTypeAPI, message, err)
}

func ConfigError(message string, err error) *DomainError {
	return NewError(ErrorTypeConfig, message, err)
}

func IOError(message string, err error) *DomainError {
	return NewError(ErrorTypeIO, message, err)
}
