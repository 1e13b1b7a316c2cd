package util

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// DomainError standardizes errors surfaced by the status server.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// AuthErrorCode is a stable identifier for credential-exchange failures.
// Callers branch on the code, never on the backend message text.
type AuthErrorCode string

const (
	AuthCodeInvalidCredentials AuthErrorCode = "invalid_credentials"
	AuthCodeUserNotFound       AuthErrorCode = "user_not_found"
	AuthCodeAccountInactive    AuthErrorCode = "account_inactive"
	AuthCodeInvalidSession     AuthErrorCode = "invalid_session"
	AuthCodeExchangeFailed     AuthErrorCode = "exchange_failed"
)

// AuthError reports a failed login exchange. Message carries the backend
// text verbatim for display; Code is the stable classification.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError constructs an AuthError.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{Code: code, Message: message, Err: err}
}

// ClassifyAuthMessage maps a backend-defined human-readable message to a
// stable code. Fallback for backends that do not yet send an explicit
// code in their error envelope.
func ClassifyAuthMessage(message string) AuthErrorCode {
	switch {
	case strings.Contains(message, "Usuario no encontrado"):
		return AuthCodeUserNotFound
	case strings.Contains(message, "inactiva"):
		return AuthCodeAccountInactive
	case strings.Contains(message, "Credenciales inválidas"):
		return AuthCodeInvalidCredentials
	default:
		return AuthCodeExchangeFailed
	}
}
