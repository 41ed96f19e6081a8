package errors

import (
	"errors"
	"fmt"
)

// ErrorCode define el código de error
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken    ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken    ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidPassword ErrorCode = "INVALID_PASSWORD"
	ErrCodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserExists      ErrorCode = "USER_EXISTS"
	ErrCodeInvalidEmail    ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidRole     ErrorCode = "INVALID_ROLE"

	// Client errors
	ErrCodeInvalidClientID ErrorCode = "INVALID_CLIENT_ID"
	ErrCodeInvalidStatus   ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidPhase    ErrorCode = "INVALID_PHASE"

	// Accounting errors
	ErrCodeInvalidAmount  ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidPeriod  ErrorCode = "INVALID_PERIOD"
	ErrCodeInvalidChannel ErrorCode = "INVALID_CHANNEL"

	// Database errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// AppError define el error de la aplicación
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewAppError crea un AppError nuevo
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError comprueba si un error es AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError extrae el AppError de un error
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return nil
}

var (
	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUnauthorized      = errors.New("unauthorized")

	// Client errors
	ErrClientNotFound = errors.New("client not found")

	// Sale errors
	ErrSaleNotFound = errors.New("sale not found")

	// Announcement errors
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrAnnouncementExpired  = errors.New("announcement expired")

	// Lead errors
	ErrLeadNotFound = errors.New("lead not found")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
	ErrInvalidFormat   = errors.New("invalid format")
)
