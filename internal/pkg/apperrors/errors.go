package apperrors

import "errors"

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("password must be at least 8 characters and contain letters and digits")
	ErrInvalidRole      = errors.New("role must be one of student, teacher, admin")
	ErrInvalidAccountID = errors.New("invalid account identifier format")
)

// User errors
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrAccountAlreadyExists = errors.New("account identifier already exists")
	ErrEmailAlreadyExists   = errors.New("email already exists")
)

// System config errors
var (
	ErrConfigKeyNotFound  = errors.New("config key not found")
	ErrInvalidDeadline    = errors.New("deadline must use the YYYY-MM-DD HH:MM:SS format")
	ErrConfigUpdaterUnset = errors.New("config updater does not reference an existing user")
)

// File record errors
var (
	ErrFileNotFound    = errors.New("file record not found")
	ErrInvalidFileType = errors.New("file type must be pdf or image")
)

// Import errors
var (
	ErrImportFileUnreadable = errors.New("import file could not be read")
	ErrImportHeaderMissing  = errors.New("import file is missing required columns")
	ErrImportNoRows         = errors.New("import file contains no data rows")
)

// NewValidationError creates a new custom error for failed validation with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

