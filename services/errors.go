package services

import "errors"

// Shared errors used across services and the HTTP mapping layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules.
	ErrValidationFailed      = errors.New("validation failed")
	ErrBracketNameRequired   = errors.New("bracket name is required")
	ErrPlatformNameRequired  = errors.New("platform name is required")
	ErrSlotIndexOutOfRange   = errors.New("slot index is out of range")
	ErrUnknownCreatorSide    = errors.New("creator side must be 1 or 2")
	ErrDisplayNameRequired   = errors.New("display name is required")
	ErrPasswordTooShort      = errors.New("password is too short")
	ErrMaxUsersInvalid       = errors.New("max users must be positive")
	ErrExportUploaderMissing = errors.New("no export storage is configured")

	// Authentication and authorization.
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Entity-specific lookups.
	ErrUserNotFound          = errors.New("user not found")
	ErrFillInBracketNotFound = errors.New("fill-in bracket not found")
	ErrAdHocBracketNotFound  = errors.New("ad hoc bracket not found")
)
