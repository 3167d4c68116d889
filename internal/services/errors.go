package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map these to
// HTTP statuses with errors.Is.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrUserAlreadyExists  = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidAdminCode   = errors.New("invalid admin code")

	ErrOrderHasItems           = errors.New("order still has items, remove them first")
	ErrInvalidTransition       = errors.New("invalid status transition")
	ErrInvalidStatus           = errors.New("invalid status value")
	ErrStatusNotSupported      = errors.New("status value rejected by the database schema, a migration is required")
	ErrInvalidQuantity         = errors.New("quantity must be a positive integer")
	ErrNothingToUpdate         = errors.New("no fields supplied for update")
	ErrCurrentPasswordRequired = errors.New("current password is required to change the password")
	ErrWrongPassword           = errors.New("password is incorrect")
)
