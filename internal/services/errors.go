package services

import "errors"

// Sentinel errors the handler layer maps onto HTTP statuses.
var (
	ErrAuthenticationFailed = errors.New("no active account found with the given credentials")
	ErrInvalidToken         = errors.New("token is invalid or expired")
	ErrActorMismatch        = errors.New("authenticated user does not match the claimed actor")
	ErrForbidden            = errors.New("user role does not permit this operation")

	ErrUserNotFound   = errors.New("user not found")
	ErrCourseNotFound = errors.New("course not found")
	ErrStatusNotFound = errors.New("status not found")

	ErrMaterialNotFound = errors.New("course material not found")
	ErrNoAttachment     = errors.New("course material has no attached file")

	ErrDuplicateEmail    = errors.New("user with this email already exists")
	ErrDuplicateUsername = errors.New("a user with that username already exists")
)
