package services

import "errors"

// Service-level error taxonomy. Handlers map each of these to a distinct
// response category; repository and driver errors never cross this boundary
// untranslated.
var (
	// ErrDuplicateEmail reports a signup against an already-registered email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials is the unified authentication failure. An unknown
	// email and a wrong password produce this same error on purpose, so the
	// response never discloses whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotSaved reports an operation on a (user, recipe) link that does not
	// exist: unsaving or annotating a recipe the user never saved.
	ErrNotSaved = errors.New("recipe not in collection")

	// ErrUserNotFound reports an operation against a deleted or unknown user.
	ErrUserNotFound = errors.New("user not found")
)
