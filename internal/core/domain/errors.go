package domain

import "errors"

var (
	// ErrValidation means email or password was empty at submit time.
	ErrValidation = errors.New("please enter your email and password")

	// ErrInvalidCredentials is never returned by the mock authenticator.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNetwork covers authenticator timeouts and transport failures; callers may retry.
	ErrNetwork = errors.New("authentication backend unavailable")

	// ErrLoginInProgress rejects a login submitted while another is in flight.
	ErrLoginInProgress = errors.New("login already in progress")

	ErrUnknownRole      = errors.New("unknown role")
	ErrCorruptSnapshot  = errors.New("corrupt persisted session")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("access forbidden")
	ErrAccountExists    = errors.New("account already exists")
	ErrAccountNotFound  = errors.New("account not found")
)
