package domain

import "errors"

var (
	// ErrEmailTaken signals a signup against an already-registered email.
	// The authoritative source is the unique index on users.email, not a
	// pre-insert lookup.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both "no such email" and "wrong password"
	// so login responses never reveal which one failed.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrAccountInactive means the credentials matched but the account is
	// disabled. Distinct from ErrInvalidCredentials: the caller proved they
	// own the account.
	ErrAccountInactive = errors.New("user account is inactive")

	ErrUserNotFound = errors.New("user not found")
	ErrUnknownRole  = errors.New("unknown role")

	// ErrInvalidToken covers policy failures on an otherwise verifiable
	// token: wrong type, missing or non-integer subject, vanished user.
	ErrInvalidToken = errors.New("invalid token")

	// ErrHashingFailure surfaces a failure inside the password hashing
	// subsystem. The raw password is never attached to it.
	ErrHashingFailure = errors.New("password hashing failed")

	ErrNewsNotFound = errors.New("news item not found")
)
