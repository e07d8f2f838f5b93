package domain

import "errors"

// Validation and lookup errors. Expected during normal use; surfaced to the
// caller for user-facing messaging.
var (
	ErrValidation         = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrRoomNotFound       = errors.New("room not found")
	ErrOwnerNotFound      = errors.New("owner not found")
	ErrRequestNotFound    = errors.New("request not found")
	ErrRentalNotFound     = errors.New("rental not found")
	ErrForbidden          = errors.New("access forbidden")
)

// Conflict errors. Expected under concurrent use; the caller may re-fetch
// and retry, or surface "already taken".
var (
	ErrUserExists        = errors.New("email already registered")
	ErrDuplicateKey      = errors.New("duplicate primary key")
	ErrSelfRequest       = errors.New("cannot request own room")
	ErrDuplicatePending  = errors.New("a pending request already exists for this room")
	ErrRoomAlreadyRented = errors.New("room already has an active rental")
	ErrRequestNotPending = errors.New("request is not pending")
	ErrInvalidTransition = errors.New("invalid request state transition")
)

// ErrConsistency marks a multi-record update that was only partially
// applied. It is never retried automatically and requires manual
// reconciliation; callers must not treat it as an ordinary failure.
var ErrConsistency = errors.New("inconsistent multi-record update")
