package services

import "errors"

// Error kinds shared by services and mapped to HTTP statuses in handlers.
// Missing and invalid credentials both end up as 401 but stay distinct so
// logs can tell a client that sent nothing from one that sent garbage.
var (
	// ErrMissingCredential means no Authorization header was presented.
	ErrMissingCredential = errors.New("missing credential")

	// ErrInvalidCredential covers malformed, tampered and expired tokens,
	// and tokens without a subject.
	ErrInvalidCredential = errors.New("invalid or expired credential")

	// ErrUnknownAccount means a verified token's subject no longer resolves
	// to a live account. Surfaced identically to ErrInvalidCredential so
	// callers cannot probe which subjects exist.
	ErrUnknownAccount = errors.New("unknown or inactive account")

	// ErrForbidden means the actor is neither the resource owner nor admin.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the target resource does not exist or is deleted.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists means a uniqueness rule was violated.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput means the request referenced something stale or
	// inconsistent, e.g. a deleted parent comment.
	ErrInvalidInput = errors.New("invalid input")
)
