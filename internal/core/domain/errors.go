package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrFileNotFound indicates a remote file path does not exist.
	// Document loads recover from this by substituting the default
	// empty shape; it must never be conflated with other transport
	// failures (a permissions error is not "file doesn't exist yet").
	ErrFileNotFound = errors.New("file not found")

	// ErrAlreadyExists indicates a create targeted a path that is
	// already present remotely.
	ErrAlreadyExists = errors.New("file already exists")

	// ErrConflict indicates the version token supplied with an update
	// or delete was stale. The document store retries these with
	// bounded attempts before surfacing them.
	ErrConflict = errors.New("version token conflict")

	// ErrRecordNotFound indicates an update targeted a record id absent
	// from the collection. The document is left unchanged.
	ErrRecordNotFound = errors.New("record not found")

	// ErrUnsupportedDocument indicates a document name outside the
	// fixed allow-list of four logical documents.
	ErrUnsupportedDocument = errors.New("unsupported document")

	// ErrUnauthorized indicates the remote store rejected the
	// configured credentials. Fatal, never retried.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnknownField indicates an update named a field outside the
	// record's fixed schema.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
