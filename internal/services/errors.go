package services

import "errors"

// Surfaced to callers.
var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("access denied")
	ErrInvalidStatus = errors.New("invalid interview status")
)

// Internal to the extraction and generation stages. Each stage returns one of
// these and its caller substitutes a default value instead of propagating it.
var (
	ErrDegenerateInput   = errors.New("extracted text below quality floor")
	ErrUpstreamService   = errors.New("completion service failure")
	ErrMalformedResponse = errors.New("malformed completion response")
)

// ErrInvalidUpload rejects an upload at the boundary (extension or size).
var ErrInvalidUpload = errors.New("invalid upload")
