package domain

import "errors"

// Sentinel errors shared by services and repositories.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	// ErrUploadWindowClosed is returned when a guest uploads outside the event's upload window.
	ErrUploadWindowClosed = errors.New("upload window closed")
	// ErrEventNotPaid is returned when guest access is requested for an event that is not paid.
	ErrEventNotPaid = errors.New("event not paid")
)
