package models

import (
	"errors"
	"fmt"
)

var (
	ErrMissingBaseURL = errors.New("content service base URL is not set")
	ErrMissingToken   = errors.New("content service API token is not set")
	ErrInvalidPath    = errors.New("invalid content path")
	ErrUnknownFormat  = errors.New("unknown front matter format")
)

// FetchError is returned when the content service answers with a
// non-success status. It is surfaced to callers unchanged.
type FetchError struct {
	Path       string
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s from CMS: %d %s", e.Path, e.StatusCode, e.Status)
}

// SubmitError is returned when the content service rejects a contact submission.
type SubmitError struct {
	StatusCode int
	Status     string
	Info       string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("failed to create contact submission: %d %s %s", e.StatusCode, e.Status, e.Info)
}
