package client

import (
	"errors"
	"fmt"
)

var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrFetchFailed          = errors.New("fetch failed")
	ErrUnavailable          = errors.New("cms unavailable")
)

// AuthError is a login rejected by the CMS. Message is the server-reported
// reason, or the HTTP status text when the body carried none.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %d %s", ErrAuthenticationFailed, e.StatusCode, e.Message)
}

func (e *AuthError) Unwrap() error { return ErrAuthenticationFailed }

// FetchError is a non-2xx response from the collection endpoint.
type FetchError struct {
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %d %s", ErrFetchFailed, e.StatusCode, e.Status)
}

func (e *FetchError) Unwrap() error { return ErrFetchFailed }
