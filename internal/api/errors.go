package api

import (
	"errors"
	"fmt"
)

var (
	ErrSessionIDNotFound = errors.New("session id not found")
	ErrAPIKeyNotSet      = errors.New("steam api key not set")
	ErrUserNotFound      = errors.New("user not found")
)

// TransportError is a network-level failure talking to the provider.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-200 provider response (expired session, rate limit, outage).
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: %d from %s", e.StatusCode, e.URL)
}

type ParseError struct {
	What string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return "parse error: " + e.What
	}
	return fmt.Sprintf("parse error: %s: %v", e.What, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
