package domain

import (
	"errors"
	"fmt"
)

// FetchError reports a failed upstream fetch: network failure, non-success
// status, unknown symbol, or a malformed response shape. It wraps the cause.
type FetchError struct {
	Provider string
	Symbol   string
	Err      error
}

func (e *FetchError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("%s: fetching %s: %v", e.Provider, e.Symbol, e.Err)
	}
	return fmt.Sprintf("%s: fetch: %v", e.Provider, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsFetchError reports whether err is (or wraps) a FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// AuthError reports a missing or rejected API key for a provider.
type AuthError struct {
	Provider string
	Reason   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Reason)
}

// IsAuthError reports whether err is (or wraps) an AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// InputError reports malformed user input, such as an empty ticker list.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return e.Reason }

// IsInputError reports whether err is (or wraps) an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
