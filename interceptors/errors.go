package interceptors

import (
	"errors"
	"fmt"
)

// TokenFetchError indicates the token source failed to produce a credential.
// The request never reaches the transport; the source's error is wrapped
// and available via Unwrap.
type TokenFetchError struct {
	Err error
}

func (e *TokenFetchError) Error() string {
	return fmt.Sprintf("authorization: failed to obtain token: %v", e.Err)
}

func (e *TokenFetchError) Unwrap() error {
	return e.Err
}

// IsRetryable marks fetch failures as terminal for this attempt. An outer
// retry interceptor re-runs the whole fetch/apply sequence instead of
// retrying around a broken source.
func (e *TokenFetchError) IsRetryable() bool {
	return false
}

// TokenFormatError indicates the fetched credential cannot be encoded as an
// HTTP header value. This is a configuration or data error, not a transient
// fault.
type TokenFormatError struct {
	Err error
}

func (e *TokenFormatError) Error() string {
	return fmt.Sprintf("authorization: invalid token value: %v", e.Err)
}

func (e *TokenFormatError) Unwrap() error {
	return e.Err
}

// IsRetryable implements the reliability retryable contract
func (e *TokenFormatError) IsRetryable() bool {
	return false
}

// IsTokenFetchError checks if an error came from a failed token fetch
func IsTokenFetchError(err error) bool {
	var fetchErr *TokenFetchError
	return errors.As(err, &fetchErr)
}

// IsTokenFormatError checks if an error came from an unencodable token value
func IsTokenFormatError(err error) bool {
	var formatErr *TokenFormatError
	return errors.As(err, &formatErr)
}
