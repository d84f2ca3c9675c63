package credentials

import (
	"context"
	"fmt"
	"os"
)

// TokenSource supplies the current authorization credential on demand.
// The returned string is the complete Authorization header payload,
// scheme prefix included.
type TokenSource interface {
	// Token returns the current credential, fetching or regenerating it
	// as needed. It must be safe for concurrent use and should honor
	// ctx cancellation while waiting on a renewal or a remote call.
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc is a function adapter for TokenSource
type TokenSourceFunc func(ctx context.Context) (string, error)

// Token implements TokenSource
func (f TokenSourceFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticTokenSource returns the same value on every call. It never fails.
type StaticTokenSource struct {
	value string
}

// NewStaticTokenSource creates a token source with a fixed value
func NewStaticTokenSource(value string) *StaticTokenSource {
	return &StaticTokenSource{value: value}
}

// Token implements TokenSource
func (s *StaticTokenSource) Token(ctx context.Context) (string, error) {
	return s.value, nil
}

// EnvTokenSource reads an environment variable on every call, so a value
// changed via os.Setenv between requests is picked up without a restart.
type EnvTokenSource struct {
	name   string
	scheme string
}

// NewEnvTokenSource creates a token source backed by the named environment
// variable. The scheme prefix ("Bearer") is prepended to the raw value; pass
// an empty scheme if the variable already holds the full header payload.
func NewEnvTokenSource(name, scheme string) *EnvTokenSource {
	return &EnvTokenSource{name: name, scheme: scheme}
}

// Token implements TokenSource
func (s *EnvTokenSource) Token(ctx context.Context) (string, error) {
	value, ok := os.LookupEnv(s.name)
	if !ok || value == "" {
		return "", fmt.Errorf("environment variable %s is not set", s.name)
	}
	if s.scheme == "" {
		return value, nil
	}
	return s.scheme + " " + value, nil
}
