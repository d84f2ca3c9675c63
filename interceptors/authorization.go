package interceptors

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/net/http/httpguts"

	"github.com/glimte/httpmate-go/credentials"
)

// AuthorizationInterceptor fills in the Authorization header of every request
// from a token source. The source is expected to provide a valid, complete
// header payload (including renewal), or an error if the token could not be
// obtained.
//
// The interceptor holds no state beyond the source handle and never caches:
// each request carries whatever value the source returned for that call, so
// sources may rotate credentials between requests. Any previous Authorization
// header value is overwritten.
//
// When the chain also contains a RetryInterceptor, add the authorization
// interceptor after it so retried attempts fetch the current token.
type AuthorizationInterceptor struct {
	source credentials.TokenSource
}

// NewAuthorizationInterceptor creates an authorization interceptor backed by
// source. The same source may be shared by any number of interceptors and
// concurrent requests.
func NewAuthorizationInterceptor(source credentials.TokenSource) *AuthorizationInterceptor {
	return &AuthorizationInterceptor{source: source}
}

// Intercept implements Interceptor. It fetches the current token, sets the
// Authorization header, and forwards the request. On a fetch or formatting
// failure the chain is short-circuited: next is not invoked and the request
// never reaches the transport.
func (i *AuthorizationInterceptor) Intercept(ctx context.Context, req *http.Request, next Handler) (*http.Response, error) {
	if i.source == nil {
		return nil, &TokenFetchError{Err: errors.New("no token source configured")}
	}

	// Obtain (or regenerate) an auth token from the token source
	token, err := i.source.Token(ctx)
	if err != nil {
		return nil, &TokenFetchError{Err: err}
	}

	if !httpguts.ValidHeaderFieldValue(token) {
		return nil, &TokenFormatError{Err: errors.New("token contains characters not allowed in a header value")}
	}

	// Set overwrites any previous value, so at most one Authorization
	// header goes out.
	req.Header.Set("Authorization", token)

	return next.Handle(ctx, req)
}

// Name implements Interceptor
func (i *AuthorizationInterceptor) Name() string {
	return "AuthorizationInterceptor"
}
