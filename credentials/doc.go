// Package credentials defines the token source contract used by the
// authorization interceptor and provides common implementations.
//
// A TokenSource supplies the complete Authorization header payload on demand,
// scheme prefix included (e.g. "Bearer eyJhb..."). Sources are expected to
// handle their own renewal, caching, and retry policy internally; callers
// invoke Token on every request and use whatever value comes back.
//
// Implementations provided:
//   - StaticTokenSource: a fixed value, useful for API keys and tests
//   - TokenSourceFunc: adapts a plain function into a TokenSource
//   - EnvTokenSource: reads an environment variable on every call
//   - FileTokenSource: re-reads a token file on every call, picking up
//     rotations performed by an external agent
//   - OAuth2TokenSource: adapts a golang.org/x/oauth2 TokenSource, which
//     owns token refresh and expiry tracking
//
// Custom sources only need the one method:
//
//	type vaultSource struct{ client *vault.Client }
//
//	func (s *vaultSource) Token(ctx context.Context) (string, error) {
//		secret, err := s.client.Read(ctx, "auth/token")
//		if err != nil {
//			return "", err
//		}
//		return "Bearer " + secret.Token, nil
//	}
//
// All implementations in this package are safe for concurrent use.
package credentials
