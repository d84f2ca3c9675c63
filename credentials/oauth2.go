package credentials

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// OAuth2TokenSource adapts a golang.org/x/oauth2 token source. Refresh and
// expiry tracking stay with the oauth2 package (wrap with
// oauth2.ReuseTokenSource for caching); this adapter only formats the
// current token as a header payload.
type OAuth2TokenSource struct {
	source oauth2.TokenSource
}

// NewOAuth2TokenSource creates a token source backed by src
func NewOAuth2TokenSource(src oauth2.TokenSource) *OAuth2TokenSource {
	return &OAuth2TokenSource{source: src}
}

// Token implements TokenSource
func (s *OAuth2TokenSource) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tok, err := s.source.Token()
	if err != nil {
		return "", fmt.Errorf("oauth2 token source: %w", err)
	}

	// Type defaults to Bearer when the provider response omitted token_type.
	return tok.Type() + " " + tok.AccessToken, nil
}
