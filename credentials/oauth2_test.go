package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
)

type fakeOAuth2Source struct {
	token *oauth2.Token
	err   error
}

func (f *fakeOAuth2Source) Token() (*oauth2.Token, error) {
	return f.token, f.err
}

func TestOAuth2TokenSource(t *testing.T) {
	t.Run("formats token type and access token", func(t *testing.T) {
		source := NewOAuth2TokenSource(&fakeOAuth2Source{
			token: &oauth2.Token{AccessToken: "abc123", TokenType: "Bearer"},
		})

		token, err := source.Token(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "Bearer abc123", token)
	})

	t.Run("defaults to Bearer when token type is empty", func(t *testing.T) {
		source := NewOAuth2TokenSource(&fakeOAuth2Source{
			token: &oauth2.Token{AccessToken: "abc123"},
		})

		token, err := source.Token(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "Bearer abc123", token)
	})

	t.Run("wraps errors from the underlying source", func(t *testing.T) {
		refreshErr := errors.New("refresh failed")
		source := NewOAuth2TokenSource(&fakeOAuth2Source{err: refreshErr})

		_, err := source.Token(context.Background())

		assert.ErrorIs(t, err, refreshErr)
		assert.Contains(t, err.Error(), "oauth2 token source")
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		source := NewOAuth2TokenSource(&fakeOAuth2Source{
			token: &oauth2.Token{AccessToken: "abc123"},
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := source.Token(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
