package credentials

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTokenFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestFileTokenSource(t *testing.T) {
	t.Run("reads the file and prepends the scheme", func(t *testing.T) {
		path := writeTokenFile(t, "abc123\n")
		source := NewFileTokenSource(path, "Bearer")

		token, err := source.Token(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "Bearer abc123", token)
	})

	t.Run("empty scheme passes trimmed contents through", func(t *testing.T) {
		path := writeTokenFile(t, "  Bearer abc123  \n")
		source := NewFileTokenSource(path, "")

		token, err := source.Token(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "Bearer abc123", token)
	})

	t.Run("re-reads the file on every call", func(t *testing.T) {
		path := writeTokenFile(t, "v1")
		source := NewFileTokenSource(path, "Bearer")

		first, err := source.Token(context.Background())
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("v2"), 0o600))
		second, err := source.Token(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "Bearer v1", first)
		assert.Equal(t, "Bearer v2", second)
	})

	t.Run("fails when the file is missing", func(t *testing.T) {
		source := NewFileTokenSource(filepath.Join(t.TempDir(), "missing"), "Bearer")

		_, err := source.Token(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read token file")
	})

	t.Run("fails when the file is empty", func(t *testing.T) {
		path := writeTokenFile(t, "\n")
		source := NewFileTokenSource(path, "Bearer")

		_, err := source.Token(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		path := writeTokenFile(t, "abc123")
		source := NewFileTokenSource(path, "Bearer")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := source.Token(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
