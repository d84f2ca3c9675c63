package credentials

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// FileTokenSource reads a token file on every call. No caching is done here:
// projected service account tokens and similar mounts are rotated in place by
// an external agent, and re-reading keeps each request on the current value.
type FileTokenSource struct {
	path   string
	scheme string
}

// NewFileTokenSource creates a token source backed by the file at path. The
// scheme prefix ("Bearer") is prepended to the file contents; pass an empty
// scheme if the file already holds the full header payload.
func NewFileTokenSource(path, scheme string) *FileTokenSource {
	return &FileTokenSource{path: path, scheme: scheme}
}

// Token implements TokenSource
func (s *FileTokenSource) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}

	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", fmt.Errorf("token file %s is empty", s.path)
	}

	if s.scheme == "" {
		return value, nil
	}
	return s.scheme + " " + value, nil
}
