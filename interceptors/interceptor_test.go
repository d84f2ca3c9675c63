package interceptors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/glimte/httpmate-go/credentials"
)

// Mock handler
type mockHandler struct {
	mock.Mock
}

func (m *mockHandler) Handle(ctx context.Context, req *http.Request) (*http.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func okResponse() *http.Response {
	return &http.Response{StatusCode: http.StatusOK}
}

func TestChain(t *testing.T) {
	t.Run("NewChain creates empty chain", func(t *testing.T) {
		logger := slog.Default()
		chain := NewChain(logger)

		assert.NotNil(t, chain)
		assert.Equal(t, logger, chain.logger)
		assert.Empty(t, chain.interceptors)
	})

	t.Run("Add adds interceptor to chain", func(t *testing.T) {
		chain := NewChain(nil)
		interceptor := NewLoggingInterceptor(nil)

		result := chain.Add(interceptor)

		assert.Equal(t, chain, result) // Fluent interface
		assert.Len(t, chain.interceptors, 1)
	})

	t.Run("Execute calls final handler when no interceptors", func(t *testing.T) {
		chain := NewChain(nil)
		handler := &mockHandler{}
		req := newTestRequest(t)

		handler.On("Handle", mock.Anything, req).Return(okResponse(), nil)

		resp, err := chain.Execute(context.Background(), req, handler)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		handler.AssertExpectations(t)
	})

	t.Run("Execute runs interceptors in order", func(t *testing.T) {
		var order []string
		record := func(name string) Interceptor {
			return NewInterceptorFunc(name, func(ctx context.Context, req *http.Request, next Handler) (*http.Response, error) {
				order = append(order, name+":before")
				resp, err := next.Handle(ctx, req)
				order = append(order, name+":after")
				return resp, err
			})
		}

		chain := NewChain(nil).Add(record("outer")).Add(record("inner"))

		resp, err := chain.Execute(context.Background(), newTestRequest(t), HandlerFunc(func(ctx context.Context, req *http.Request) (*http.Response, error) {
			order = append(order, "dispatch")
			return okResponse(), nil
		}))

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, []string{"outer:before", "inner:before", "dispatch", "inner:after", "outer:after"}, order)
	})

	t.Run("Execute stops at a short-circuiting interceptor", func(t *testing.T) {
		boom := errors.New("denied")
		chain := NewChain(nil).Add(NewInterceptorFunc("deny", func(ctx context.Context, req *http.Request, next Handler) (*http.Response, error) {
			return nil, boom
		}))

		handler := &mockHandler{}

		resp, err := chain.Execute(context.Background(), newTestRequest(t), handler)

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, boom)
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestInterceptorFunc(t *testing.T) {
	t.Run("adapts a function and reports its name", func(t *testing.T) {
		called := false
		interceptor := NewInterceptorFunc("custom", func(ctx context.Context, req *http.Request, next Handler) (*http.Response, error) {
			called = true
			return next.Handle(ctx, req)
		})

		handler := &mockHandler{}
		req := newTestRequest(t)
		handler.On("Handle", mock.Anything, req).Return(okResponse(), nil)

		_, err := interceptor.Intercept(context.Background(), req, handler)

		assert.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, "custom", interceptor.Name())
	})
}

func TestLoggingInterceptor(t *testing.T) {
	t.Run("passes result through on success", func(t *testing.T) {
		interceptor := NewLoggingInterceptor(slog.Default())
		handler := &mockHandler{}
		req := newTestRequest(t)
		handler.On("Handle", mock.Anything, req).Return(okResponse(), nil)

		resp, err := interceptor.Intercept(context.Background(), req, handler)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		handler.AssertExpectations(t)
	})

	t.Run("passes error through on failure", func(t *testing.T) {
		interceptor := NewLoggingInterceptor(nil)
		handler := &mockHandler{}
		req := newTestRequest(t)
		boom := errors.New("dial tcp: connection refused")
		handler.On("Handle", mock.Anything, req).Return(nil, boom)

		resp, err := interceptor.Intercept(context.Background(), req, handler)

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, boom)
	})
}

func TestHeaderInterceptor(t *testing.T) {
	t.Run("applies default headers", func(t *testing.T) {
		defaults := http.Header{}
		defaults.Set("User-Agent", "httpmate/1.0")
		defaults.Set("Accept", "application/json")
		interceptor := NewHeaderInterceptor(defaults)

		req := newTestRequest(t)
		handler := &mockHandler{}
		handler.On("Handle", mock.Anything, req).Return(okResponse(), nil)

		_, err := interceptor.Intercept(context.Background(), req, handler)

		assert.NoError(t, err)
		assert.Equal(t, "httpmate/1.0", req.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", req.Header.Get("Accept"))
	})

	t.Run("does not overwrite headers already set", func(t *testing.T) {
		defaults := http.Header{}
		defaults.Set("Accept", "application/json")
		interceptor := NewHeaderInterceptor(defaults)

		req := newTestRequest(t)
		req.Header.Set("Accept", "text/plain")
		handler := &mockHandler{}
		handler.On("Handle", mock.Anything, req).Return(okResponse(), nil)

		_, err := interceptor.Intercept(context.Background(), req, handler)

		assert.NoError(t, err)
		assert.Equal(t, "text/plain", req.Header.Get("Accept"))
	})
}

func TestTimeoutInterceptor(t *testing.T) {
	t.Run("propagates a deadline to the handler", func(t *testing.T) {
		interceptor := NewTimeoutInterceptor(time.Minute)

		var sawDeadline bool
		_, err := interceptor.Intercept(context.Background(), newTestRequest(t), HandlerFunc(func(ctx context.Context, req *http.Request) (*http.Response, error) {
			_, sawDeadline = ctx.Deadline()
			return okResponse(), nil
		}))

		assert.NoError(t, err)
		assert.True(t, sawDeadline)
	})

	t.Run("handler observes cancellation after the timeout", func(t *testing.T) {
		interceptor := NewTimeoutInterceptor(10 * time.Millisecond)

		_, err := interceptor.Intercept(context.Background(), newTestRequest(t), HandlerFunc(func(ctx context.Context, req *http.Request) (*http.Response, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}))

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestChainBuilder(t *testing.T) {
	t.Run("builds chain with configured interceptors", func(t *testing.T) {
		chain := NewChainBuilder(slog.Default()).
			WithLogging().
			WithRequestID().
			WithAuthorization(credentials.NewStaticTokenSource("Bearer built")).
			Build()

		require.Len(t, chain.interceptors, 3)
		assert.Equal(t, "LoggingInterceptor", chain.interceptors[0].Name())
		assert.Equal(t, "RequestIDInterceptor", chain.interceptors[1].Name())
		assert.Equal(t, "AuthorizationInterceptor", chain.interceptors[2].Name())
	})

	t.Run("built chain applies authorization and request ID", func(t *testing.T) {
		chain := NewChainBuilder(nil).
			WithRequestID().
			WithAuthorization(credentials.NewStaticTokenSource("Bearer built")).
			Build()

		req := newTestRequest(t)
		resp, err := chain.Execute(context.Background(), req, HandlerFunc(func(ctx context.Context, req *http.Request) (*http.Response, error) {
			return okResponse(), nil
		}))

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Bearer built", req.Header.Get("Authorization"))
		assert.NotEmpty(t, req.Header.Get(DefaultRequestIDHeader))
	})

	t.Run("WithCustom appends a custom interceptor", func(t *testing.T) {
		custom := NewInterceptorFunc("custom", func(ctx context.Context, req *http.Request, next Handler) (*http.Response, error) {
			return next.Handle(ctx, req)
		})

		chain := NewChainBuilder(nil).WithCustom(custom).Build()

		require.Len(t, chain.interceptors, 1)
		assert.Equal(t, "custom", chain.interceptors[0].Name())
	})
}
