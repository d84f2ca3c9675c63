// Package httpmate provides an HTTP client with a composable interceptor
// chain, built around filling in the Authorization header from a pluggable
// token source.
//
// The typical setup wires a token source into a client:
//
//	source := credentials.NewFileTokenSource("/var/run/secrets/token", "Bearer")
//
//	client := httpmate.NewClient(
//		httpmate.WithAuthorization(source),
//	)
//
//	resp, err := client.Get(ctx, "https://api.example.com/v1/items")
//
// Every request fetches the current token from the source before dispatch;
// the source decides whether that means returning a cached value or renewing.
// See the interceptors package for the chain machinery and the other
// built-in interceptors, and the credentials package for token sources.
//
// For code that already owns an *http.Client, Transport adapts a chain into
// an http.RoundTripper instead:
//
//	httpClient := &http.Client{
//		Transport: httpmate.NewTransport(nil, chain),
//	}
package httpmate
