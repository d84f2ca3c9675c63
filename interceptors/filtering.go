package interceptors

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// RequestFilter defines the interface for request matching
type RequestFilter interface {
	// Matches returns true if the request should be processed
	Matches(ctx context.Context, req *http.Request) (bool, error)
}

// RequestFilterFunc is a function adapter for RequestFilter
type RequestFilterFunc func(ctx context.Context, req *http.Request) (bool, error)

// Matches implements RequestFilter
func (f RequestFilterFunc) Matches(ctx context.Context, req *http.Request) (bool, error) {
	return f(ctx, req)
}

// ScopeInterceptor applies a wrapped interceptor only to matching requests;
// everything else continues down the chain untouched. Its main use is
// scoping the authorization interceptor to trusted hosts so credentials are
// never attached to requests leaving that set.
type ScopeInterceptor struct {
	filter  RequestFilter
	wrapped Interceptor
}

// NewScopeInterceptor creates an interceptor that applies wrapped only to
// requests matched by filter
func NewScopeInterceptor(filter RequestFilter, wrapped Interceptor) *ScopeInterceptor {
	return &ScopeInterceptor{
		filter:  filter,
		wrapped: wrapped,
	}
}

// Intercept implements Interceptor
func (i *ScopeInterceptor) Intercept(ctx context.Context, req *http.Request, next Handler) (*http.Response, error) {
	matches, err := i.filter.Matches(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("request filter error: %w", err)
	}

	if !matches {
		return next.Handle(ctx, req)
	}

	return i.wrapped.Intercept(ctx, req, next)
}

// Name implements Interceptor
func (i *ScopeInterceptor) Name() string {
	return "ScopeInterceptor(" + i.wrapped.Name() + ")"
}

// HostFilter matches requests whose URL host is in the allowed set. A leading
// "*." allows a domain and all of its subdomains.
type HostFilter struct {
	hosts []string
}

// NewHostFilter creates a filter matching the given hosts
func NewHostFilter(hosts ...string) *HostFilter {
	return &HostFilter{hosts: hosts}
}

// Matches implements RequestFilter
func (f *HostFilter) Matches(ctx context.Context, req *http.Request) (bool, error) {
	host := req.URL.Hostname()
	for _, allowed := range f.hosts {
		if suffix, ok := strings.CutPrefix(allowed, "*."); ok {
			if host == suffix || strings.HasSuffix(host, "."+suffix) {
				return true, nil
			}
			continue
		}
		if host == allowed {
			return true, nil
		}
	}
	return false, nil
}

// CompositeFilter combines multiple filters with AND logic
type CompositeFilter struct {
	filters []RequestFilter
}

// NewCompositeFilter creates a new composite filter
func NewCompositeFilter(filters ...RequestFilter) *CompositeFilter {
	return &CompositeFilter{filters: filters}
}

// Matches implements RequestFilter - all filters must match
func (f *CompositeFilter) Matches(ctx context.Context, req *http.Request) (bool, error) {
	for _, filter := range f.filters {
		matches, err := filter.Matches(ctx, req)
		if err != nil {
			return false, err
		}
		if !matches {
			return false, nil
		}
	}
	return true, nil
}

// MethodFilter matches requests by HTTP method
type MethodFilter struct {
	methods map[string]struct{}
}

// NewMethodFilter creates a filter matching the given methods
func NewMethodFilter(methods ...string) *MethodFilter {
	set := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		set[strings.ToUpper(m)] = struct{}{}
	}
	return &MethodFilter{methods: set}
}

// Matches implements RequestFilter
func (f *MethodFilter) Matches(ctx context.Context, req *http.Request) (bool, error) {
	_, ok := f.methods[strings.ToUpper(req.Method)]
	return ok, nil
}
