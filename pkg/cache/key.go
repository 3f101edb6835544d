package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// KeyPrefix prefixes every cache key.
const KeyPrefix = "population:ref"

// CacheKey identifies a cached reference API response.
type CacheKey struct {
	// Host is the API host (e.g., "api.example.com:8443").
	Host string

	// Endpoint is the request path (e.g., "/provinces").
	Endpoint string

	// QueryParams are the request query parameters.
	QueryParams url.Values
}

// String generates a deterministic cache key string.
// Format: population:ref:host:endpoint:query1=val1,val2:query2=val3
//
// Example:
//
//	population:ref:api.example.com:provinces:country=ca
func (k CacheKey) String() string {
	parts := []string{KeyPrefix}

	if k.Host != "" {
		parts = append(parts, strings.ToLower(k.Host))
	}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	// Query params sorted by name; values kept in request order.
	if len(k.QueryParams) > 0 {
		names := make([]string, 0, len(k.QueryParams))
		for name := range k.QueryParams {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s=%s", name, strings.Join(k.QueryParams[name], ",")))
		}
	}

	return strings.Join(parts, ":")
}

// KeyFromURL builds the cache key for a request URL.
func KeyFromURL(u *url.URL) CacheKey {
	return CacheKey{
		Host:        u.Host,
		Endpoint:    u.Path,
		QueryParams: u.Query(),
	}
}
