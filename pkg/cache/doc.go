// Package cache stores reference API responses in Redis so repeated report
// runs do not refetch province and city lists that have not changed.
//
// The cache manager provides:
//
// - Freshness from the Cache-Control max-age or Expires response headers
// - Stale entries kept for a grace window so they can be revalidated
// - ETag (If-None-Match) and Last-Modified (If-Modified-Since) revalidation
// - Prometheus metrics for observability
// - Deterministic cache key generation
//
// # Basic Usage
//
//	manager := cache.NewManager(redisClient, cache.DefaultConfig())
//
//	key := cache.CacheKey{
//		Host:     "api.example.com",
//		Endpoint: "/provinces",
//	}
//
//	entry, err := manager.Get(ctx, key)
//	switch {
//	case errors.Is(err, cache.ErrCacheMiss):
//		// fetch from the API
//	case !entry.IsExpired():
//		// serve cache.EntryToResponse(entry)
//	default:
//		cache.AddConditionalHeaders(req, entry)
//		// 304 -> manager.Touch, 200 -> manager.Set
//	}
//
// # Metrics
//
//   - population_cache_hits_total{freshness} - Cache hits (fresh or stale)
//   - population_cache_misses_total - Cache misses
//   - population_cache_size_bytes - Bytes written to the cache
//   - population_cache_not_modified_total - Successful revalidations
//   - population_cache_errors_total{operation} - Cache operation errors
package cache
