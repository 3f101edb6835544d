package cache

import (
	"time"
)

// Entry is a cached reference API response.
type Entry struct {
	// Body is the response body.
	Body []byte `json:"body"`

	// ContentType of the cached body.
	ContentType string `json:"content_type,omitempty"`

	// StatusCode of the cached response.
	StatusCode int `json:"status_code"`

	// ETag for If-None-Match revalidation.
	ETag string `json:"etag,omitempty"`

	// LastModified for If-Modified-Since revalidation.
	LastModified time.Time `json:"last_modified"`

	// Expires is when the entry stops being fresh.
	Expires time.Time `json:"expires"`

	// StoredAt is when the response was stored or last revalidated.
	StoredAt time.Time `json:"stored_at"`
}

// IsExpired returns true once the entry is no longer fresh. An expired entry
// may still be revalidated.
func (e *Entry) IsExpired() bool {
	return !time.Now().Before(e.Expires)
}

// TTL returns the remaining freshness, or 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}

// Age returns how long ago the entry was stored or revalidated.
func (e *Entry) Age() time.Duration {
	return time.Since(e.StoredAt)
}

// CanRevalidate reports whether a conditional request can be made for the
// entry.
func (e *Entry) CanRevalidate() bool {
	return e.ETag != "" || !e.LastModified.IsZero()
}
