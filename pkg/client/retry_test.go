package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fastRetry keeps backoff short enough for unit tests.
func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    10 * time.Millisecond,
		MaxBackoff:        100 * time.Millisecond,
		BackoffMultiplier: 2.0,
		RateLimitFactor:   5.0,
	}
}

func serverErr() error {
	return &APIError{StatusCode: 503, ErrorClass: ErrorClassServer, Message: "unavailable"}
}

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	if config.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", config.MaxAttempts)
	}
	if config.InitialBackoff != 1*time.Second {
		t.Errorf("InitialBackoff = %v, want 1s", config.InitialBackoff)
	}
	if config.MaxBackoff != 30*time.Second {
		t.Errorf("MaxBackoff = %v, want 30s", config.MaxBackoff)
	}
	if config.BackoffMultiplier != 2.0 {
		t.Errorf("BackoffMultiplier = %v, want 2.0", config.BackoffMultiplier)
	}
}

func TestRetryConfig_Normalize(t *testing.T) {
	got := RetryConfig{}.normalize()
	want := DefaultRetryConfig()
	want.RateLimitFactor = 1

	if got != want {
		t.Errorf("normalize() = %+v, want %+v", got, want)
	}
}

func TestRetryConfig_BackoffFor(t *testing.T) {
	config := fastRetry()

	tests := []struct {
		name    string
		attempt int
		class   ErrorClass
		want    time.Duration
	}{
		{"first server retry", 1, ErrorClassServer, 10 * time.Millisecond},
		{"second server retry", 2, ErrorClassServer, 20 * time.Millisecond},
		{"third server retry", 3, ErrorClassServer, 40 * time.Millisecond},
		{"rate limit scaled", 1, ErrorClassRateLimit, 50 * time.Millisecond},
		{"rate limit capped", 2, ErrorClassRateLimit, 100 * time.Millisecond},
		{"capped at max", 10, ErrorClassNetwork, 100 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := config.backoffFor(tt.attempt, tt.class); got != tt.want {
				t.Errorf("backoffFor(%d, %q) = %v, want %v", tt.attempt, tt.class, got, tt.want)
			}
		})
	}
}

func TestRetryWithBackoff_Success(t *testing.T) {
	callCount := 0
	err := retryWithBackoff(context.Background(), fastRetry(), zerolog.Nop(), func() error {
		callCount++
		return nil
	})

	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("Expected 1 call, got %d", callCount)
	}
}

func TestRetryWithBackoff_SuccessAfterRetry(t *testing.T) {
	callCount := 0
	err := retryWithBackoff(context.Background(), fastRetry(), zerolog.Nop(), func() error {
		callCount++
		if callCount < 3 {
			return serverErr()
		}
		return nil
	})

	if err != nil {
		t.Errorf("Expected success after retry, got %v", err)
	}
	if callCount != 3 {
		t.Errorf("Expected 3 calls, got %d", callCount)
	}
}

func TestRetryWithBackoff_MaxAttemptsExhausted(t *testing.T) {
	callCount := 0
	err := retryWithBackoff(context.Background(), fastRetry(), zerolog.Nop(), func() error {
		callCount++
		return serverErr()
	})

	if !errors.Is(err, ErrRetryExhausted) {
		t.Errorf("Expected ErrRetryExhausted, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 503 {
		t.Errorf("Expected wrapped *APIError with status 503, got %v", err)
	}
	if callCount != 3 {
		t.Errorf("Expected 3 calls, got %d", callCount)
	}
}

func TestRetryWithBackoff_ClientErrorNoRetry(t *testing.T) {
	callCount := 0
	clientErr := &APIError{StatusCode: 400, ErrorClass: ErrorClassClient}
	err := retryWithBackoff(context.Background(), fastRetry(), zerolog.Nop(), func() error {
		callCount++
		return clientErr
	})

	if !errors.Is(err, clientErr) {
		t.Errorf("Expected the client error back, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("Expected 1 call (no retry), got %d", callCount)
	}
}

func TestRetryWithBackoff_UnclassifiedErrorNoRetry(t *testing.T) {
	callCount := 0
	err := retryWithBackoff(context.Background(), fastRetry(), zerolog.Nop(), func() error {
		callCount++
		return errors.New("boom")
	})

	if err == nil || errors.Is(err, ErrRetryExhausted) {
		t.Errorf("Expected plain error, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("Expected 1 call, got %d", callCount)
	}
}

func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	config := fastRetry()
	config.InitialBackoff = time.Second
	config.MaxBackoff = time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	callCount := 0
	err := retryWithBackoff(ctx, config, zerolog.Nop(), func() error {
		callCount++
		return serverErr()
	})

	if !errors.Is(err, ErrContextCancelled) {
		t.Errorf("Expected ErrContextCancelled, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected wrapped DeadlineExceeded, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("Expected 1 call before cancellation, got %d", callCount)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Cancellation took too long: %v", elapsed)
	}
}

func TestRetryWithBackoff_RateLimitLongerBackoff(t *testing.T) {
	config := fastRetry()
	config.MaxAttempts = 2

	start := time.Now()
	_ = retryWithBackoff(context.Background(), config, zerolog.Nop(), func() error {
		return &APIError{StatusCode: 429, ErrorClass: ErrorClassRateLimit}
	})
	elapsed := time.Since(start)

	// one backoff of 50ms ±20%
	if elapsed < 40*time.Millisecond {
		t.Errorf("Rate limit backoff too short: %v", elapsed)
	}
}

func TestRetryWithBackoff_Jitter(t *testing.T) {
	config := fastRetry()
	config.MaxAttempts = 2
	config.InitialBackoff = 50 * time.Millisecond

	for i := 0; i < 3; i++ {
		start := time.Now()
		_ = retryWithBackoff(context.Background(), config, zerolog.Nop(), serverErr)
		elapsed := time.Since(start)

		if elapsed < 40*time.Millisecond || elapsed > 200*time.Millisecond {
			t.Errorf("backoff %v outside jitter range", elapsed)
		}
	}
}
