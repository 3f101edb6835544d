package ratelimit

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestParseHeaders(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name            string
		remainHeader    string
		resetHeader     string
		wantOK          bool
		wantErr         bool
		expectedRemain  int
		expectedHealthy bool
	}{
		{
			name:            "healthy state",
			remainHeader:    "100",
			resetHeader:     "60",
			wantOK:          true,
			expectedRemain:  100,
			expectedHealthy: true,
		},
		{
			name:           "warning state",
			remainHeader:   "15",
			resetHeader:    "30",
			wantOK:         true,
			expectedRemain: 15,
		},
		{
			name:            "at healthy threshold",
			remainHeader:    "50",
			resetHeader:     "60",
			wantOK:          true,
			expectedRemain:  50,
			expectedHealthy: true,
		},
		{
			name:        "missing headers",
			resetHeader: "60",
		},
		{
			name:         "invalid remain header",
			remainHeader: "invalid",
			resetHeader:  "60",
			wantErr:      true,
		},
		{
			name:         "missing reset header",
			remainHeader: "10",
			wantErr:      true,
		},
		{
			name:         "invalid reset header",
			remainHeader: "10",
			resetHeader:  "soon",
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := http.Header{}
			if tt.remainHeader != "" {
				headers.Set(HeaderRemaining, tt.remainHeader)
			}
			if tt.resetHeader != "" {
				headers.Set(HeaderReset, tt.resetHeader)
			}

			state, ok, err := ParseHeaders(headers, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHeaders() error = %v, wantErr %v", err, tt.wantErr)
			}
			if ok != tt.wantOK {
				t.Fatalf("ParseHeaders() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}

			if state.Remaining != tt.expectedRemain {
				t.Errorf("Remaining = %d, want %d", state.Remaining, tt.expectedRemain)
			}
			if state.IsHealthy != tt.expectedHealthy {
				t.Errorf("IsHealthy = %v, want %v", state.IsHealthy, tt.expectedHealthy)
			}
			if !state.LastUpdate.Equal(now) {
				t.Errorf("LastUpdate = %v, want %v", state.LastUpdate, now)
			}
		})
	}
}

func TestUpdateFromHeaders_NoHeaders(t *testing.T) {
	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	tracker := NewTracker(nil, logger)

	// Without headers Redis is never touched, so a nil client is fine.
	if err := tracker.UpdateFromHeaders(context.Background(), http.Header{}); err != nil {
		t.Errorf("UpdateFromHeaders() error = %v, want nil", err)
	}
}

func TestUpdateFromHeaders_InvalidHeaders(t *testing.T) {
	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	tracker := NewTracker(nil, logger)

	headers := http.Header{}
	headers.Set(HeaderRemaining, "many")
	headers.Set(HeaderReset, "60")

	if err := tracker.UpdateFromHeaders(context.Background(), headers); err == nil {
		t.Error("UpdateFromHeaders() expected error for invalid header")
	}
}

func TestTracker_StateRoundTrip(t *testing.T) {
	client := setupTestRedis(t)
	tracker := NewTracker(client, zerolog.Nop())
	ctx := context.Background()

	state, err := tracker.GetState(ctx)
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	if !state.IsHealthy {
		t.Error("Default state should be healthy")
	}

	headers := http.Header{}
	headers.Set(HeaderRemaining, "12")
	headers.Set(HeaderReset, "30")
	if err := tracker.UpdateFromHeaders(ctx, headers); err != nil {
		t.Fatalf("UpdateFromHeaders() error = %v", err)
	}

	state, err = tracker.GetState(ctx)
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	if state.Remaining != 12 {
		t.Errorf("Remaining = %d, want 12", state.Remaining)
	}
	if !state.NeedsThrottling() {
		t.Error("Expected throttling state")
	}
	if state.IsStale(time.Minute) {
		t.Error("Freshly stored state reported as stale")
	}
}

func TestTracker_ShouldAllowRequest(t *testing.T) {
	client := setupTestRedis(t)
	tracker := NewTracker(client, zerolog.Nop())
	ctx := context.Background()

	allowed, err := tracker.ShouldAllowRequest(ctx)
	if err != nil || !allowed {
		t.Fatalf("ShouldAllowRequest() = %v, %v; want true, nil", allowed, err)
	}

	headers := http.Header{}
	headers.Set(HeaderRemaining, "2")
	headers.Set(HeaderReset, "60")
	if err := tracker.UpdateFromHeaders(ctx, headers); err != nil {
		t.Fatalf("UpdateFromHeaders() error = %v", err)
	}

	allowed, err = tracker.ShouldAllowRequest(ctx)
	if err != nil {
		t.Fatalf("ShouldAllowRequest() error = %v", err)
	}
	if allowed {
		t.Error("Expected request to be blocked at critical budget")
	}
}

func TestTracker_ShouldAllowRequest_ThrottleHonoursContext(t *testing.T) {
	client := setupTestRedis(t)
	tracker := NewTracker(client, zerolog.Nop())

	headers := http.Header{}
	headers.Set(HeaderRemaining, "10")
	headers.Set(HeaderReset, "60")
	if err := tracker.UpdateFromHeaders(context.Background(), headers); err != nil {
		t.Fatalf("UpdateFromHeaders() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	allowed, err := tracker.ShouldAllowRequest(ctx)
	if err == nil || allowed {
		t.Errorf("ShouldAllowRequest() = %v, %v; want false, context error", allowed, err)
	}
	if elapsed := time.Since(start); elapsed >= ThrottleDelay {
		t.Errorf("throttle ignored context cancellation, took %v", elapsed)
	}
}
