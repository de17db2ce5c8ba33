package auth

import (
	"context"
	"strconv"
	"strings"
	"time"

	"storerating/internal/cache"
)

const loginFailureKeyPrefix = "login_failures:"

// Counter is the subset of cache.Client the throttle needs.
type Counter interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Delete(ctx context.Context, key string) error
}

var _ Counter = (*cache.Client)(nil)

// LoginThrottleInterface defines the operations the auth service relies on.
type LoginThrottleInterface interface {
	Locked(ctx context.Context, email string) bool
	RecordFailure(ctx context.Context, email string)
	Reset(ctx context.Context, email string)
}

// LoginThrottle locks an email out after maxAttempts consecutive failures within
// window. It fails open: when the counter store is down nobody is locked out.
type LoginThrottle struct {
	counter     Counter
	maxAttempts int
	window      time.Duration
}

// Ensure LoginThrottle implements LoginThrottleInterface
var _ LoginThrottleInterface = (*LoginThrottle)(nil)

// NewLoginThrottle creates a throttle. maxAttempts <= 0 disables it.
func NewLoginThrottle(counter Counter, maxAttempts int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{counter: counter, maxAttempts: maxAttempts, window: window}
}

func (t *LoginThrottle) key(email string) string {
	return loginFailureKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Locked reports whether email has used up its failed attempts.
func (t *LoginThrottle) Locked(ctx context.Context, email string) bool {
	if t == nil || t.counter == nil || t.maxAttempts <= 0 {
		return false
	}
	data, err := t.counter.Get(ctx, t.key(email))
	if err != nil || data == nil {
		return false
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return false
	}
	return n >= t.maxAttempts
}

// RecordFailure counts one failed login.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) {
	if t == nil || t.counter == nil || t.maxAttempts <= 0 {
		return
	}
	_, _ = t.counter.Incr(ctx, t.key(email), t.window)
}

// Reset clears the failure count after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) {
	if t == nil || t.counter == nil {
		return
	}
	_ = t.counter.Delete(ctx, t.key(email))
}
