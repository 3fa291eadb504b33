package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// LoginRateLimiter limits login attempts per client IP within a window
type LoginRateLimiter struct {
	attempts    map[string][]time.Time
	mutex       sync.Mutex
	maxAttempts int
	window      time.Duration
	now         func() time.Time
	done        chan struct{}
	stopOnce    sync.Once
}

// NewLoginRateLimiter creates a limiter and starts its cleanup loop. Call
// Stop to end the loop.
func NewLoginRateLimiter(maxAttempts int, window time.Duration) *LoginRateLimiter {
	rl := &LoginRateLimiter{
		attempts:    make(map[string][]time.Time),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
		done:        make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Stop ends the cleanup loop
func (rl *LoginRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// IsAllowed reports whether another attempt from ip is within the limit
func (rl *LoginRateLimiter) IsAllowed(ip string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	valid := rl.prune(ip)
	return len(valid) < rl.maxAttempts
}

// RecordAttempt records a login attempt for the given IP
func (rl *LoginRateLimiter) RecordAttempt(ip string) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	rl.attempts[ip] = append(rl.prune(ip), rl.now())
}

// RetryAfter returns how long until ip may try again, 0 if it may now
func (rl *LoginRateLimiter) RetryAfter(ip string) time.Duration {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	valid := rl.prune(ip)
	if len(valid) < rl.maxAttempts {
		return 0
	}
	return valid[0].Add(rl.window).Sub(rl.now())
}

// prune drops attempts older than the window. Callers hold the mutex.
func (rl *LoginRateLimiter) prune(ip string) []time.Time {
	cutoff := rl.now().Add(-rl.window)

	var valid []time.Time
	for _, attempt := range rl.attempts[ip] {
		if attempt.After(cutoff) {
			valid = append(valid, attempt)
		}
	}

	if len(valid) == 0 {
		delete(rl.attempts, ip)
	} else {
		rl.attempts[ip] = valid
	}
	return valid
}

func (rl *LoginRateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mutex.Lock()
			for ip := range rl.attempts {
				rl.prune(ip)
			}
			rl.mutex.Unlock()
		}
	}
}

// LoginRateLimit rejects POSTs from clients over the limit with 429
func LoginRateLimit(rateLimiter *LoginRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := getClientIP(r)

			if !rateLimiter.IsAllowed(ip) {
				retry := rateLimiter.RetryAfter(ip)
				w.Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
				writeJSONError(w, http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
				return
			}

			rateLimiter.RecordAttempt(ip)
			next.ServeHTTP(w, r)
		})
	}
}
