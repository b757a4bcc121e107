package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/staynest/staynest-backend/pkg/clientip"
)

const (
	headerXContentTypeOptions     = "X-Content-Type-Options"
	headerXFrameOptions           = "X-Frame-Options"
	headerXXSSProtection          = "X-XSS-Protection"
	headerContentSecurityPolicy   = "Content-Security-Policy"
	headerStrictTransportSecurity = "Strict-Transport-Security"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerXContentTypeOptions, "nosniff")
		w.Header().Set(headerXFrameOptions, "DENY")
		w.Header().Set(headerXXSSProtection, "1; mode=block")
		w.Header().Set(headerContentSecurityPolicy, "default-src 'self'")
		w.Header().Set(headerStrictTransportSecurity, "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// --- Sign-in route rate limiting (1 req/5s, burst 2, per IP) ---

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

var (
	signInEntries    = make(map[string]*limiterEntry)
	signInEntriesMu  sync.Mutex
	signInCleanupRun bool
)

const (
	signInRateLimitEvery  = 5 * time.Second
	signInRateLimitBurst  = 2
	signInCleanupInterval = 5 * time.Minute
	signInLimiterTTL      = 30 * time.Minute
)

var signInPaths = map[string]bool{
	"/api/user/SignIn": true,
}

func getSignInLimiter(ip string) *rate.Limiter {
	signInEntriesMu.Lock()
	defer signInEntriesMu.Unlock()
	startSignInCleanupOnce()
	e, ok := signInEntries[ip]
	if !ok {
		e = &limiterEntry{
			limiter: rate.NewLimiter(rate.Every(signInRateLimitEvery), signInRateLimitBurst),
			lastUse: time.Now(),
		}
		signInEntries[ip] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

func startSignInCleanupOnce() {
	if signInCleanupRun {
		return
	}
	signInCleanupRun = true
	go func() {
		ticker := time.NewTicker(signInCleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			signInEntriesMu.Lock()
			now := time.Now()
			for ip, e := range signInEntries {
				if now.Sub(e.lastUse) > signInLimiterTTL {
					delete(signInEntries, ip)
				}
			}
			signInEntriesMu.Unlock()
		}
	}()
}

// SignInRateLimit applies a stricter limit to the sign-in route only.
// Use after RateLimit.
func SignInRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !signInPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}
		ip := clientip.RealClientIP(r)
		if !getSignInLimiter(ip).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"status":429,"message":"Too many login attempts. Please try again later."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
