package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/bondspire/intake-api/internal/config"
)

// MsgRateLimited is returned once a client exhausts its intake budget.
const MsgRateLimited = "Too many submissions. Please wait a moment and try again."

// maxTrackedClients bounds the limiter table. Idle buckets are pruned first; the table is only
// reset when every tracked client is still mid-budget.
const maxTrackedClients = 10000

// IntakeRateLimiter applies a per-client token bucket to the given route paths. Other routes
// pass through untouched. A zero config disables limiting. The client is c.RealIP, so the echo
// instance must carry an IPExtractor (see ClientIPExtractor) or forwarding headers are trusted.
func IntakeRateLimiter(cfg config.RateLimitConfig, paths ...string) echo.MiddlewareFunc {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return next(c)
			}
		}
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}

	limited := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		limited[p] = struct{}{}
	}

	var mu sync.Mutex
	clients := make(map[string]*rate.Limiter)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := limited[c.Path()]; !ok || c.Request().Method != http.MethodPost {
				return next(c)
			}

			key := clientKey(c.RealIP())
			mu.Lock()
			limiter, ok := clients[key]
			if !ok {
				if len(clients) >= maxTrackedClients {
					pruneIdle(clients, cfg.Requests)
				}
				if len(clients) >= maxTrackedClients {
					clients = make(map[string]*rate.Limiter)
				}
				limiter = rate.NewLimiter(rate.Every(perRequest), cfg.Requests)
				clients[key] = limiter
			}
			allowed := limiter.Allow()
			mu.Unlock()

			if !allowed {
				return deny(c, http.StatusTooManyRequests, MsgRateLimited)
			}

			return next(c)
		}
	}
}

// clientKey groups IPv6 clients by their /64, the usual per-subscriber allocation.
func clientKey(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil || parsed.To4() != nil {
		return ip
	}
	return parsed.Mask(net.CIDRMask(64, 128)).String() + "/64"
}

// pruneIdle drops buckets that have refilled completely; they behave exactly like new ones.
func pruneIdle(clients map[string]*rate.Limiter, burst int) {
	for key, limiter := range clients {
		if limiter.Tokens() >= float64(burst) {
			delete(clients, key)
		}
	}
}
