package mid

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/babybtc/quantlab/business/sys/metrics"
	"github.com/babybtc/quantlab/business/web/errs"
	"github.com/babybtc/quantlab/foundation/web"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned when a client exceeds its request budget.
var ErrRateLimited = errors.New("too many requests")

// RateLimit rejects requests once a client exceeds perSecond requests with
// the specified burst. Clients are keyed by remote IP. A non-positive rate
// disables the limiter.
func RateLimit(perSecond float64, burst int, mtr *metrics.Metrics) web.Middleware {
	set := newLimiterSet(perSecond, burst, time.Now)

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {
		if perSecond <= 0 {
			return handler
		}

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if !set.limiter(clientIP(r)).Allow() {
				if mtr != nil {
					mtr.RateLimited.Inc()
				}
				return errs.NewTrusted(ErrRateLimited, http.StatusTooManyRequests)
			}

			// Call the next handler.
			return handler(ctx, w, r)
		}

		return h
	}

	return m
}

// =============================================================================

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet holds a limiter per client. Clients idle for longer than the
// ttl are swept, at which point their bucket has refilled and a fresh
// limiter behaves the same.
type limiterSet struct {
	mu        sync.Mutex
	perSecond float64
	burst     int
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
	clients   map[string]*client
}

func newLimiterSet(perSecond float64, burst int, now func() time.Time) *limiterSet {
	ttl := time.Minute
	if perSecond > 0 {
		if refill := time.Duration(float64(burst) / perSecond * float64(time.Second)); refill > ttl {
			ttl = refill
		}
	}

	return &limiterSet{
		perSecond: perSecond,
		burst:     burst,
		ttl:       ttl,
		now:       now,
		lastSweep: now(),
		clients:   make(map[string]*client),
	}
}

// limiter returns the limiter for the key, sweeping idle clients at most
// once per ttl.
func (ls *limiterSet) limiter(key string) *rate.Limiter {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	now := ls.now()

	if now.Sub(ls.lastSweep) >= ls.ttl {
		for k, c := range ls.clients {
			if now.Sub(c.lastSeen) >= ls.ttl {
				delete(ls.clients, k)
			}
		}
		ls.lastSweep = now
	}

	c, exists := ls.clients[key]
	if !exists {
		c = &client{limiter: rate.NewLimiter(rate.Limit(ls.perSecond), ls.burst)}
		ls.clients[key] = c
	}
	c.lastSeen = now

	return c.limiter
}

// clientIP returns the host part of the remote address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
