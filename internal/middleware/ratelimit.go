package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/karlseguin/ccache/v3"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/octobees/estate-listings/api/internal/config"
)

// RateLimiter hands every client IP its own token bucket. Buckets are kept in
// a bounded LRU and dropped once idle for a full interval.
type RateLimiter struct {
	cfg      config.RateLimitConfig
	every    rate.Limit
	limiters *ccache.Cache[*rate.Limiter]
}

// NewRateLimiter builds a limiter tracking at most maxClients addresses.
func NewRateLimiter(cfg config.RateLimitConfig, maxClients int64) *RateLimiter {
	if maxClients <= 0 {
		maxClients = 10000
	}
	rl := &RateLimiter{cfg: cfg}
	if cfg.Requests > 0 && cfg.Interval > 0 {
		perRequest := cfg.Interval / time.Duration(cfg.Requests)
		if perRequest <= 0 {
			perRequest = time.Second
		}
		rl.every = rate.Every(perRequest)
		rl.limiters = ccache.New(ccache.Configure[*rate.Limiter]().MaxSize(maxClients))
	}
	return rl
}

// Middleware rejects requests beyond the client's budget with 429.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rl.limiters == nil {
				return next(c)
			}

			item, err := rl.limiters.Fetch(c.RealIP(), rl.cfg.Interval, func() (*rate.Limiter, error) {
				return rate.NewLimiter(rl.every, rl.cfg.Requests), nil
			})
			if err != nil {
				return next(c)
			}
			item.Extend(rl.cfg.Interval)

			limiter := item.Value()
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.cfg.Requests))
			if !limiter.Allow() {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(rl.cfg.Interval.Seconds())))
				return c.JSON(http.StatusTooManyRequests, errorBody("too many requests, please try again later"))
			}
			return next(c)
		}
	}
}

// Stop releases the background cache worker.
func (rl *RateLimiter) Stop() {
	if rl.limiters != nil {
		rl.limiters.Stop()
	}
}
