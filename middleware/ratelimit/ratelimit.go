// Copyright 2026 The Strada Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ratelimit provides fixed-window rate limiting middleware.
// The counter lives behind the narrow Store contract so distributed
// backends (Redis and the like) can replace the bundled in-memory store;
// the store owns atomicity, window bucketing and stale-entry cleanup, the
// middleware only enforces the limit.
package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/strada-dev/strada"
)

// KeyFunc derives the rate limit key for a request, e.g. per client IP or
// per authenticated user.
type KeyFunc func(*strada.Context) string

// Store is the counter contract the middleware enforces limits against.
// Implementations must be safe for concurrent use and own their window
// semantics: Increment returns the count of the key within the current
// window, including this increment.
type Store interface {
	Increment(key string) (int, error)
	Decrement(key string) error
	Reset(key string) error
}

// New returns a fixed-window rate limiter middleware. Defaults: 100
// requests per one-minute window, keyed by remote address, bundled
// in-memory store.
//
//	root := strada.Group("/api", ratelimit.New(
//	    ratelimit.WithLimit(50),
//	    ratelimit.WithWindow(30*time.Second),
//	))
//
// On store failure the middleware fails open: the request proceeds and the
// error is logged, because a broken counter backend should degrade rate
// limiting, not availability.
func New(opts ...Option) strada.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	store := cfg.store
	if store == nil {
		store = NewMemoryStore(cfg.window)
	}

	return func(c *strada.Context, next strada.Next) (*strada.Response, error) {
		key := cfg.keyFunc(c)

		count, err := store.Increment(key)
		if err != nil {
			if cfg.logger != nil {
				cfg.logger.Warn("rate limit store error", "error", err, "key", key)
			}
			return next()
		}

		remaining := max(0, cfg.limit-count)
		resetSeconds := int(cfg.window.Seconds())

		if count > cfg.limit {
			resp := strada.JSON(http.StatusTooManyRequests, map[string]string{
				"error": "Too Many Requests",
			})
			setLimitHeaders(resp, cfg.limit, remaining, resetSeconds)
			resp.SetHeader("Retry-After", strconv.Itoa(resetSeconds))
			return resp, nil
		}

		resp, err := next()
		if err != nil && cfg.refundErrors {
			// Failed requests do not consume quota in refund mode.
			_ = store.Decrement(key)
		}
		if resp != nil {
			setLimitHeaders(resp, cfg.limit, remaining, resetSeconds)
		}
		return resp, err
	}
}

func setLimitHeaders(resp *strada.Response, limit, remaining, resetSeconds int) {
	resp.SetHeader("RateLimit-Limit", strconv.Itoa(limit))
	resp.SetHeader("RateLimit-Remaining", strconv.Itoa(remaining))
	resp.SetHeader("RateLimit-Reset", strconv.Itoa(resetSeconds))
}
