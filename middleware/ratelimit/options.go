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

package ratelimit

import (
	"log/slog"
	"time"

	"github.com/strada-dev/strada"
)

// Option defines functional options for ratelimit middleware configuration.
type Option func(*config)

// config holds the configuration for the ratelimit middleware.
type config struct {
	limit        int
	window       time.Duration
	keyFunc      KeyFunc
	store        Store
	logger       *slog.Logger
	refundErrors bool
}

func defaultConfig() *config {
	return &config{
		limit:   100,
		window:  time.Minute,
		keyFunc: defaultKeyFunc,
	}
}

// defaultKeyFunc keys limits by the adapter-reported remote address.
func defaultKeyFunc(c *strada.Context) string {
	return "addr:" + c.Request.RemoteAddr
}

// WithLimit sets the number of requests allowed per window.
func WithLimit(limit int) Option {
	return func(cfg *config) {
		cfg.limit = limit
	}
}

// WithWindow sets the fixed window duration.
func WithWindow(window time.Duration) Option {
	return func(cfg *config) {
		cfg.window = window
	}
}

// WithKeyFunc sets the function deriving the limit key per request.
func WithKeyFunc(fn KeyFunc) Option {
	return func(cfg *config) {
		cfg.keyFunc = fn
	}
}

// WithStore installs a custom counter backend, e.g. Redis-backed, in place
// of the bundled in-memory store.
func WithStore(store Store) Option {
	return func(cfg *config) {
		cfg.store = store
	}
}

// WithLogger sets the logger for store failures.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithRefundErrors returns quota for requests whose downstream chain
// failed with an error.
func WithRefundErrors() Option {
	return func(cfg *config) {
		cfg.refundErrors = true
	}
}
