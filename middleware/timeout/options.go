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

package timeout

import (
	"log/slog"
	"time"

	"github.com/strada-dev/strada"
)

// Option defines functional options for timeout middleware configuration.
type Option func(*config)

// config holds the configuration for the timeout middleware.
type config struct {
	duration time.Duration
	logger   *slog.Logger
	handler  func(c *strada.Context, d time.Duration) *strada.Response
}

func defaultConfig() *config {
	return &config{
		duration: 30 * time.Second,
		handler:  defaultHandler,
	}
}

// WithDuration sets the timeout duration.
func WithDuration(d time.Duration) Option {
	return func(cfg *config) {
		cfg.duration = d
	}
}

// WithLogger sets the logger for timeout events.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithHandler sets the function that builds the timeout response.
func WithHandler(handler func(c *strada.Context, d time.Duration) *strada.Response) Option {
	return func(cfg *config) {
		cfg.handler = handler
	}
}
