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

package recovery

import (
	"log/slog"

	"github.com/strada-dev/strada"
)

// Option defines functional options for recovery middleware configuration.
type Option func(*config)

// config holds the configuration for the recovery middleware.
type config struct {
	stackTrace        bool
	stackSize         int
	logger            *slog.Logger
	handler           func(c *strada.Context, err any) *strada.Response
	passthroughErrors bool
}

func defaultConfig() *config {
	return &config{
		stackTrace: true,
		stackSize:  4 << 10, // 4KB
		handler:    defaultHandler,
	}
}

// WithStackTrace enables/disables stack capture on panic.
func WithStackTrace(enable bool) Option {
	return func(cfg *config) {
		cfg.stackTrace = enable
	}
}

// WithStackSize caps the captured stack trace in bytes.
func WithStackSize(size int) Option {
	return func(cfg *config) {
		cfg.stackSize = size
	}
}

// WithLogger sets the logger for recovered panics and errors.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithHandler sets the function that builds the failure response. It
// receives the recovered panic value or the downstream error.
func WithHandler(handler func(c *strada.Context, err any) *strada.Response) Option {
	return func(cfg *config) {
		cfg.handler = handler
	}
}

// WithPassthroughErrors leaves error returns from next untouched, so they
// keep propagating to an outer middleware or the host adapter. Panics are
// still recovered.
func WithPassthroughErrors() Option {
	return func(cfg *config) {
		cfg.passthroughErrors = true
	}
}
