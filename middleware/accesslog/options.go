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

package accesslog

import "log/slog"

// Option defines functional options for accesslog middleware configuration.
type Option func(*config)

// config holds the configuration for the accesslog middleware.
type config struct {
	logger       *slog.Logger
	excludePaths map[string]bool
}

func defaultConfig() *config {
	return &config{
		excludePaths: make(map[string]bool),
	}
}

// WithLogger sets the structured logger to emit access entries to.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithExcludePaths disables logging for exact request paths, typically
// health and metrics endpoints.
func WithExcludePaths(paths ...string) Option {
	return func(cfg *config) {
		for _, path := range paths {
			cfg.excludePaths[path] = true
		}
	}
}
