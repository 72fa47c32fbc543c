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

package basicauth

// Option defines functional options for basicauth middleware configuration.
type Option func(*config)

// config holds the configuration for the basicauth middleware.
type config struct {
	realm     string
	validator func(user, pass string) bool
}

func defaultConfig() *config {
	return &config{
		realm:     "Restricted",
		validator: func(string, string) bool { return false },
	}
}

// WithRealm sets the authentication realm advertised on 401 responses.
func WithRealm(realm string) Option {
	return func(cfg *config) {
		cfg.realm = realm
	}
}

// WithUsers installs a static credential set. Comparison is constant-time
// per entry.
func WithUsers(users map[string]string) Option {
	return func(cfg *config) {
		cfg.validator = func(user, pass string) bool {
			expected, ok := users[user]
			return ok && constantTimeEquals(pass, expected)
		}
	}
}

// WithValidator installs a custom credential check.
func WithValidator(validator func(user, pass string) bool) Option {
	return func(cfg *config) {
		cfg.validator = validator
	}
}
