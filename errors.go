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

package strada

import "errors"

var (
	// ErrNilRouter indicates that a nil router node was passed to New.
	ErrNilRouter = errors.New("router node is nil")

	// ErrEmptyParameterName indicates that a path template contains a
	// parameter marker with no name (for example "/users/:").
	ErrEmptyParameterName = errors.New("empty parameter name")

	// ErrEmptyRoutePath indicates that a route was registered with an empty path.
	ErrEmptyRoutePath = errors.New("route path is empty")

	// ErrRouteNotFound indicates that no route with the given name is registered.
	ErrRouteNotFound = errors.New("route not found")

	// ErrDuplicateRouteName indicates that two routes were given the same name.
	ErrDuplicateRouteName = errors.New("duplicate route name")

	// ErrMissingContextValue indicates that a required context value is absent.
	ErrMissingContextValue = errors.New("missing context value")
)
