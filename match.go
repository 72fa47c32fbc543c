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

import (
	"net/http"
	"net/url"
)

// match holds the outcome of a successful route lookup.
type match struct {
	route  *CompiledRoute
	params map[string]string
}

// matchRoute walks the compiled route list in declaration order and returns
// the first route whose method and pattern both accept the request, or nil
// on a routing miss.
//
// Method compatibility, in priority order:
//  1. exact method match;
//  2. an incoming OPTIONS request matches every route regardless of its
//     declared method, so preflight-handling middleware run before any
//     handler would;
//  3. an incoming HEAD request matches a GET route. An explicit HEAD route
//     at the same position wins by rule 1 because the list is scanned in
//     declaration order.
func matchRoute(routes []*CompiledRoute, method, path string) *match {
	for _, route := range routes {
		if !methodMatches(route.method, method) {
			continue
		}
		groups := route.re.FindStringSubmatch(path)
		if groups == nil {
			continue
		}
		return &match{
			route:  route,
			params: extractParams(route, groups),
		}
	}
	return nil
}

func methodMatches(declared, incoming string) bool {
	if incoming == declared {
		return true
	}
	if incoming == http.MethodOptions {
		return true
	}
	if incoming == http.MethodHead && declared == http.MethodGet {
		return true
	}
	return false
}

// extractParams pairs capture groups with parameter names and
// percent-decodes each value. Values that fail to decode are kept raw
// rather than failing the whole match.
func extractParams(route *CompiledRoute, groups []string) map[string]string {
	params := make(map[string]string, len(route.paramNames))
	for i, name := range route.paramNames {
		value := groups[i+1]
		if decoded, err := url.PathUnescape(value); err == nil {
			value = decoded
		}
		params[name] = value
	}
	return params
}
