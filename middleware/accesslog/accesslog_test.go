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

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strada-dev/strada"
)

func dispatch(t *testing.T, app *strada.App, method, path string) *strada.Response {
	t.Helper()
	resp, err := app.Dispatch(context.Background(), strada.NewRequest(method, path), nil)
	require.NoError(t, err)
	return resp
}

// TestAccessLogLine tests the canonical log line for a successful request.
func TestAccessLogLine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	root := strada.Group("/api", New(WithLogger(logger)))
	root.GET("/users/:id", func(c *strada.Context) (any, error) {
		return map[string]string{"id": c.Param("id")}, nil
	})
	app := strada.MustNew(root)

	dispatch(t, app, http.MethodGet, "/api/users/42")

	line := buf.String()
	assert.Contains(t, line, "level=INFO")
	assert.Contains(t, line, "method=GET")
	assert.Contains(t, line, "path=/api/users/42")
	assert.Contains(t, line, "route=/api/users/:id")
	assert.Contains(t, line, "status=200")
	assert.Contains(t, line, "duration_ms=")
	assert.Contains(t, line, "bytes_sent=")
}

// TestAccessLogLevels tests level selection by outcome.
func TestAccessLogLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	root := strada.Group("", New(WithLogger(logger)))
	root.GET("/client", func(c *strada.Context) (any, error) {
		return strada.JSON(http.StatusBadRequest, map[string]string{"error": "bad"}), nil
	})
	root.GET("/server", func(c *strada.Context) (any, error) {
		return strada.NoContent(http.StatusInternalServerError), nil
	})
	root.GET("/fail", func(c *strada.Context) (any, error) {
		return nil, errors.New("boom")
	})
	app := strada.MustNew(root)

	dispatch(t, app, http.MethodGet, "/client")
	assert.Contains(t, buf.String(), "level=WARN")
	buf.Reset()

	dispatch(t, app, http.MethodGet, "/server")
	assert.Contains(t, buf.String(), "level=ERROR")
	buf.Reset()

	_, err := app.Dispatch(context.Background(), strada.NewRequest(http.MethodGet, "/fail"), nil)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "error=boom")
}

// TestAccessLogExcludePaths tests that excluded paths emit nothing.
func TestAccessLogExcludePaths(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	root := strada.Group("", New(WithLogger(logger), WithExcludePaths("/health")))
	root.GET("/health", func(c *strada.Context) (any, error) { return "ok", nil })
	root.GET("/work", func(c *strada.Context) (any, error) { return "ok", nil })
	app := strada.MustNew(root)

	dispatch(t, app, http.MethodGet, "/health")
	assert.Empty(t, buf.String())

	dispatch(t, app, http.MethodGet, "/work")
	assert.Contains(t, buf.String(), "path=/work")
}

// TestAccessLogNoLogger tests that the middleware is transparent without a
// logger.
func TestAccessLogNoLogger(t *testing.T) {
	t.Parallel()

	root := strada.Group("", New())
	root.GET("/x", func(c *strada.Context) (any, error) { return "ok", nil })
	app := strada.MustNew(root)

	resp := dispatch(t, app, http.MethodGet, "/x")
	assert.Equal(t, http.StatusOK, resp.Status)
}
