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
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strada-dev/strada"
)

// TestTimeoutFastHandler tests that requests finishing in time pass through
// untouched.
func TestTimeoutFastHandler(t *testing.T) {
	t.Parallel()

	root := strada.Group("", New(WithDuration(time.Second)))
	root.GET("/fast", func(c *strada.Context) (any, error) {
		return map[string]bool{"done": true}, nil
	})
	app := strada.MustNew(root)

	resp, err := app.Dispatch(context.Background(), strada.NewRequest(http.MethodGet, "/fast"), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `{"done":true}`, string(resp.Body))
}

// TestTimeoutExpired tests the 408 short-circuit for slow handlers.
func TestTimeoutExpired(t *testing.T) {
	t.Parallel()

	root := strada.Group("", New(WithDuration(20*time.Millisecond)))
	root.GET("/slow", func(c *strada.Context) (any, error) {
		select {
		case <-time.After(500 * time.Millisecond):
			return "too late", nil
		case <-c.Context().Done():
			return nil, c.Context().Err()
		}
	})
	app := strada.MustNew(root)

	resp, err := app.Dispatch(context.Background(), strada.NewRequest(http.MethodGet, "/slow"), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusRequestTimeout, resp.Status)
	assert.Contains(t, string(resp.Body), `"code":"TIMEOUT"`)
	assert.Contains(t, string(resp.Body), `"path":"/slow"`)
}

// TestTimeoutContextCanceled tests that the downstream chain observes the
// derived deadline on its execution handle.
func TestTimeoutContextCanceled(t *testing.T) {
	t.Parallel()

	canceled := make(chan struct{})
	root := strada.Group("", New(WithDuration(20*time.Millisecond)))
	root.GET("/slow", func(c *strada.Context) (any, error) {
		<-c.Context().Done()
		close(canceled)
		return nil, c.Context().Err()
	})
	app := strada.MustNew(root)

	_, err := app.Dispatch(context.Background(), strada.NewRequest(http.MethodGet, "/slow"), nil)
	require.NoError(t, err)

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("handler never observed cancellation")
	}
}

// TestTimeoutCustomHandler tests a custom timeout response.
func TestTimeoutCustomHandler(t *testing.T) {
	t.Parallel()

	root := strada.Group("", New(
		WithDuration(10*time.Millisecond),
		WithHandler(func(c *strada.Context, d time.Duration) *strada.Response {
			return strada.Text(http.StatusGatewayTimeout, "upstream gave up")
		}),
	))
	root.GET("/slow", func(c *strada.Context) (any, error) {
		time.Sleep(300 * time.Millisecond)
		return nil, nil
	})
	app := strada.MustNew(root)

	resp, err := app.Dispatch(context.Background(), strada.NewRequest(http.MethodGet, "/slow"), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusGatewayTimeout, resp.Status)
	assert.Equal(t, "upstream gave up", string(resp.Body))
}

// TestTimeoutDownstreamError tests that in-time errors propagate unchanged.
func TestTimeoutDownstreamError(t *testing.T) {
	t.Parallel()

	root := strada.Group("", New(WithDuration(time.Second)))
	root.GET("/fail", func(c *strada.Context) (any, error) {
		return nil, context.DeadlineExceeded
	})
	app := strada.MustNew(root)

	_, err := app.Dispatch(context.Background(), strada.NewRequest(http.MethodGet, "/fail"), nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
