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
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func spanAttr(attrs []attribute.KeyValue, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range attrs {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

// TestOtelRecorderSpans tests span naming and attributes for hit, miss and
// error dispatches.
func TestOtelRecorderSpans(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	root := Group("/api")
	root.GET("/users/:id", noopHandler)
	root.GET("/fail", func(c *Context) (any, error) {
		return nil, errors.New("boom")
	})
	app := MustNew(root, WithTracerProvider(tp))

	_, err := app.Dispatch(context.Background(), NewRequest(http.MethodGet, "/api/users/42"), nil)
	require.NoError(t, err)
	_, err = app.Dispatch(context.Background(), NewRequest(http.MethodGet, "/api/nope"), nil)
	require.NoError(t, err)
	_, err = app.Dispatch(context.Background(), NewRequest(http.MethodGet, "/api/fail"), nil)
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 3)

	hit := spans[0]
	assert.Equal(t, "GET /api/users/:id", hit.Name())
	route, ok := spanAttr(hit.Attributes(), "http.route")
	require.True(t, ok)
	assert.Equal(t, "/api/users/:id", route.AsString())
	status, ok := spanAttr(hit.Attributes(), "http.response.status_code")
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusNoContent), status.AsInt64())

	miss := spans[1]
	assert.Equal(t, "GET _not_found", miss.Name())

	failed := spans[2]
	assert.Equal(t, codes.Error, failed.Status().Code)
	require.Len(t, failed.Events(), 1)
	assert.Equal(t, "exception", failed.Events()[0].Name)
}

// TestOtelRecorderMetrics tests the request counter and duration histogram.
func TestOtelRecorderMetrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	root := Group("/api")
	root.GET("/users/:id", noopHandler)
	app := MustNew(root, WithMeterProvider(mp))

	for i := 0; i < 3; i++ {
		_, err := app.Dispatch(context.Background(), NewRequest(http.MethodGet, "/api/users/1"), nil)
		require.NoError(t, err)
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	assert.Equal(t, scopeName, rm.ScopeMetrics[0].Scope.Name)

	byName := map[string]metricdata.Metrics{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		byName[m.Name] = m
	}

	counter, ok := byName["strada.dispatch.requests"]
	require.True(t, ok)
	sum, ok := counter.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(3), sum.DataPoints[0].Value)

	routeAttr, ok := sum.DataPoints[0].Attributes.Value("http.route")
	require.True(t, ok)
	assert.Equal(t, "/api/users/:id", routeAttr.AsString())

	hist, ok := byName["strada.dispatch.duration"]
	require.True(t, ok)
	histData, ok := hist.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, histData.DataPoints, 1)
	assert.Equal(t, uint64(3), histData.DataPoints[0].Count)
}

// TestCustomRecorder tests that WithRecorder wins over the otel providers
// and receives both hooks for every dispatch.
func TestCustomRecorder(t *testing.T) {
	t.Parallel()

	rec := &captureRecorder{}

	root := Group("")
	root.GET("/x", noopHandler)
	app := MustNew(root, WithRecorder(rec))

	_, err := app.Dispatch(context.Background(), NewRequest(http.MethodGet, "/x"), nil)
	require.NoError(t, err)
	_, err = app.Dispatch(context.Background(), NewRequest(http.MethodGet, "/missing"), nil)
	require.NoError(t, err)

	require.Len(t, rec.patterns, 2)
	assert.Equal(t, "/x", rec.patterns[0])
	assert.Equal(t, routePatternNotFound, rec.patterns[1])
	assert.Equal(t, 2, rec.starts)
}

// TestNewPrometheusMeterProvider tests that dispatch metrics land in a
// plain Prometheus registry.
func TestNewPrometheusMeterProvider(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	mp, err := NewPrometheusMeterProvider(reg)
	require.NoError(t, err)

	root := Group("")
	root.GET("/x", noopHandler)
	app := MustNew(root, WithMeterProvider(mp))

	_, err = app.Dispatch(context.Background(), NewRequest(http.MethodGet, "/x"), nil)
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "strada_dispatch_requests_total")
}

type captureRecorder struct {
	starts   int
	patterns []string
}

func (r *captureRecorder) OnDispatchStart(ctx context.Context, _ *Request) (context.Context, any) {
	r.starts++
	return ctx, nil
}

func (r *captureRecorder) OnDispatchEnd(_ context.Context, _ any, _ *Request, _ *Response, routePattern string, _ error) {
	r.patterns = append(r.patterns, routePattern)
}
