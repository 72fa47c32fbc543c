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
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace"
)

// scopeName is the instrumentation scope for spans and instruments created
// by the engine.
const scopeName = "github.com/strada-dev/strada"

// routePatternNotFound is the sentinel route label recorded for dispatches
// that matched no route. Using a sentinel instead of the raw path keeps
// metric cardinality bounded.
const routePatternNotFound = "_not_found"

// Recorder receives dispatch lifecycle hooks. Implementations typically
// combine tracing, metrics and logging; the engine treats the state token
// as opaque and guarantees OnDispatchEnd is called exactly once per
// OnDispatchStart, with the final response (nil when the pipeline returned
// an error).
//
// All methods must be safe for concurrent use.
type Recorder interface {
	// OnDispatchStart is called before route matching. The returned
	// context replaces the request's execution handle for the rest of the
	// dispatch, so trace propagation reaches the handler and downstream calls.
	OnDispatchStart(ctx context.Context, req *Request) (context.Context, any)

	// OnDispatchEnd is called after the pipeline completes, with the route
	// pattern that matched ("_not_found" on a miss) and the pipeline error,
	// if any.
	OnDispatchEnd(ctx context.Context, state any, req *Request, resp *Response, routePattern string, err error)
}

// nopRecorder is used when no observability is configured.
type nopRecorder struct{}

func (nopRecorder) OnDispatchStart(ctx context.Context, _ *Request) (context.Context, any) {
	return ctx, nil
}

func (nopRecorder) OnDispatchEnd(context.Context, any, *Request, *Response, string, error) {}

// otelRecorder implements Recorder over OpenTelemetry tracing and metrics.
// Either pillar may be disabled by leaving its provider nil.
type otelRecorder struct {
	tracer   trace.Tracer
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// dispatchState carries per-dispatch observability state between the two hooks.
type dispatchState struct {
	span  trace.Span
	start time.Time
}

func newOtelRecorder(tp trace.TracerProvider, mp metric.MeterProvider) (*otelRecorder, error) {
	rec := &otelRecorder{}

	if tp != nil {
		rec.tracer = tp.Tracer(scopeName)
	}

	if mp != nil {
		meter := mp.Meter(scopeName)
		var err error
		rec.requests, err = meter.Int64Counter("strada.dispatch.requests",
			metric.WithDescription("Number of dispatched requests"),
		)
		if err != nil {
			return nil, fmt.Errorf("create request counter: %w", err)
		}
		rec.duration, err = meter.Float64Histogram("strada.dispatch.duration",
			metric.WithDescription("Dispatch duration in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			return nil, fmt.Errorf("create duration histogram: %w", err)
		}
	}

	return rec, nil
}

func (r *otelRecorder) OnDispatchStart(ctx context.Context, req *Request) (context.Context, any) {
	state := &dispatchState{start: time.Now()}

	if r.tracer != nil {
		ctx, state.span = r.tracer.Start(ctx, req.Method,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", req.Method),
				attribute.String("url.path", req.Path),
			),
		)
	}

	return ctx, state
}

func (r *otelRecorder) OnDispatchEnd(ctx context.Context, state any, req *Request, resp *Response, routePattern string, err error) {
	ds, ok := state.(*dispatchState)
	if !ok {
		return
	}

	status := 0
	if resp != nil {
		status = resp.Status
	}

	if ds.span != nil {
		ds.span.SetName(req.Method + " " + routePattern)
		ds.span.SetAttributes(
			attribute.String("http.route", routePattern),
			attribute.Int("http.response.status_code", status),
		)
		if err != nil {
			ds.span.RecordError(err)
			ds.span.SetStatus(codes.Error, err.Error())
		} else if status >= 500 {
			ds.span.SetStatus(codes.Error, "")
		}
		ds.span.End()
	}

	if r.requests != nil {
		attrs := metric.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("http.route", routePattern),
			attribute.Int("http.response.status_code", status),
		)
		r.requests.Add(ctx, 1, attrs)
		r.duration.Record(ctx, time.Since(ds.start).Seconds(), attrs)
	}
}

// NewPrometheusMeterProvider builds a MeterProvider backed by the
// OpenTelemetry Prometheus exporter, registered on reg. Pass the result to
// WithMeterProvider and serve the registry with promhttp to expose dispatch
// metrics.
//
//	reg := prometheus.NewRegistry()
//	mp, err := strada.NewPrometheusMeterProvider(reg)
//	app, err := strada.New(root, strada.WithMeterProvider(mp))
func NewPrometheusMeterProvider(reg prometheus.Registerer) (metric.MeterProvider, error) {
	exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)), nil
}
