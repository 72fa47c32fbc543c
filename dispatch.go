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
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/strada-dev/strada/schema"
)

// noopLogger is the singleton no-op logger used when none is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// App is the compiled dispatch engine: an immutable list of compiled routes
// plus the configured observability recorder. An App is safe for concurrent
// use; every dispatch gets its own Context and pipeline execution.
type App struct {
	routes []*CompiledRoute
	named  map[string]*CompiledRoute

	env      any
	logger   *slog.Logger
	recorder Recorder

	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// Option defines functional options for App configuration.
type Option func(*App)

// WithEnv sets the opaque environment handle passed to every Context built
// by the bundled net/http adapter. Dispatch callers may still supply their
// own per-call handle.
func WithEnv(env any) Option {
	return func(a *App) { a.env = env }
}

// WithLogger sets the logger used for adapter-level failures. The default
// discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// WithRecorder installs a custom observability recorder. It takes
// precedence over WithTracerProvider/WithMeterProvider.
func WithRecorder(r Recorder) Option {
	return func(a *App) { a.recorder = r }
}

// WithTracerProvider enables per-dispatch OpenTelemetry spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(a *App) { a.tracerProvider = tp }
}

// WithMeterProvider enables per-dispatch OpenTelemetry metrics (request
// counter and duration histogram, labelled by route pattern).
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(a *App) { a.meterProvider = mp }
}

// New compiles the route tree eagerly and returns the ready-to-serve App.
// Compilation happens exactly once; the resulting route list is read-only
// and shared by all in-flight dispatches without locking.
func New(root *RouterNode, opts ...Option) (*App, error) {
	app := &App{
		logger: noopLogger,
	}
	for _, opt := range opts {
		opt(app)
	}

	routes, err := compileTree(root)
	if err != nil {
		return nil, err
	}
	app.routes = routes

	app.named = make(map[string]*CompiledRoute)
	for _, route := range routes {
		if route.name == "" {
			continue
		}
		if _, dup := app.named[route.name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRouteName, route.name)
		}
		app.named[route.name] = route
	}

	if app.recorder == nil {
		if app.tracerProvider != nil || app.meterProvider != nil {
			rec, err := newOtelRecorder(app.tracerProvider, app.meterProvider)
			if err != nil {
				return nil, err
			}
			app.recorder = rec
		} else {
			app.recorder = nopRecorder{}
		}
	}

	return app, nil
}

// MustNew is like New but panics on compile failure. Route trees are built
// from literal code, so a failure here is a programming error.
func MustNew(root *RouterNode, opts ...Option) *App {
	app, err := New(root, opts...)
	if err != nil {
		panic(err)
	}
	return app
}

// RouteInfo describes one compiled route for introspection.
type RouteInfo struct {
	Method  string
	Pattern string
	Params  []string
	Name    string
}

// Routes returns descriptors for every compiled route in declaration
// order. This is the engine's typed route registry: client code resolves
// callable descriptors from it instead of reflecting over handlers.
func (a *App) Routes() []RouteInfo {
	infos := make([]RouteInfo, len(a.routes))
	for i, route := range a.routes {
		infos[i] = RouteInfo{
			Method:  route.method,
			Pattern: route.pattern,
			Params:  route.ParamNames(),
			Name:    route.name,
		}
	}
	return infos
}

// Route looks up a named route's descriptor.
func (a *App) Route(name string) (RouteInfo, error) {
	route, ok := a.named[name]
	if !ok {
		return RouteInfo{}, fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}
	return RouteInfo{
		Method:  route.method,
		Pattern: route.pattern,
		Params:  route.ParamNames(),
		Name:    route.name,
	}, nil
}

// Dispatch routes one request through the engine: match, build the
// per-request Context, run the middleware pipeline with validation and the
// handler as the terminal step, and normalize the result.
//
// ctx is the opaque execution/cancellation handle; the engine propagates it
// without interpreting it. env is the opaque environment handle seeded into
// the Context. A routing miss yields a 404 response, never an error. An
// error return means no middleware recovered a pipeline failure; the host
// adapter decides what that looks like on the wire.
func (a *App) Dispatch(ctx context.Context, req *Request, env any) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, obsState := a.recorder.OnDispatchStart(ctx, req)

	m := matchRoute(a.routes, req.Method, req.Path)
	if m == nil {
		resp := notFoundResponse()
		a.recorder.OnDispatchEnd(ctx, obsState, req, resp, routePatternNotFound, nil)
		return resp, nil
	}

	c := newContext(ctx, req, m.params, env, m.route)

	resp, err := runChain(c, m.route.middleware, a.terminal(c, m.route))
	if err != nil {
		a.recorder.OnDispatchEnd(ctx, obsState, req, nil, m.route.pattern, err)
		return nil, err
	}
	if resp == nil {
		resp = NoContent(http.StatusOK)
	}

	// HEAD reflects the matched GET execution minus the body. The handler
	// runs in full; expensive handlers should self-check the method.
	if req.Method == http.MethodHead {
		resp = resp.withoutBody()
	}

	a.recorder.OnDispatchEnd(ctx, obsState, req, resp, m.route.pattern, nil)
	return resp, nil
}

// terminal builds the innermost pipeline step for one dispatch: validate
// query and body, re-seed the shared context with the validated values, and
// invoke the handler.
func (a *App) terminal(c *Context, route *CompiledRoute) func() (*Response, error) {
	return func() (*Response, error) {
		if route.querySchema != nil {
			validated, err := route.querySchema.Validate(queryInput(c.Request.Query))
			if err != nil {
				return validationFailure("Invalid query parameters", route, err), nil
			}
			c.Query = validated
		}

		if route.bodySchema != nil && isMutating(c.Request.Method) {
			validated, err := route.bodySchema.Validate(bodyInput(c.Request.Body))
			if err != nil {
				return validationFailure("Invalid request body", route, err), nil
			}
			c.Body = validated
		}

		if route.handler == nil {
			return NoContent(http.StatusNoContent), nil
		}

		result, err := route.handler(c)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return NoContent(http.StatusNoContent), nil
		}
		if resp, ok := result.(*Response); ok {
			return resp, nil
		}
		return JSON(http.StatusOK, result), nil
	}
}

// isMutating reports whether body validation applies to the method.
func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// queryInput flattens parsed query values into the validator's loose input
// shape: single-valued keys become strings, repeated keys string slices.
func queryInput(values url.Values) map[string]any {
	in := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) == 1 {
			in[key] = vals[0]
		} else {
			in[key] = vals
		}
	}
	return in
}

// bodyInput parses a JSON request body into the validator's loose input
// shape. Malformed or non-object bodies degrade to an empty map, so the
// validator's missing-field path reports them instead of a hard failure.
func bodyInput(body []byte) map[string]any {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return map[string]any{}
	}
	parsed, ok := gjson.ParseBytes(body).Value().(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return parsed
}

// validationFailure renders the 400 error body: failure class, route
// identifier, and per-field details keyed by field path.
func validationFailure(summary string, route *CompiledRoute, err error) *Response {
	details := map[string]string{}
	var verr *schema.Error
	if errors.As(err, &verr) {
		details = verr.Fields
	}
	return JSON(http.StatusBadRequest, map[string]any{
		"error":   summary,
		"route":   route.id(),
		"details": details,
	})
}
