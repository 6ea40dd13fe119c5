package internal

import (
	"errors"
	"net/http"
	"slices"
	"strings"
)

// StepRouter is the name of the dispatch step.
const StepRouter = "router"

// Router is the interface route declarations are made against.
type Router interface {
	// GET registers a handler for GET requests. HEAD requests match it too.
	GET(path string, h HandlerFunc, mw ...Middleware)

	// POST registers a handler for POST requests.
	POST(path string, h HandlerFunc, mw ...Middleware)

	// PUT registers a handler for PUT requests.
	PUT(path string, h HandlerFunc, mw ...Middleware)

	// DELETE registers a handler for DELETE requests.
	DELETE(path string, h HandlerFunc, mw ...Middleware)

	// Group creates an inline route group sharing middleware but no prefix.
	Group(fn func(r Router))

	// Route creates a route group with a pattern prefix.
	Route(prefix string, fn func(r Router))

	// Use appends middleware applied to routes registered after the call.
	Use(mw ...Middleware)
}

// RouteInfo describes a registered route.
type RouteInfo struct {
	Method  string
	Pattern string
}

type route struct {
	handler HandlerFunc
	method  string
	pattern pattern
}

// RouteTable is an ordered, immutable list of routes.
// Dispatch picks the first route whose method and pattern both match.
type RouteTable struct {
	routes []route
}

// BuildRoutes runs fn against a fresh router and freezes the result.
// Invalid patterns panic.
func BuildRoutes(fn func(r Router)) *RouteTable {
	b := &tableBuilder{}
	fn(&routerScope{builder: b})
	return &RouteTable{routes: slices.Clip(b.routes)}
}

// Routes lists the table in registration order.
func (t *RouteTable) Routes() []RouteInfo {
	out := make([]RouteInfo, len(t.routes))
	for i, r := range t.routes {
		out[i] = RouteInfo{Method: r.method, Pattern: r.pattern.String()}
	}
	return out
}

// Dispatch returns the first matching route and its bound parameters.
func (t *RouteTable) Dispatch(method, escapedPath string) (RouteInfo, map[string]string, bool) {
	i, params, ok := t.match(method, escapedPath, 0)
	if !ok {
		return RouteInfo{}, nil, false
	}
	r := t.routes[i]
	return RouteInfo{Method: r.method, Pattern: r.pattern.String()}, params, true
}

func (t *RouteTable) match(method, escapedPath string, from int) (int, map[string]string, bool) {
	for i := from; i < len(t.routes); i++ {
		r := t.routes[i]
		if r.method != method && (method != http.MethodHead || r.method != http.MethodGet) {
			continue
		}
		if params, ok := r.pattern.match(escapedPath); ok {
			if params == nil {
				params = map[string]string{}
			}
			return i, params, true
		}
	}
	return -1, nil, false
}

// Step returns the dispatch step. A request no route handles continues
// to the next step.
func (t *RouteTable) Step() Step {
	return Step{
		Name: StepRouter,
		Run: func(c *Context) (Signal, error) {
			path := c.request.URL.EscapedPath()
			for from := 0; ; {
				i, params, ok := t.match(c.Method(), path, from)
				if !ok {
					c.Params = map[string]string{}
					return Continue, nil
				}

				c.Params = params
				err := t.routes[i].handler(c)
				switch {
				case errors.Is(err, ErrNext):
					from = i + 1
				case err != nil:
					return Fail, err
				default:
					return Respond, nil
				}
			}
		},
	}
}

type tableBuilder struct {
	routes []route
}

// routerScope is a view of the builder with a prefix and middleware stack.
type routerScope struct {
	builder *tableBuilder
	prefix  string
	mws     []Middleware
}

func (r *routerScope) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.add(http.MethodGet, path, h, mw)
}

func (r *routerScope) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.add(http.MethodPost, path, h, mw)
}

func (r *routerScope) PUT(path string, h HandlerFunc, mw ...Middleware) {
	r.add(http.MethodPut, path, h, mw)
}

func (r *routerScope) DELETE(path string, h HandlerFunc, mw ...Middleware) {
	r.add(http.MethodDelete, path, h, mw)
}

func (r *routerScope) Group(fn func(Router)) {
	fn(&routerScope{builder: r.builder, prefix: r.prefix, mws: slices.Clone(r.mws)})
}

func (r *routerScope) Route(prefix string, fn func(Router)) {
	fn(&routerScope{builder: r.builder, prefix: joinPath(r.prefix, prefix), mws: slices.Clone(r.mws)})
}

func (r *routerScope) Use(mw ...Middleware) {
	r.mws = append(r.mws, mw...)
}

func (r *routerScope) add(method, path string, h HandlerFunc, mw []Middleware) {
	if h == nil {
		panic("route: nil handler for " + method + " " + path)
	}
	p, err := parsePattern(joinPath(r.prefix, path))
	if err != nil {
		panic(err)
	}

	// first declared runs first: group middleware, then route middleware
	chain := append(slices.Clone(r.mws), mw...)
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}

	r.builder.routes = append(r.builder.routes, route{method: method, pattern: p, handler: h})
}

func joinPath(prefix, path string) string {
	switch {
	case prefix == "":
		return path
	case path == "" || path == "/":
		return prefix
	}
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(path, "/")
}
