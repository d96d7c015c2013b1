package http

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

type Handler interface {
	Handle(req *Request) (Response, error)
}

type HandlerFunc func(req *Request) (Response, error)

func (f HandlerFunc) Handle(req *Request) (Response, error) {
	return f(req)
}

type Router struct {
	StaticPage Handler
	WebService Handler
	NotFound   Handler
	Middleware []Middleware
	Logger     *slog.Logger

	tracer   trace.Tracer
	requests metric.Int64Counter
}

func NewRouter(staticPage, webService, notFound Handler) *Router {
	router := &Router{
		StaticPage: staticPage,
		WebService: webService,
		NotFound:   notFound,
		Middleware: make([]Middleware, 0),
		tracer:     otel.Tracer(instrumentationName),
	}

	requests, err := otel.Meter(instrumentationName).Int64Counter("httpcore.router.requests",
		metric.WithDescription("The number of routed requests by handler category"),
		metric.WithUnit("{request}"))
	if err != nil {
		router.logger().Warn("router: creating request counter failed", "error", err)
		requests = noop.Int64Counter{}
	}
	router.requests = requests

	return router
}

func (router *Router) Use(middleware ...Middleware) {
	router.Middleware = append(router.Middleware, middleware...)
}

// Handler returns the handler for category with the router middleware
// applied. Categories without a handler fall back to NotFoundHandler.
func (router *Router) Handler(category Category) Handler {
	var handler Handler
	switch category {
	case CategoryStaticPage:
		handler = router.StaticPage
	case CategoryWebService:
		handler = router.WebService
	default:
		handler = router.NotFound
	}
	if handler == nil {
		handler = NotFoundHandler
	}

	for _, middleware := range router.Middleware {
		handler = middleware(handler)
	}

	return handler
}

// Route dispatches req to its handler and sends the response to w exactly
// once. Handler errors are returned unchanged and nothing is sent. A failed
// send is logged and returned wrapping ErrIO.
func (router *Router) Route(ctx context.Context, req *Request, w io.Writer) error {
	category := Select(req)

	ctx = otel.GetTextMapPropagator().Extract(ctx, headerCarrier(req.Headers))
	ctx, span := router.spanTracer().Start(ctx, "http.route", trace.WithAttributes(
		attribute.String("http.request.method", req.Method.String()),
		attribute.String("url.path", req.Resource.Path),
		attribute.String("httpcore.category", category.String()),
	))
	defer span.End()

	res, err := router.Handler(category).Handle(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "handler failed")
		return err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", int(res.StatusCode)))
	router.counter().Add(ctx, 1, metric.WithAttributes(
		attribute.String("httpcore.category", category.String()),
		attribute.Int("http.response.status_code", int(res.StatusCode)),
	))

	if err := res.Send(w); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "response not delivered")
		router.logger().WarnContext(ctx, "response not delivered",
			"method", req.Method.String(),
			"path", req.Resource.Path,
			"category", category.String(),
			"status", res.StatusCode,
			"error", err,
		)
		return err
	}

	return nil
}

// headerCarrier exposes request headers to trace context propagators.
type headerCarrier Headers

func (c headerCarrier) Get(key string) string {
	value, _ := Headers(c).Value(key)
	return value
}

func (c headerCarrier) Set(key, value string) {
	c[key] = value
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}
	return keys
}

func (router *Router) logger() *slog.Logger {
	if router.Logger != nil {
		return router.Logger
	}
	return slog.Default()
}

// Routers built as struct literals have no instruments yet.
func (router *Router) spanTracer() trace.Tracer {
	if router.tracer != nil {
		return router.tracer
	}
	return otel.Tracer(instrumentationName)
}

func (router *Router) counter() metric.Int64Counter {
	if router.requests != nil {
		return router.requests
	}
	return noop.Int64Counter{}
}
