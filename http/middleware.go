package http

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

type Middleware func(next Handler) Handler

// RecoverMiddleware converts a panicking handler into an error wrapping
// ErrHandlerPanic. The error propagates like any other handler failure and
// is reported by whoever receives it; logger only gets the stack at debug
// level.
func RecoverMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next Handler) Handler {
		return HandlerFunc(func(req *Request) (res Response, err error) {
			defer func() {
				if recovered := recover(); recovered != nil {
					logger.Debug("handler panicked", "path", req.Resource.Path, "panic", recovered, "stack", string(debug.Stack()))

					res = Response{}
					err = fmt.Errorf("%w: %v", ErrHandlerPanic, recovered)
				}
			}()

			return next.Handle(req)
		})
	}
}
