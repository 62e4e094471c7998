package node

import (
	"context"

	"github.com/tokenized/pkg/logger"
)

// Middleware is a function designed to run some code before and/or after
// another Handler.
type Middleware func(Handler) Handler

// wrapMiddleware wraps a handler with some middleware. The first middleware
// in the slice is the outermost.
func wrapMiddleware(handler Handler, mw []Middleware) Handler {

	// Wrap with our middleware in reverse order so the first one is called
	// first.
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			handler = mw[i](handler)
		}
	}

	return handler
}

// ErrorLogger logs the error returned by a handler before passing it on.
func ErrorLogger(next Handler) Handler {
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		b, err := next(ctx, payload)
		if err != nil {
			method := ""
			if v := ValuesFromContext(ctx); v != nil {
				method = v.Method
			}
			logger.Warn(ctx, "Method %s failed : %s", method, err)
		}

		return b, err
	}
}
