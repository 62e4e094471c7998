package node

import (
	"context"
	"time"

	"github.com/tokenized/voting-contract/internal/platform/protomux"

	"github.com/google/uuid"
	"github.com/tokenized/pkg/logger"
	"go.opencensus.io/trace"
)

// ctxKey represents the type of value for the context key.
type ctxKey int

// KeyValues is how request values or stored/retrieved.
const KeyValues ctxKey = 1

// Values represent state for each contract call.
type Values struct {
	TraceID string
	Method  string
	Now     time.Time
}

// A Handler is a type that handles a contract call within our own little
// mini framework.
type Handler func(ctx context.Context, payload []byte) ([]byte, error)

// Config is the node configuration shared with the handlers.
type Config struct {
	ContractName string
	Version      string
}

// App is the entrypoint into our application and what configures our context
// object for each of our contract methods.
type App struct {
	Config Config
	mux    *protomux.ProtoMux
	mw     []Middleware
}

// New creates an App value that handles a set of methods for the contract.
func New(config Config, mw ...Middleware) *App {
	return &App{
		Config: config,
		mux:    protomux.New(),
		mw:     mw,
	}
}

// Handle is our mechanism for mounting Handlers for a given method.
func (a *App) Handle(method string, handler Handler, mw ...Middleware) {

	// Wrap up the application-wide first, this will call the first function
	// of each middleware which will return a function of type Handler.
	handler = wrapMiddleware(wrapMiddleware(handler, mw), a.mw)

	// The function to execute for each call.
	h := func(ctx context.Context, payload []byte) ([]byte, error) {

		// Start trace span.
		ctx, span := trace.StartSpan(ctx, "internal.platform.node")
		defer span.End()

		// Set the context with the required values to process the call.
		v := Values{
			TraceID: traceID(span),
			Method:  method,
			Now:     time.Now(),
		}
		ctx = context.WithValue(ctx, KeyValues, &v)
		ctx = ContextWithLogTrace(ctx, v.TraceID)

		return handler(ctx, payload)
	}

	// Add this handler for the specified method.
	a.mux.Handle(method, h)
}

// Invoke calls the handler registered for method.
func (a *App) Invoke(ctx context.Context, method string, payload []byte) ([]byte, error) {
	defer logger.Elapsed(ctx, time.Now(), "App.Invoke "+method)

	return a.mux.Trigger(ctx, method, payload)
}

// Methods returns the registered method names.
func (a *App) Methods() []string {
	return a.mux.Methods()
}

// ValuesFromContext returns the call values, or nil outside of a call.
func ValuesFromContext(ctx context.Context) *Values {
	v, ok := ctx.Value(KeyValues).(*Values)
	if !ok {
		return nil
	}

	return v
}

// traceID uses the span's trace id, or a random id if the span has none.
func traceID(span *trace.Span) string {
	sc := span.SpanContext()
	if sc.TraceID != (trace.TraceID{}) {
		return sc.TraceID.String()
	}

	uid, _ := uuid.NewRandom()
	return uid.String()
}
