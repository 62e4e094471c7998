package protomux

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownMethod occurs when no handler is registered for a method.
	ErrUnknownMethod = errors.New("Unknown method")
)

// A HandlerFunc handles a contract method call.
type HandlerFunc func(ctx context.Context, payload []byte) ([]byte, error)

// ProtoMux routes contract method calls to their handlers.
type ProtoMux struct {
	lock     sync.RWMutex
	Handlers map[string]HandlerFunc
}

func New() *ProtoMux {
	pm := &ProtoMux{
		Handlers: make(map[string]HandlerFunc),
	}

	return pm
}

// Handle registers a new handler. Registering a method twice replaces the
// earlier handler.
func (p *ProtoMux) Handle(method string, handler HandlerFunc) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.Handlers[method] = handler
}

// Trigger fires the handler for a method.
func (p *ProtoMux) Trigger(ctx context.Context, method string, payload []byte) ([]byte, error) {
	p.lock.RLock()
	handler, exists := p.Handlers[method]
	p.lock.RUnlock()

	if !exists {
		return nil, errors.Wrap(ErrUnknownMethod, method)
	}

	return handler(ctx, payload)
}

// Methods returns the names of the registered methods in sorted order.
func (p *ProtoMux) Methods() []string {
	p.lock.RLock()
	defer p.lock.RUnlock()

	result := make([]string, 0, len(p.Handlers))
	for method := range p.Handlers {
		result = append(result, method)
	}

	sort.Strings(result)
	return result
}
