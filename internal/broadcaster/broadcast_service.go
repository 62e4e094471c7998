package broadcaster

import (
	"context"
	"sync"
	"time"

	"github.com/tokenized/pkg/logger"
	"go.opencensus.io/trace"
)

// BroadcastService fans an update out to every registered broadcaster. A
// failing broadcaster is logged and does not stop the others.
type BroadcastService struct {
	lock         sync.RWMutex
	broadcasters []Broadcaster
}

func NewBroadcastService(broadcasters ...Broadcaster) *BroadcastService {
	return &BroadcastService{
		broadcasters: broadcasters,
	}
}

// Add registers another broadcaster.
func (s *BroadcastService) Add(b Broadcaster) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.broadcasters = append(s.broadcasters, b)
}

// Announce sends the update to all broadcasters and returns the first error.
func (s *BroadcastService) Announce(ctx context.Context, u Update) error {
	ctx, span := trace.StartSpan(ctx, "internal.broadcaster.Announce")
	defer span.End()
	defer logger.Elapsed(ctx, time.Now(), "BroadcastService.Announce")

	s.lock.RLock()
	broadcasters := make([]Broadcaster, len(s.broadcasters))
	copy(broadcasters, s.broadcasters)
	s.lock.RUnlock()

	var result error
	for _, b := range broadcasters {
		if err := b.Announce(ctx, u); err != nil {
			logger.Warn(ctx, "Failed to announce update : %s", err)
			if result == nil {
				result = err
			}
		}
	}

	return result
}
