package broadcaster

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/tokenized/pkg/logger"
)

// sendBuffer is the number of updates queued per subscriber before it is
// treated as stalled and dropped.
const sendBuffer = 16

var (
	// ErrHubStopped occurs when the hub is used after Run has returned.
	ErrHubStopped = errors.New("Hub stopped")
)

// Hub holds the live websocket subscribers. Client bookkeeping happens in the
// Run goroutine. Each client is written by its own pump goroutine, so a slow
// client never blocks the hub or the caller of Announce.
type Hub struct {
	clients    map[Client]*subscriber
	broadcast  chan []byte
	register   chan subscription
	unregister chan Client
	done       chan struct{}
}

type subscription struct {
	client   Client
	snapshot func() Update
}

// subscriber is a registered client and its queue of pending messages.
type subscriber struct {
	client Client
	send   chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[Client]*subscriber),
		broadcast:  make(chan []byte),
		register:   make(chan subscription),
		unregister: make(chan Client),
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is done. Remaining
// clients are closed on return.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case sub := <-h.register:
			s := &subscriber{
				client: sub.client,
				send:   make(chan []byte, sendBuffer),
			}

			if sub.snapshot != nil {
				b, err := json.Marshal(sub.snapshot())
				if err != nil {
					logger.Warn(ctx, "Failed to encode snapshot : %s", err)
					sub.client.Close()
					continue
				}
				s.send <- b
			}

			h.clients[sub.client] = s
			go s.writePump(ctx)
			logger.Verbose(ctx, "Subscriber registered : %d active", len(h.clients))

		case client := <-h.unregister:
			if s, ok := h.clients[client]; ok {
				h.drop(s)
			}

		case message := <-h.broadcast:
			for _, s := range h.clients {
				select {
				case s.send <- message:
				default:
					logger.Warn(ctx, "Dropping stalled subscriber")
					h.drop(s)
				}
			}

		case <-ctx.Done():
			for _, s := range h.clients {
				h.drop(s)
			}
			return
		}
	}
}

// drop removes a subscriber, stops its pump and closes the client.
func (h *Hub) drop(s *subscriber) {
	delete(h.clients, s.client)
	close(s.send)
	s.client.Close()
}

// writePump writes queued messages to the client until its queue is closed.
// A failed write closes the client. The hub drops it on unregister or when
// its queue fills.
func (s *subscriber) writePump(ctx context.Context) {
	for message := range s.send {
		if err := s.client.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn(ctx, "Failed to write to subscriber : %s", err)
			s.client.Close()
			break
		}
	}

	// Release anything still queued so the hub never waits on this client.
	for range s.send {
	}
}

// Register adds a client. It fails once the hub has stopped.
func (h *Hub) Register(client Client) error {
	return h.Subscribe(client, nil)
}

// Subscribe adds a client that is first sent the update returned by
// snapshot. Updates announced after Subscribe returns follow the snapshot.
func (h *Hub) Subscribe(client Client, snapshot func() Update) error {
	select {
	case h.register <- subscription{client: client, snapshot: snapshot}:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// Unregister removes and closes a client.
func (h *Hub) Unregister(client Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
		client.Close()
	}
}

// Announce queues the update for every registered client. It does not wait
// for the clients to receive it.
func (h *Hub) Announce(ctx context.Context, u Update) error {
	b, err := json.Marshal(u)
	if err != nil {
		return errors.Wrap(err, "marshal update")
	}

	select {
	case h.broadcast <- b:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}
