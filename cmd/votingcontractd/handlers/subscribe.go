package handlers

import (
	"net/http"
	"net/url"

	"github.com/tokenized/voting-contract/internal/broadcaster"
	"github.com/tokenized/voting-contract/internal/vote"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/tokenized/pkg/logger"
)

// Subscribe serves the live tally feed.
type Subscribe struct {
	Store          *vote.Store
	Hub            *broadcaster.Hub
	AllowedOrigins []string
}

// Serve upgrades the request to a websocket, sends the current tally and then
// one update per accepted vote until the client goes away.
func (s *Subscribe) Serve(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn(ctx, "Failed to upgrade subscriber : %s", err)
		return
	}

	client := broadcaster.NewWebsocketClient(conn)
	snapshot := func() broadcaster.Update {
		return broadcaster.Snapshot(s.Store.Tally())
	}

	if err := s.Hub.Subscribe(client, snapshot); err != nil {
		logger.Warn(ctx, "Failed to subscribe : %s", err)
		client.Close()
		return
	}

	logger.Verbose(ctx, "Subscriber connected from %s", r.RemoteAddr)

	// Subscribers only listen. Reading detects the close.
	for {
		if _, _, err := client.ReadMessage(); err != nil {
			break
		}
	}

	s.Hub.Unregister(client)
	logger.Verbose(ctx, "Subscriber disconnected from %s", r.RemoteAddr)
}

// checkOrigin accepts requests without an origin, from the same host, or from
// an allowed origin.
func (s *Subscribe) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if len(origin) == 0 {
		return true
	}

	for _, allowed := range s.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return u.Host == r.Host
}
