package handlers

import (
	"net/http"

	"github.com/tokenized/voting-contract/internal/broadcaster"
	"github.com/tokenized/voting-contract/internal/contract"
	"github.com/tokenized/voting-contract/internal/platform/node"
	"github.com/tokenized/voting-contract/internal/vote"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// API returns a handler for the contract methods and the HTTP routes that
// expose them.
func API(config *node.Config, store *vote.Store, bs broadcaster.Broadcaster,
	hub *broadcaster.Hub, allowedOrigins []string) http.Handler {

	app := node.New(*config, node.ErrorLogger)

	// Register contract methods.
	v := Voting{
		Store:       store,
		Broadcaster: bs,
	}

	app.Handle(contract.MethodCastAndTally, v.CastAndTally)

	// Register HTTP routes.
	c := Contract{
		App: app,
	}

	s := Subscribe{
		Store:          store,
		Hub:            hub,
		AllowedOrigins: allowedOrigins,
	}

	h := Health{
		Config: config,
		Store:  store,
		App:    app,
	}

	router := httprouter.New()
	router.POST("/api/voting-contract", c.Envelope)
	router.POST("/api/"+contract.MethodCastAndTally, c.Method(contract.MethodCastAndTally))
	router.GET("/api/ws", s.Serve)
	router.GET("/health", h.Check)

	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}
