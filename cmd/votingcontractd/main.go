package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tokenized/voting-contract/cmd/votingcontractd/bootstrap"
	"github.com/tokenized/voting-contract/cmd/votingcontractd/handlers"
	"github.com/tokenized/voting-contract/internal/broadcaster"
	"github.com/tokenized/voting-contract/internal/vote"

	"github.com/tokenized/pkg/logger"
)

var (
	buildVersion = "unknown"
	buildDate    = "unknown"
	buildUser    = "unknown"
)

// Voting Contract Daemon
//
func main() {
	// -------------------------------------------------------------------------
	// Logging

	ctx := bootstrap.NewContextWithDevelopmentLogger()

	// -------------------------------------------------------------------------
	// Config

	cfg := bootstrap.NewConfigFromEnv(ctx)

	// -------------------------------------------------------------------------
	// App Starting

	logger.Info(ctx, "Started : Application Initializing")
	defer logger.Info(ctx, "Completed")

	logger.Info(ctx, "Build %v (%v on %v)", buildVersion, buildUser, buildDate)

	nodeConfig := bootstrap.NewNodeConfig(ctx, cfg)

	// -------------------------------------------------------------------------
	// Vote Store

	store := vote.NewStore()

	// -------------------------------------------------------------------------
	// Background Services

	serviceCtx, serviceCancel := context.WithCancel(ctx)
	defer serviceCancel()

	sch := bootstrap.NewScheduler(ctx, cfg, store)
	schDone := make(chan struct{})
	go func() {
		sch.Run(serviceCtx)
		close(schDone)
	}()

	// -------------------------------------------------------------------------
	// Broadcasters

	hub := broadcaster.NewHub()
	go hub.Run(serviceCtx)

	broadcastService := broadcaster.NewBroadcastService(hub)

	if queue := bootstrap.NewAMQPBroadcaster(ctx, cfg); queue != nil {
		defer queue.Close()
		broadcastService.Add(queue)
	}

	// -------------------------------------------------------------------------
	// Start API Service

	server := &http.Server{
		Addr: cfg.HTTP.Address,
		Handler: handlers.API(nodeConfig, store, broadcastService, hub,
			cfg.HTTP.AllowedOrigins),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info(ctx, "API listening on %s", cfg.HTTP.Address)
		serverErrors <- server.ListenAndServe()
	}()

	// -------------------------------------------------------------------------
	// Shutdown

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, os.Interrupt, syscall.SIGTERM)

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			logger.Fatal(ctx, "Error starting server: %s", err)
		}

	case <-osSignals:
		logger.Info(ctx, "Start shutdown...")

		shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
		defer cancel()

		// Asking listener to shutdown and load shed.
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Graceful shutdown did not complete in %s : %s",
				cfg.HTTP.ShutdownTimeout, err)
			if err := server.Close(); err != nil {
				logger.Error(ctx, "Could not stop http server: %s", err)
			}
		}
	}

	serviceCancel()
	<-hub.Done()
	<-schDone

	bootstrap.ReportTally(ctx, store)
}
