package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kxvrh/GomokuAI/server"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	session := server.NewSession(nil)
	hub := server.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx.Done())

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: server.NewRouter(session, hub),
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Printf("[server] listening on %s", *addr)
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Printf("[server] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Printf("[server] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[server] graceful shutdown failed: %v", err)
		if closeErr := httpServer.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[server] forced close failed: %v", closeErr)
		}
	}

	cancel()
	if runErr != nil {
		log.Printf("[server] exiting after server error: %v", runErr)
	}
}
