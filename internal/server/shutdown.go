// If you are AI: This file handles graceful shutdown orchestration for the server process.
// In-flight edits finish under their document lock before Shutdown returns.

package server

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// shutdownTimeout bounds how long open requests and event streams may drain.
const shutdownTimeout = 5 * time.Second

// ShutdownHandler manages graceful shutdown on SIGINT or SIGTERM.
type ShutdownHandler struct {
	server *Server
	ctx    context.Context
	cancel context.CancelFunc
}

// NewShutdownHandler creates a handler that listens for termination signals.
// The provided context is used as the parent for shutdown operations.
func NewShutdownHandler(server *Server, ctx context.Context) *ShutdownHandler {
	shutdownCtx, cancel := context.WithCancel(ctx)
	return &ShutdownHandler{
		server: server,
		ctx:    shutdownCtx,
		cancel: cancel,
	}
}

// Wait blocks until a termination signal is received, then initiates shutdown.
// This method should be called from the main goroutine.
func (h *ShutdownHandler) Wait() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	return h.waitOn(sigChan)
}

// waitOn shuts down after the first value on sigs or when the parent context ends.
func (h *ShutdownHandler) waitOn(sigs <-chan os.Signal) error {
	select {
	case sig := <-sigs:
		log.Printf("server: received %v, shutting down", sig)
	case <-h.ctx.Done():
		log.Printf("server: context done, shutting down")
	}

	// Cancel context to signal shutdown
	h.cancel()
	return h.server.ShutdownWithTimeout()
}

// Context returns the shutdown context that is cancelled when shutdown begins.
func (h *ShutdownHandler) Context() context.Context {
	return h.ctx
}
