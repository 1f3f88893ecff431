// Package server binds the HTTP listener and drives graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ErrForcedShutdown is returned by Serve when in-flight requests did not finish within the
// shutdown timeout and the server had to be closed.
var ErrForcedShutdown = errors.New("server forced to shut down")

// Listen binds host:port. When the port is taken it tries the next one, up to maxAttempts
// ports in total.
func Listen(host string, port, maxAttempts int, logger *zap.Logger) (net.Listener, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		addr := net.JoinHostPort(host, strconv.Itoa(port+attempt))
		ln, err := net.Listen("tcp", addr)
		if err == nil {
			return ln, nil
		}
		if !errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("server: failed to listen on %s: %w", addr, err)
		}
		logger.Warn("Port in use, trying next", zap.String("addr", addr))
	}
	return nil, fmt.Errorf("server: no free port in %d..%d after %d attempts", port, port+maxAttempts-1, maxAttempts)
}

// Serve runs srv on ln until ctx is cancelled, then shuts it down. Requests still running
// after shutdownTimeout are cut off and ErrForcedShutdown is returned.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Server is shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown timed out, closing connections", zap.Error(err))
		_ = srv.Close()
		return ErrForcedShutdown
	}
	logger.Info("Server stopped gracefully")
	return nil
}
