// Package healthcheck provides a minimal HTTP health check server.
package healthcheck

import (
	"context"
	"net/http"
	"time"
)

// Check reports why the service is not ready, or nil when it is.
type Check func() error

// Handler answers 200 "ok" while check passes and 503 with the error text
// otherwise. A nil check always passes.
func Handler(check Check) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if check != nil {
			if err := check(); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(err.Error()))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}

// Server is a minimal HTTP server for health checks.
type Server struct {
	server *http.Server
}

// New creates a new lightweight health check server.
func New(addr string, check Check) *Server {
	mux := http.NewServeMux()
	h := Handler(check)
	mux.Handle("/", h)
	mux.Handle("/health", h)

	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadTimeout:       2 * time.Second,
			WriteTimeout:      2 * time.Second,
			IdleTimeout:       30 * time.Second,
			ReadHeaderTimeout: 1 * time.Second,
			MaxHeaderBytes:    1 << 10, // 1KB
		},
	}
}

// Start starts the health check server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Probe performs a quick health check against url.
func Probe(url string) error {
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &UnhealthyError{StatusCode: resp.StatusCode}
	}
	return nil
}

// UnhealthyError is returned by Probe for a non-200 answer.
type UnhealthyError struct {
	StatusCode int
}

func (e *UnhealthyError) Error() string {
	return "unhealthy: " + http.StatusText(e.StatusCode)
}
