package runtime

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

type HTTPServer struct {
	srv *http.Server
}

func NewHTTPServer(addr string, handler http.Handler) *HTTPServer {
	return &HTTPServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			// No WriteTimeout: datastar streams stay open while a command runs.
			IdleTimeout: 2 * time.Minute,
		},
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most grace. A listener failure is returned right away.
func (s *HTTPServer) Run(ctx context.Context, grace time.Duration) error {
	errc := make(chan error, 1)
	go func() {
		log.Printf("[http] listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("http listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("[shutdown] signal received")
	shutCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := s.srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
