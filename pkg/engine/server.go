package engine

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mockforge/mockforge/pkg/logging"
)

// Server hosts the dispatch surface and the admin API on one listener.
type Server struct {
	handler *Handler
	httpSrv *http.Server
	log     *slog.Logger
}

// NewServer mounts the admin API at AdminPrefix and the dispatcher at
// prefix (the whole root when prefix is empty or "/").
func NewServer(addr, prefix string, h *Handler, log *slog.Logger) *Server {
	if log == nil {
		log = logging.Nop()
	}

	root := chi.NewRouter()
	root.Mount(AdminPrefix, NewAdmin(h).Router())

	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		root.Handle("/*", h)
	} else {
		root.Handle(prefix+"/*", http.StripPrefix(prefix, h))
	}

	return &Server{
		handler: h,
		log:     log,
		httpSrv: &http.Server{
			Addr:              addr,
			Handler:           root,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start serves until Shutdown. It blocks.
func (s *Server) Start() error {
	s.log.Info("server listening", "addr", s.httpSrv.Addr)
	err := s.httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the listener and drains in-flight webhook deliveries.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpSrv.Shutdown(ctx)
	s.handler.Notifier().Wait()
	return err
}
