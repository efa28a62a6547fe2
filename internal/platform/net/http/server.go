package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"activitycal/internal/platform/config"
	"activitycal/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns a chi mux and the stdlib server around it
type Server struct {
	mux *chi.Mux
	srv *stdhttp.Server
}

// NewServer reads PORT from cfg (default 4000) and lets opts configure the mux
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		mux: m,
		srv: &stdhttp.Server{
			Addr:              cfg.MayPort("PORT", "4000"),
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Router exposes the mux through the Router seam
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx is done, then drains for up to 15s
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.srv.Addr).Msg("http listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	log.Info().Msg("http shutting down")
	return s.srv.Shutdown(sctx)
}
