// Package server exposes the payer check as a local HTTP service.
//
// Routes:
//
//	POST /v1/check               { shortCode, text } -> verdict with masked identifiers
//	GET  /v1/records/{shortCode} public rail commitments of a short code
//	GET  /healthz                liveness
//	GET  /metrics                Prometheus metrics
//
// Pasted text and raw identifiers are never logged or echoed back.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/verifywire/verifywire-go/pkg/contractCaller"
	"github.com/verifywire/verifywire-go/pkg/server/metrics"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultListenAddress = "127.0.0.1:8787"
	DefaultRatePerSecond = 5
	DefaultBurst         = 10

	maxBodyBytes = 64 << 10
)

type Config struct {
	ListenAddress string
	RatePerSecond float64
	Burst         int
}

func DefaultConfig() *Config {
	return &Config{
		ListenAddress: DefaultListenAddress,
		RatePerSecond: DefaultRatePerSecond,
		Burst:         DefaultBurst,
	}
}

// Server handles HTTP check requests
type Server struct {
	config     *Config
	registry   contractCaller.IRegistryReader
	logger     *zap.Logger
	metrics    *metrics.Metrics
	gatherer   prometheus.Gatherer
	limiter    *rate.Limiter
	httpServer *http.Server
	listener   net.Listener
}

// NewServer builds the router. registry may be nil when no registry is
// configured; checks then answer with a configuration error.
func NewServer(cfg *Config, registry contractCaller.IRegistryReader, logger *zap.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	reg := prometheus.NewRegistry()

	s := &Server{
		config:   cfg,
		registry: registry,
		logger:   logger,
		metrics:  metrics.New(reg),
		gatherer: reg,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Route("/v1", func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post("/check", s.handleCheck)
		r.Get("/records/{shortCode}", s.handleGetRecord)
	})

	s.httpServer = &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start binds the listen address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddress, err)
	}
	s.listener = ln

	go func() {
		s.logger.Sugar().Infow("Starting HTTP server", "address", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Sugar().Errorw("HTTP server error", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.config.ListenAddress
	}
	return s.listener.Addr().String()
}

// Stop drains in-flight requests until ctx is done.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// GetHandler returns the HTTP handler (for testing)
func (s *Server) GetHandler() http.Handler {
	return s.httpServer.Handler
}
