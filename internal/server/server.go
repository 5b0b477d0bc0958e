// Package server exposes a built chart and its hover interaction over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/huangsam/racechart/core"
	"github.com/huangsam/racechart/internal/canvas"
	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/schema"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server serves one immutable chart and tracks the tooltip overlay of its viewers.
type Server struct {
	cfg     *contract.Config
	chart   *core.ChartContext
	tracker *core.OverlayTracker
	metrics *Metrics
	router  chi.Router

	svgOnce sync.Once
	svg     []byte
	svgErr  error
}

// New builds the router for a chart.
func New(cfg *contract.Config, chart *core.ChartContext) *Server {
	s := &Server{
		cfg:     cfg,
		chart:   chart,
		tracker: core.NewOverlayTracker(chart, cfg.Viewport),
		metrics: NewMetrics(),
	}
	s.tracker.Observe(func(active int) { s.metrics.activeOverlays.Set(float64(active)) })
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(s.metrics.instrument)

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Get("/chart.svg", s.handleChartSVG)

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/points", s.handlePoints)
		ar.Post("/hover", s.handleHover)
		ar.Delete("/hover", s.handleLeave)
	})
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// renderSVG draws the chart once. The chart never changes after construction.
func (s *Server) renderSVG() ([]byte, error) {
	s.svgOnce.Do(func() {
		layout := s.chart.Layout()
		c, err := canvas.New(schema.SVGOut, int(layout.Width), int(layout.Height))
		if err != nil {
			s.svgErr = err
			return
		}
		core.Render(s.chart, c)
		var buf bytes.Buffer
		if err := c.Save(&buf); err != nil {
			s.svgErr = fmt.Errorf("failed to encode chart: %w", err)
			return
		}
		s.svg = buf.Bytes()
	})
	return s.svg, s.svgErr
}

// Run builds the chart and serves it until ctx is cancelled.
func Run(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	chart, err := core.BuildChart(core.Quiet(ctx), cfg, mgr)
	if err != nil {
		return err
	}

	s := New(cfg, chart)
	httpServer := &http.Server{
		Addr:              cfg.ServeAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		contract.LogInfo("🌐 Serving %d records from %s on %s", chart.Len(), chart.Source(), cfg.ServeAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	}
}
