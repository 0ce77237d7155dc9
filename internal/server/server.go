// Package server exposes the journal over a small local JSON API so a UI can
// render it. Every derived value is computed by the analytics package on
// each request; the server keeps no state of its own.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jgoulah/wakerefresh/internal/entry"
	"github.com/jgoulah/wakerefresh/internal/history"
	"github.com/jgoulah/wakerefresh/pkg/models"
)

// Options configures a Server
type Options struct {
	WindowDays       int
	Roster           []models.Competitor
	LeaderboardLimit int
	Logger           *zap.Logger
	Now              func() time.Time
	Normalizer       *entry.Normalizer
}

// Server serves the local API
type Server struct {
	gateway    *history.Gateway
	normalizer *entry.Normalizer
	windowDays int
	roster     []models.Competitor
	limit      int
	logger     *zap.Logger
	now        func() time.Time
}

// New creates a server backed by gateway
func New(gateway *history.Gateway, opts Options) *Server {
	s := &Server{
		gateway:    gateway,
		normalizer: opts.Normalizer,
		windowDays: opts.WindowDays,
		roster:     opts.Roster,
		limit:      opts.LeaderboardLimit,
		logger:     opts.Logger,
		now:        opts.Now,
	}
	if s.normalizer == nil {
		s.normalizer = entry.NewNormalizer(nil, nil)
	}
	if s.windowDays <= 0 {
		s.windowDays = 14
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Router builds the gin engine with every route registered
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/entries", s.listEntries)
	api.POST("/entries", s.createEntry)
	api.GET("/stats", s.stats)
	api.GET("/leaderboard", s.leaderboard)
	api.GET("/export.csv", s.exportCSV)
	api.GET("/survey", s.getSurvey)
	api.PUT("/survey", s.putSurvey)

	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}

func requestLogger(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		l.Info("http_request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
