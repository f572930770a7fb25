// Package web serves the snake game to browsers: an embedded canvas page,
// one websocket session per connection, best-score endpoints and metrics.
package web

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

//go:embed assets/index.html
var indexHTML []byte

// Options configures a Server.
type Options struct {
	Config  config.WebConfig
	Speed   config.SpeedCurve
	Seed    int64 // 0 = time-based per session
	Scores  *storage.HighScores
	Logger  *log.Logger
	Metrics *Metrics // nil = NewMetrics()
}

// Server is the browser front end.
type Server struct {
	cfg     config.WebConfig
	speed   config.SpeedCurve
	seed    int64
	scores  *storage.HighScores
	logger  *log.Logger
	metrics *Metrics

	router   *gin.Engine
	upgrader websocket.Upgrader

	// sessions are bound to this context so shutdown reaches hijacked connections
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer builds the router.
func NewServer(opts Options) *Server {
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:     opts.Config,
		speed:   opts.Speed,
		seed:    opts.Seed,
		scores:  opts.Scores,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		ctx:     ctx,
		cancel:  cancel,
	}

	allowedOrigin := opts.Config.AllowedOrigin
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	s.metrics.HighScore.Set(float64(s.scores.Load(ctx)))
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/", s.handleIndex)
	r.GET("/ws", s.handleWS)
	r.GET("/api/highscore", s.handleGetHighScore)
	r.DELETE("/api/highscore", s.handleResetHighScore)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	return r
}

// requestLogger logs each request at debug level.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) handleGetHighScore(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"high_score": s.scores.Load(c.Request.Context())})
}

func (s *Server) handleResetHighScore(c *gin.Context) {
	s.scores.ClearHighScore()
	s.metrics.HighScore.Set(0)
	s.logger.Info("best score reset", "remote", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"high_score": 0})
}

// handleWS upgrades the connection and runs one game session on it.
func (s *Server) handleWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", c.ClientIP(), "err", err)
		return
	}

	id := uuid.NewString()
	cl := newClient(id, conn, s.logger)

	engine := snake.New(snake.Options{
		Seed:      s.seed,
		HighScore: s.scores.Load(c.Request.Context()),
		Store:     s.scores,
		Speed:     s.speed,
	})

	cl.session = session.New(session.Options{
		ID:     id,
		Engine: engine,
		Logger: s.logger,
		Observer: func(u session.Update) {
			s.metrics.Observe(u)
			cl.sendState(u.Snapshot)
		},
	})

	s.metrics.SessionsActive.Inc()
	s.logger.Info("session connected", "session", id, "remote", c.ClientIP())

	go func() {
		cl.session.Run(s.ctx)
		s.metrics.SessionsActive.Dec()
		s.logger.Info("session disconnected", "session", id)
	}()
	go cl.writePump()
	go cl.readPump()
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server started", "address", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.cancel()
		if ok {
			return fmt.Errorf("web: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server...")
	s.cancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	s.logger.Info("server exited")
	return nil
}

// Close stops all sessions without serving.
func (s *Server) Close() {
	s.cancel()
}
