// ABOUTME: HTTP server for the pushup leaderboard built on gin.
// ABOUTME: Wires routes, middleware, embedded assets, and graceful shutdown.
package api

import (
	"context"
	"embed"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/harperreed/pushups/internal/storage"
)

//go:embed assets
var assetsFS embed.FS

const shutdownTimeout = 5 * time.Second

// Options configures a Server. Zero values select defaults.
type Options struct {
	AllowedOrigins []string

	// RabbitInterval quantizes rabbit pacing; zero means continuous.
	RabbitInterval time.Duration
	Logger         *log.Logger
	Debug          bool

	// Now is the clock used for new entries and rabbit pacing.
	Now func() time.Time
}

// Server serves the REST API and HTML pages over a Repository.
type Server struct {
	repo     storage.Repository
	engine   *gin.Engine
	logger   *log.Logger
	interval time.Duration
	now      func() time.Time
}

// NewServer builds the gin engine and registers every route.
func NewServer(repo storage.Repository, opts Options) *Server {
	if opts.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		repo:     repo,
		engine:   gin.New(),
		logger:   opts.Logger,
		interval: opts.RabbitInterval,
		now:      opts.Now,
	}

	s.engine.Use(requestID(), requestLogger(s.logger), gin.Recovery())
	if len(opts.AllowedOrigins) > 0 {
		s.engine.Use(cors.New(cors.Config{
			AllowOrigins:  opts.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type"},
			ExposeHeaders: []string{"Content-Length", requestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	static, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(err)
	}
	s.engine.StaticFS("/assets", http.FS(static))

	api := s.engine.Group("/api")
	{
		api.GET("/challenge", s.getChallenge)
		api.GET("/challenge/totals", s.getChallengeTotals)
		api.GET("/totals", s.getTotals)
		api.POST("/push", s.postPush)
		api.GET("/history", s.getHistory)
		api.GET("/admin-info", s.getAdminInfo)
	}

	s.engine.GET("/healthz", s.getHealth)
	s.engine.GET("/", s.boardPage)
	s.engine.GET("/:secret", s.adminPage)
}

// Handler exposes the engine for http.Server and httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
