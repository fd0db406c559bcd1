package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/poiesic/toolshelf/core"
	"github.com/poiesic/toolshelf/search"
	"github.com/poiesic/toolshelf/storage"
)

// shutdownTimeout bounds graceful shutdown in Run.
const shutdownTimeout = 5 * time.Second

// Catalog is the part of toolshelf.Catalog the server needs.
type Catalog interface {
	ItemRepository() storage.ItemRepository
	Filter(ctx context.Context, conditions *core.AdvancedSearchConditions) ([]*core.Item, error)
	SearchWithDetails(ctx context.Context, query string) (*search.Outcome, error)
}

// Server serves the catalog API.
type Server struct {
	catalog     Catalog
	val         *Validator
	router      *gin.Engine
	corsOrigins []string
	logger      *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// WithCORS allows cross-origin requests from origins. "*" allows any origin.
func WithCORS(origins ...string) Option {
	return func(s *Server) {
		s.corsOrigins = append(s.corsOrigins, origins...)
	}
}

// New creates a server for catalog.
func New(catalog Catalog, opts ...Option) (*Server, error) {
	if catalog == nil {
		return nil, errors.New("catalog required")
	}

	s := &Server{
		catalog: catalog,
		val:     NewValidator(),
		logger:  slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	if len(s.corsOrigins) > 0 {
		router.Use(cors.New(s.corsConfig()))
	}

	router.GET("/health", s.Health)

	v1 := router.Group("/api/v1")
	v1.GET("/items", s.ListItems)
	v1.GET("/items/:id", s.GetItem)
	v1.POST("/items/filter", s.FilterItems)
	v1.POST("/items/search", s.SearchItems)

	return router
}

func (s *Server) corsConfig() cors.Config {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range s.corsOrigins {
		if origin == "*" {
			config.AllowAllOrigins = true
			return config
		}
	}
	config.AllowOrigins = s.corsOrigins
	return config
}

// requestLogger logs one line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
