// Package httpapi exposes the shuffle services over HTTP using gin.
package httpapi

import (
	"net/http"
	"time"

	"goshuffle/app"
	"goshuffle/internal"
	"goshuffle/internal/errors"

	"github.com/gin-gonic/gin"
)

// Server represents the shuffle HTTP API
type Server struct {
	router      *gin.Engine
	shuffles    *app.ShuffleService
	simulations *app.SimulationService
	logger      *internal.Logger
}

// NewServer creates a server with its routes registered
func NewServer(shuffles *app.ShuffleService, simulations *app.SimulationService, logger *internal.Logger) *Server {
	s := &Server{
		router:      gin.New(),
		shuffles:    shuffles,
		simulations: simulations,
		logger:      logger.With("HTTP"),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	})
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.router.POST("/shuffle", s.handleShuffle)
	s.router.GET("/strategies", s.handleStrategies)
	s.router.GET("/default", s.handleGetDefault)
	s.router.PUT("/default", s.handleSetDefault)
	s.router.POST("/simulate", s.handleSimulate)
}

// Handler returns the router for use with an http.Server or in tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// respondError writes err with the status its code maps to
func (s *Server) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(errors.FromDomain(err)),
	})
}
