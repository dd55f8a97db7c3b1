package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/amescasi/studyloop/internal/analysis"
	"github.com/amescasi/studyloop/internal/storage"
)

// Server exposes the session store and analysis pipeline over HTTP.
type Server struct {
	store  storage.Provider
	engine *analysis.Engine
	logger *logrus.Logger
	router *gin.Engine
}

func New(store storage.Provider, engine *analysis.Engine, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}

	s := &Server{
		store:  store,
		engine: engine,
		logger: logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", s.healthCheck)
		api.GET("/sessions", s.listSessions)
		api.GET("/sessions/:id", s.getSession)
		api.POST("/sessions", s.createSession)
		api.GET("/report", s.weeklyReport)
		api.POST("/analyze", s.analyzeNotes)
		api.GET("/stats", s.quickStats)
	}

	s.router = router
	return s
}

// Router returns the configured gin engine. Exposed for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Run(addr string) error {
	s.logger.WithField("addr", addr).Info("starting HTTP server")
	return s.router.Run(addr)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("request")
	}
}

// corsMiddleware allows the local web frontends used during
// development to call the API.
func corsMiddleware() gin.HandlerFunc {
	allowed := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
