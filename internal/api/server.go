package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ErregeaHub/api-fishit/internal/config"
	"github.com/ErregeaHub/api-fishit/internal/roblox"
	"github.com/ErregeaHub/api-fishit/internal/security"
)

type Server struct {
	log     *slog.Logger
	cfg     config.Config
	roblox  *roblox.Client
	router  *gin.Engine
	limiter *security.LimiterStore
}

func NewServer(log *slog.Logger, cfg config.Config, client *roblox.Client) *Server {
	s := &Server{
		log:     log,
		cfg:     cfg,
		roblox:  client,
		router:  gin.New(),
		limiter: security.PerMinute(cfg.RateLimitPerMin, cfg.RateLimitBurst, 10*time.Minute),
	}

	gin.SetMode(gin.ReleaseMode)
	r := s.router
	r.Use(gin.Recovery())
	r.Use(s.corsMiddleware())
	r.Use(s.loggingMiddleware())
	r.Use(s.rateLimitMiddleware())

	// Health check must answer fast so deployment probes pass.
	r.GET("/", s.health)
	r.POST("/api/status", s.status)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ctx bounds one inbound request. The budget covers every outbound call in
// the pipeline, including one place lookup per in-game user.
func (s *Server) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 90*time.Second)
}
