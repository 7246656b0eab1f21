package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	v1 "github.com/TagiaHuy/SendEmail/internal/api/v1"
	"github.com/TagiaHuy/SendEmail/internal/config"
)

// Server HTTP server của công cụ
type Server struct {
	router *gin.Engine
	v1     *v1.Handler
}

// NewServer khởi tạo server từ cấu hình
func NewServer(cfg *config.AppConfig, log zerolog.Logger) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router: gin.Default(),
		v1:     v1.NewHandler(cfg, log),
	}

	s.setupRoutes(devMode)

	return s
}

// setupRoutes đăng ký route
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// API
	api := s.router.Group("/api")
	{
		s.v1.RegisterRoutes(api)
	}

	if devMode {
		// Chế độ dev: chuyển tiếp sang server giao diện
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	}
}

// Run chạy server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
