// Package httpapi exposes the server's HTTP surface: the /api/auth,
// /api/progress and /api/speech route groups plus the prometheus endpoint.
package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"letterpal/internal/logging"
	"letterpal/internal/server/services"
)

// Server bundles the services the handlers dispatch to.
type Server struct {
	users      *services.UserService
	progress   *services.ProgressService
	recordings *services.RecordingService
	jwtSecret  []byte
	log        logging.Logger
}

func NewServer(users *services.UserService, progress *services.ProgressService,
	recordings *services.RecordingService, jwtSecret []byte, log logging.Logger) *Server {
	return &Server{
		users:      users,
		progress:   progress,
		recordings: recordings,
		jwtSecret:  jwtSecret,
		log:        log,
	}
}

// Router builds the gin engine with all routes attached. Authenticated
// groups sit behind the bearer-token middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(metricsMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", s.handleRegister)
		authGroup.POST("/login", s.handleLogin)
		authGroup.GET("/me", s.authRequired(), s.handleMe)
	}

	progressGroup := r.Group("/api/progress", s.authRequired())
	{
		progressGroup.GET("/", s.handleAllProgress)
		progressGroup.POST("/update", s.handleUpdateProgress)
		progressGroup.POST("/checkin", s.handleCheckin)
		progressGroup.GET("/checkins", s.handleCheckins)
		progressGroup.GET("/stats", s.handleStats)
	}

	speechGroup := r.Group("/api/speech", s.authRequired())
	{
		speechGroup.POST("/save", s.handleSaveRecording)
	}

	return r
}
