package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Timeouts at the boundary keep a slow collaborator from hanging
// requests indefinitely.
const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 120 * time.Second
	defaultIdleTimeout  = 120 * time.Second
)

// Server is the HTTP boundary of the service.
type Server struct {
	srv *http.Server
	log *zap.Logger
}

// NewServer wires routes and middleware and returns a server listening
// on the given port when Run is called.
func NewServer(port int, debug bool, handler *Handler, ready func() bool, log *zap.Logger) *Server {
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(RequestID(), RequestLogger(log), gin.Recovery(), CORS())

	router.GET("/health", handler.Health)
	router.GET("/ready", handler.Ready(ready))

	v1 := router.Group("/api")
	{
		v1.POST("/chat", handler.Chat)
	}

	return &Server{
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      router,
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
			IdleTimeout:  defaultIdleTimeout,
		},
		log: log,
	}
}

// Run blocks serving requests until Shutdown or a listener error.
func (s *Server) Run() error {
	s.log.Info("http server listening", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
