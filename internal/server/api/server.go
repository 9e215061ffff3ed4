// Package api exposes the development backend over the chat HTTP contract
// using gin.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address string
	users   *services.UserService
	chats   *services.ChatService
	logger  logging.Logger
	engine  *gin.Engine
}

func NewServer(address string, l logging.Logger, us *services.UserService, cs *services.ChatService) *Server {
	s := &Server{
		address: address,
		users:   us,
		chats:   cs,
		logger:  l.With("module", "http_server"),
	}

	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.registerRoutes(s.engine)
	return s
}

// Handler returns the routed engine, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) registerRoutes(r *gin.Engine) {
	r.POST("/login", s.login)
	r.GET("/verify_login/:user_id/:token", s.verifyLogin)
	r.POST("/chat", s.chat)
	r.GET("/get_chats/:user_id", s.getChats)
	r.GET("/get_chat/:chat_id", s.getChat)
	r.POST("/create_chat", s.createChat)
	r.DELETE("/delete_chat/:chat_id", s.deleteChat)
}
