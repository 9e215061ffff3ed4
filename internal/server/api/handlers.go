package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.UserID, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Info(c.Request.Context(), "login rejected", "user_id", req.UserID)
			c.JSON(http.StatusUnauthorized, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

func (s *Server) verifyLogin(c *gin.Context) {
	ok := s.users.Verify(c.Param("user_id"), c.Param("token"))
	c.JSON(http.StatusOK, gin.H{"authenticated": ok})
}

type chatRequest struct {
	UserID    string  `json:"user_id"`
	Message   string  `json:"message"`
	SessionID *string `json:"session_id"`
	Token     string  `json:"token"`
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is empty"})
		return
	}
	if req.Token != "" && !s.users.Verify(req.UserID, req.Token) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	reply, err := s.chats.Reply(c.Request.Context(), req.UserID, req.Message, req.SessionID)
	if err != nil {
		s.logger.Error(c.Request.Context(), "reply failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reply failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":      reply.Text,
		"in_flow":    false,
		"session_id": reply.SessionID,
	})
}

func (s *Server) getChats(c *gin.Context) {
	list, err := s.chats.List(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) getChat(c *gin.Context) {
	msgs, err := s.chats.Messages(c.Request.Context(), c.Param("chat_id"))
	if err != nil {
		s.writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

type createChatRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
}

func (s *Server) createChat(c *gin.Context) {
	var req createChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	chat, err := s.chats.Create(c.Request.Context(), req.UserID, req.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, chat)
}

func (s *Server) deleteChat(c *gin.Context) {
	if err := s.chats.Delete(c.Request.Context(), c.Param("chat_id")); err != nil {
		s.writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) writeLookupError(c *gin.Context, err error) {
	if errors.Is(err, common.ErrorNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
