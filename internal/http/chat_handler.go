package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"legal-llm/internal/domain"
	"legal-llm/internal/repository"
	"legal-llm/internal/service"
)

// ChatHandler mantiene dependencias para los endpoints de sesiones y turnos.
type ChatHandler struct {
	logger   *zap.Logger
	chatServ *service.ChatService
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, chatServ *service.ChatService) *ChatHandler {
	return &ChatHandler{logger: logger, chatServ: chatServ}
}

// ListDomains maneja GET /domains.
func (h *ChatHandler) ListDomains(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"domains": domain.Domains()})
}

// CreateSession maneja POST /session.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req struct {
		Domain string `json:"domain" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create session request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if !domain.IsKnown(req.Domain) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown domain"})
		return
	}

	session, err := h.chatServ.CreateSession(c.Request.Context(), domain.ParseDomain(req.Domain))
	if err != nil {
		h.logger.Error("create session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// PostMessage maneja POST /session/:id/message. Procesa un turno completo:
// guardas, prompt y llamada al modelo.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req struct {
		Domain  string `json:"domain"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sessionID := c.Param("id")
	selected := h.resolveDomain(c, sessionID, req.Domain)

	answer, err := h.chatServ.Ask(c.Request.Context(), sessionID, selected, req.Content)
	switch {
	case errors.Is(err, service.ErrEmptyQuestion):
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty question"})
		return
	case errors.Is(err, repository.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	case err != nil:
		// Fallo del servicio de completions: sin reintentos, se reporta tal cual.
		h.logger.Error("answer generation failed", zap.Error(err), zap.String("session_id", sessionID))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not generate answer"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user_message":      answer.UserMessage,
		"assistant_message": answer.AssistantMessage,
		"guarded":           answer.Guarded,
		"guard_rule":        answer.GuardRule,
	})
}

// ListMessages maneja GET /session/:id/messages.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	sessionID := c.Param("id")

	messages, err := h.chatServ.History(c.Request.Context(), sessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if err != nil {
		h.logger.Error("list messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list messages"})
		return
	}
	if messages == nil {
		messages = []domain.Message{}
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// ClearMessages maneja DELETE /session/:id/messages (la acción "clear").
func (h *ChatHandler) ClearMessages(c *gin.Context) {
	sessionID := c.Param("id")

	err := h.chatServ.Clear(c.Request.Context(), sessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if err != nil {
		h.logger.Error("clear messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear messages"})
		return
	}

	c.Status(http.StatusNoContent)
}

// resolveDomain usa el área del request o, si falta, la de la sesión.
func (h *ChatHandler) resolveDomain(c *gin.Context, sessionID, raw string) domain.Legal {
	if raw != "" {
		return domain.ParseDomain(raw)
	}
	if session, err := h.chatServ.Session(c.Request.Context(), sessionID); err == nil {
		return session.Domain
	}
	return domain.DomainGeneral
}
