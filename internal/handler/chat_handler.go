// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"entraide-go/internal/service"
	"entraide-go/pkg/log"
	"entraide-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// ChatHandler 负责处理 AI 问答与视频令牌相关的请求。
type ChatHandler struct {
	chatService        service.ChatService
	streamTokenManager *token.StreamTokenManager
}

// NewChatHandler 创建一个新的 ChatHandler。
func NewChatHandler(chatService service.ChatService, streamTokenManager *token.StreamTokenManager) *ChatHandler {
	return &ChatHandler{
		chatService:        chatService,
		streamTokenManager: streamTokenManager,
	}
}

// ChatRequest 定义了 AI 问答 API 的请求体结构。
type ChatRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Agent  string `json:"agent"`
}

// Chat 处理一次同步的 AI 问答请求。
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "prompt requis"})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Impossible de récupérer l'utilisateur"})
		return
	}

	result, err := h.chatService.Chat(c.Request.Context(), user, req.Prompt, req.Agent)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuotaExceeded):
			c.JSON(http.StatusTooManyRequests, gin.H{"code": http.StatusTooManyRequests, "message": err.Error()})
		case errors.Is(err, service.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": err.Error()})
		default:
			log.Errorf("Chat: relay failed for userID=%d, error: %v", user.ID, err)
			c.JSON(http.StatusBadGateway, gin.H{"code": http.StatusBadGateway, "message": "Le service IA est temporairement indisponible"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": result})
}

// GetStreamToken 为当前用户签发视频 SDK 的访问令牌。
func (h *ChatHandler) GetStreamToken(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Impossible de récupérer l'utilisateur"})
		return
	}

	streamToken, err := h.streamTokenManager.Generate(strconv.FormatUint(uint64(user.ID), 10))
	if err != nil {
		log.Errorf("GetStreamToken: failed for userID=%d, error: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Impossible de générer le token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    gin.H{"token": streamToken},
	})
}
