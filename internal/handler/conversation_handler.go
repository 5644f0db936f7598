// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"entraide-go/internal/service"
	"entraide-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// ConversationHandler 负责处理问答日志相关的 API 请求。
type ConversationHandler struct {
	conversationService service.ConversationService
}

// NewConversationHandler 创建一个新的 ConversationHandler 实例。
func NewConversationHandler(conversationService service.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

// SaveConversationRequest 定义了记录一轮问答的请求体结构。
// UserID 可选：匿名来源的问答以 null 记录。
type SaveConversationRequest struct {
	UserID   *uint  `json:"userId"`
	Message  string `json:"message" binding:"required"`
	Response string `json:"response" binding:"required"`
	Agent    string `json:"agent"`
}

// Save 记录一轮问答。
func (h *ConversationHandler) Save(c *gin.Context) {
	var req SaveConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": service.ErrMissingFields.Error()})
		return
	}

	conversation, err := h.conversationService.SaveConversation(req.UserID, req.Message, req.Response, req.Agent)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": err.Error()})
			return
		}
		log.Errorf("Save: failed to persist conversation, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": http.StatusCreated, "message": "success", "data": conversation})
}

// List 返回当前用户最近的问答记录，按时间倒序。
func (h *ConversationHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Impossible de récupérer l'utilisateur"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	uid := user.ID
	conversations, err := h.conversationService.GetConversations(&uid, limit)
	if err != nil {
		log.Errorf("List: failed for userID=%d, error: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": conversations})
}

// Clear 清空当前用户的问答记录，返回删除的条数。
func (h *ConversationHandler) Clear(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Impossible de récupérer l'utilisateur"})
		return
	}

	uid := user.ID
	deleted, err := h.conversationService.ClearHistory(c.Request.Context(), &uid)
	if err != nil {
		log.Errorf("Clear: failed for userID=%d, error: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{"deleted": deleted}})
}
