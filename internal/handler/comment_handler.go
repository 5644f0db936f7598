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

// CommentHandler 负责处理评论相关的 API 请求。
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler 创建一个新的 CommentHandler 实例。
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest 定义了创建评论的请求体结构。
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create 在指定帖子下创建一条评论。
func (h *CommentHandler) Create(c *gin.Context) {
	postID, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": service.ErrMissingFields.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Impossible de récupérer l'utilisateur"})
		return
	}

	comment, err := h.commentService.CreateComment(postID, user.ID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": err.Error()})
		case errors.Is(err, service.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": err.Error()})
		default:
			log.Errorf("Create: comment failed for userID=%d, error: %v", user.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": http.StatusCreated, "message": "success", "data": comment})
}

// List 返回指定帖子下的全部评论，按时间正序。
func (h *CommentHandler) List(c *gin.Context) {
	postID, err := parseIDParam(c)
	if err != nil {
		return
	}

	comments, err := h.commentService.ListByPost(postID)
	if err != nil {
		log.Errorf("List: comments failed for postID=%d, error: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": comments})
}

// Delete 删除一条评论，评论作者或帖子作者有权操作。
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("commentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "identifiant invalide"})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Impossible de récupérer l'utilisateur"})
		return
	}

	if err := h.commentService.DeleteComment(uint(commentID), user.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": err.Error()})
		case errors.Is(err, service.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"code": http.StatusForbidden, "message": err.Error()})
		default:
			log.Errorf("Delete: comment failed for userID=%d, error: %v", user.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success"})
}
