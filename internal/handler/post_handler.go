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

// PostHandler 负责处理帖子相关的 API 请求。
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler 创建一个新的 PostHandler 实例。
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest 定义了创建帖子的请求体结构。
type CreatePostRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Published bool   `json:"published"`
}

// UpdatePostRequest 定义了更新帖子的请求体结构，字段均可选。
type UpdatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Create 创建一篇帖子。
func (h *PostHandler) Create(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": service.ErrMissingFields.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Impossible de récupérer l'utilisateur"})
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), user.ID, req.Title, req.Content, req.Published)
	if err != nil {
		log.Errorf("Create: failed for userID=%d, error: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": http.StatusCreated, "message": "success", "data": post})
}

// Get 根据 ID 返回一篇帖子。
func (h *PostHandler) Get(c *gin.Context) {
	postID, err := parseIDParam(c)
	if err != nil {
		return
	}

	post, err := h.postService.GetPost(postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": post})
}

// Update 更新一篇帖子，仅作者本人可操作。
func (h *PostHandler) Update(c *gin.Context) {
	postID, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": service.ErrMissingFields.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Impossible de récupérer l'utilisateur"})
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), postID, user.ID, req.Title, req.Content)
	if err != nil {
		respondPostError(c, err, user.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": post})
}

// Publish 将帖子标记为已发布。
func (h *PostHandler) Publish(c *gin.Context) {
	postID, err := parseIDParam(c)
	if err != nil {
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Impossible de récupérer l'utilisateur"})
		return
	}

	post, err := h.postService.PublishPost(c.Request.Context(), postID, user.ID)
	if err != nil {
		respondPostError(c, err, user.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": post})
}

// Delete 删除一篇帖子及其评论。
func (h *PostHandler) Delete(c *gin.Context) {
	postID, err := parseIDParam(c)
	if err != nil {
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Impossible de récupérer l'utilisateur"})
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), postID, user.ID); err != nil {
		respondPostError(c, err, user.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success"})
}

// List 分页返回已发布的帖子。
func (h *PostHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	posts, total, err := h.postService.ListPublished(page, size)
	if err != nil {
		log.Errorf("List: failed, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data": gin.H{
			"content":       posts,
			"totalElements": total,
			"page":          page,
			"size":          size,
		},
	})
}

// ListMine 返回当前用户的全部帖子，含草稿。
func (h *PostHandler) ListMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Impossible de récupérer l'utilisateur"})
		return
	}

	posts, err := h.postService.ListByAuthor(user.ID)
	if err != nil {
		log.Errorf("ListMine: failed for userID=%d, error: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": posts})
}

// Search 对已发布帖子执行全文检索。
func (h *PostHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "paramètre q requis"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	results, err := h.postService.SearchPosts(c.Request.Context(), query, size)
	if err != nil {
		log.Errorf("Search: failed for query '%s', error: %v", query, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "La recherche est temporairement indisponible"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": results})
}

// parseIDParam 解析路径参数 id，失败时直接写出 400 响应。
func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "identifiant invalide"})
		return 0, err
	}
	return uint(id), nil
}

// respondPostError 将帖子相关的业务错误映射为 HTTP 状态码。
func respondPostError(c *gin.Context, err error, userID uint) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": err.Error()})
	case errors.Is(err, service.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"code": http.StatusForbidden, "message": err.Error()})
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": err.Error()})
	default:
		log.Errorf("post operation failed for userID=%d, error: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
	}
}
