// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"entraide-go/internal/activity"
	"entraide-go/internal/service"
	"entraide-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// AdminHandler 负责处理管理员相关的 API 请求。
type AdminHandler struct {
	adminService service.AdminService
	quotaService service.QuotaService
	recorder     *activity.Recorder
}

// NewAdminHandler 创建一个新的 AdminHandler 实例。
func NewAdminHandler(adminService service.AdminService, quotaService service.QuotaService, recorder *activity.Recorder) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		quotaService: quotaService,
		recorder:     recorder,
	}
}

// ListUsers 以分页的形式返回用户列表。
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	users, err := h.adminService.ListUsers(page, size)
	if err != nil {
		log.Errorf("ListUsers: failed, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": users})
}

// GetTransactionStats 返回已完成交易的聚合统计。
func (h *AdminHandler) GetTransactionStats(c *gin.Context) {
	stats, err := h.adminService.GetTransactionStats()
	if err != nil {
		log.Errorf("GetTransactionStats: failed, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": stats})
}

// GetActivityCounts 返回指定日期（默认今天）的活动事件计数。
func (h *AdminHandler) GetActivityCounts(c *gin.Context) {
	day := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "date invalide, format attendu: yyyy-mm-dd"})
			return
		}
		day = parsed
	}

	counts, err := h.recorder.DailyCounts(c.Request.Context(), day)
	if err != nil {
		log.Errorf("GetActivityCounts: failed, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    gin.H{"date": day.Format("2006-01-02"), "counts": counts},
	})
}

// ClearAllConversations 清空全部问答日志。
func (h *AdminHandler) ClearAllConversations(c *gin.Context) {
	deleted, err := h.adminService.ClearAllConversations(c.Request.Context())
	if err != nil {
		log.Errorf("ClearAllConversations: failed, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{"deleted": deleted}})
}

// ResetUserQuota 将指定用户的提问计数清零。
func (h *AdminHandler) ResetUserQuota(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "identifiant utilisateur invalide"})
		return
	}

	if err := h.quotaService.ResetQuestionCount(uint(userID)); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": err.Error()})
			return
		}
		log.Errorf("ResetUserQuota: failed for userID=%d, error: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success"})
}
