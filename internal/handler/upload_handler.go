// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"entraide-go/internal/config"
	"entraide-go/pkg/log"
	"entraide-go/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadHandler 负责签发对象存储的预签名上传地址。
type UploadHandler struct {
	cfg config.MinIOConfig
}

// NewUploadHandler 创建一个新的 UploadHandler 实例。
func NewUploadHandler(cfg config.MinIOConfig) *UploadHandler {
	return &UploadHandler{cfg: cfg}
}

// GetUploadURL 为当前用户生成一个短期有效的预签名 PUT 地址。
// 对象名带用户前缀与随机段，避免互相覆盖。
func (h *UploadHandler) GetUploadURL(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Impossible de récupérer l'utilisateur"})
		return
	}

	filename := c.Query("filename")
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "filename requis"})
		return
	}

	objectName := fmt.Sprintf("users/%d/%s%s", user.ID, uuid.NewString(), filepath.Ext(filename))
	expiry := time.Duration(h.cfg.UploadURLExpiry) * time.Minute
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	uploadURL, err := storage.GetPresignedUploadURL(c.Request.Context(), h.cfg.BucketName, objectName, expiry)
	if err != nil {
		log.Errorf("GetUploadURL: failed for userID=%d, error: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Impossible de générer l'URL d'upload"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data": gin.H{
			"uploadUrl":  uploadURL,
			"objectName": objectName,
			"expiresIn":  int(expiry.Seconds()),
		},
	})
}
