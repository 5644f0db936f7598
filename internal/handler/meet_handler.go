// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"

	"entraide-go/internal/model"
	"entraide-go/internal/service"
	"entraide-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// MeetHandler 负责处理会面会话相关的 API 请求。
type MeetHandler struct {
	meetService service.MeetService
}

// NewMeetHandler 创建一个新的 MeetHandler 实例。
func NewMeetHandler(meetService service.MeetService) *MeetHandler {
	return &MeetHandler{meetService: meetService}
}

// ListActive 返回当前用户参与的全部进行中会话。
func (h *MeetHandler) ListActive(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Impossible de récupérer l'utilisateur"})
		return
	}

	sessions, err := h.meetService.GetUserActiveMeetSessions(user.ID)
	if err != nil {
		log.Errorf("ListActive: failed for userID=%d, error: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": sessions})
}

// Get 返回单个会话的完整视图。
func (h *MeetHandler) Get(c *gin.Context) {
	sessionID, err := parseIDParam(c)
	if err != nil {
		return
	}

	detail, err := h.meetService.GetMeetSession(sessionID)
	if err != nil {
		log.Errorf("Get: session failed for sessionID=%d, error: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "Session non trouvée"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": detail})
}

// End 结束一个会话。只有会话的参与者可以结束。
func (h *MeetHandler) End(c *gin.Context) {
	sessionID, err := parseIDParam(c)
	if err != nil {
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Impossible de récupérer l'utilisateur"})
		return
	}

	detail, err := h.meetService.GetMeetSession(sessionID)
	if err != nil {
		log.Errorf("End: session lookup failed for sessionID=%d, error: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "Session non trouvée"})
		return
	}

	isParticipant := (detail.Demandeur != nil && detail.Demandeur.ID == user.ID) ||
		(detail.Offreur != nil && detail.Offreur.ID == user.ID)
	if !isParticipant && user.Role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"code": http.StatusForbidden, "message": service.ErrAccessDenied.Error()})
		return
	}

	session, err := h.meetService.EndMeetSession(sessionID)
	if err != nil {
		log.Errorf("End: failed for sessionID=%d, error: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Erreur interne du serveur"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": session})
}
