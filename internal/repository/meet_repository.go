// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"time"

	"entraide-go/internal/model"

	"gorm.io/gorm"
)

// MeetRepository 接口定义了会面会话及其关联记录的持久化操作。
type MeetRepository interface {
	FindSessionByID(sessionID uint) (*model.MeetSession, error)
	// FindActiveSessionsByUser 检索用户作为任意一方参与的进行中会话。
	FindActiveSessionsByUser(userID uint) ([]model.MeetSession, error)
	// EndSession 将会话状态置为 completed 并记录结束时间。
	// 对已结束的会话重复调用不报错，状态保持 completed。
	EndSession(sessionID uint, endedAt time.Time) error
	FindRequestByID(requestID uint) (*model.MeetRequest, error)
	FindOfferByID(offerID uint) (*model.MeetOffer, error)
}

// meetRepository 是 MeetRepository 接口的 GORM 实现。
type meetRepository struct {
	db *gorm.DB
}

// NewMeetRepository 创建一个新的 MeetRepository 实例。
func NewMeetRepository(db *gorm.DB) MeetRepository {
	return &meetRepository{db: db}
}

// FindSessionByID 根据会话 ID 查找一条记录。
func (r *meetRepository) FindSessionByID(sessionID uint) (*model.MeetSession, error) {
	var session model.MeetSession
	err := r.db.First(&session, sessionID).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindActiveSessionsByUser 检索用户作为求助方或帮助方参与的进行中会话。
func (r *meetRepository) FindActiveSessionsByUser(userID uint) ([]model.MeetSession, error) {
	var sessions []model.MeetSession
	err := r.db.
		Where("status = ? AND (demandeur_id = ? OR offreur_id = ?)", model.MeetSessionActive, userID, userID).
		Order("started_at DESC").
		Find(&sessions).Error
	return sessions, err
}

// EndSession 更新会话状态与结束时间。
func (r *meetRepository) EndSession(sessionID uint, endedAt time.Time) error {
	result := r.db.Model(&model.MeetSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"status":   model.MeetSessionCompleted,
			"ended_at": endedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindRequestByID 根据需求 ID 查找一条记录。
func (r *meetRepository) FindRequestByID(requestID uint) (*model.MeetRequest, error) {
	var request model.MeetRequest
	err := r.db.First(&request, requestID).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// FindOfferByID 根据服务 ID 查找一条记录。
func (r *meetRepository) FindOfferByID(offerID uint) (*model.MeetOffer, error) {
	var offer model.MeetOffer
	err := r.db.First(&offer, offerID).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}
