// Package repository 提供了数据访问层的实现。
package repository

import (
	"entraide-go/internal/model"

	"gorm.io/gorm"
)

// ConversationRepository 定义了问答日志的持久化操作。
// 日志是只追加的：除批量清空外不提供任何修改入口。
type ConversationRepository interface {
	Create(conversation *model.Conversation) error
	// FindRecent 返回最近的 limit 条记录（按创建时间倒序），
	// userID 非空时只返回该用户的记录。
	FindRecent(userID *uint, limit int) ([]model.Conversation, error)
	// DeleteByUser 批量删除记录并返回删除数量。
	// userID 为 nil 时清空全部记录。以单条 DELETE 语句执行。
	DeleteByUser(userID *uint) (int64, error)
}

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository 创建一个新的 ConversationRepository 实例。
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// Create 追加一条问答记录。
func (r *conversationRepository) Create(conversation *model.Conversation) error {
	return r.db.Create(conversation).Error
}

// FindRecent 按创建时间倒序检索最近的记录。
func (r *conversationRepository) FindRecent(userID *uint, limit int) ([]model.Conversation, error) {
	var conversations []model.Conversation
	db := r.db.Model(&model.Conversation{})
	if userID != nil {
		db = db.Where("user_id = ?", *userID)
	}
	err := db.Order("created_at DESC").Limit(limit).Find(&conversations).Error
	return conversations, err
}

// DeleteByUser 以数据库原生的按条件批量删除执行清空，
// 代价与匹配行数无关地保持单次往返。
func (r *conversationRepository) DeleteByUser(userID *uint) (int64, error) {
	db := r.db
	if userID != nil {
		db = db.Where("user_id = ?", *userID)
	} else {
		db = db.Where("1 = 1")
	}
	result := db.Delete(&model.Conversation{})
	return result.RowsAffected, result.Error
}
