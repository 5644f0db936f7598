// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"entraide-go/internal/model"

	"gorm.io/gorm"
)

// CommentRepository 接口定义了评论数据的持久化操作。
type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByID(commentID uint) (*model.Comment, error)
	FindByPost(postID uint) ([]model.Comment, error)
	Delete(commentID uint) error
	// DeleteByPost 在帖子被删除时级联清理其全部评论。
	DeleteByPost(postID uint) error
}

// commentRepository 是 CommentRepository 接口的 GORM 实现。
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建一个新的 CommentRepository 实例。
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create 在数据库中创建一条新的评论记录。
func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// FindByID 根据评论 ID 查找一条记录。
func (r *commentRepository) FindByID(commentID uint) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.First(&comment, commentID).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByPost 检索某个帖子下的全部评论，按创建时间正序。
func (r *commentRepository) FindByPost(postID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error
	return comments, err
}

// Delete 根据评论 ID 删除一条记录。
func (r *commentRepository) Delete(commentID uint) error {
	return r.db.Delete(&model.Comment{}, commentID).Error
}

// DeleteByPost 批量删除某个帖子下的全部评论。
func (r *commentRepository) DeleteByPost(postID uint) error {
	return r.db.Where("post_id = ?", postID).Delete(&model.Comment{}).Error
}
