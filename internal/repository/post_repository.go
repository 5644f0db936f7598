// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"entraide-go/internal/model"

	"gorm.io/gorm"
)

// PostRepository 接口定义了帖子数据的持久化操作。
type PostRepository interface {
	Create(post *model.Post) error
	FindByID(postID uint) (*model.Post, error)
	Update(post *model.Post) error
	Delete(postID uint) error
	FindPublished(offset, limit int) ([]model.Post, int64, error)
	FindByAuthor(authorID uint) ([]model.Post, error)
}

// postRepository 是 PostRepository 接口的 GORM 实现。
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建一个新的 PostRepository 实例。
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create 在数据库中创建一个新的帖子记录。
func (r *postRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

// FindByID 根据帖子 ID 查找一条记录。
func (r *postRepository) FindByID(postID uint) (*model.Post, error) {
	var post model.Post
	err := r.db.First(&post, postID).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Update 更新数据库中一个已存在的帖子记录。
func (r *postRepository) Update(post *model.Post) error {
	return r.db.Save(post).Error
}

// Delete 根据帖子 ID 删除一条记录。
func (r *postRepository) Delete(postID uint) error {
	return r.db.Delete(&model.Post{}, postID).Error
}

// FindPublished 分页检索所有已发布的帖子，按创建时间倒序。
func (r *postRepository) FindPublished(offset, limit int) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	db := r.db.Model(&model.Post{}).Where("published = ?", true)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// FindByAuthor 检索某个作者的全部帖子（含未发布），按创建时间倒序。
func (r *postRepository) FindByAuthor(authorID uint) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.Where("author_id = ?", authorID).Order("created_at DESC").Find(&posts).Error
	return posts, err
}
