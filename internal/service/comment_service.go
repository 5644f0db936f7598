// Package service 包含了应用的业务逻辑层。
package service

import (
	"errors"

	"entraide-go/internal/model"
	"entraide-go/internal/repository"

	"gorm.io/gorm"
)

// CommentService 接口定义了评论相关的业务操作。
type CommentService interface {
	CreateComment(postID, authorID uint, content string) (*model.Comment, error)
	ListByPost(postID uint) ([]model.Comment, error)
	// DeleteComment 删除一条评论。作者本人或帖子作者可以删除。
	DeleteComment(commentID, userID uint) error
}

// commentService 是 CommentService 接口的实现。
type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService 创建一个新的 CommentService 实例。
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment 在指定帖子下创建一条评论。
func (s *commentService) CreateComment(postID, authorID uint, content string) (*model.Comment, error) {
	if content == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.postRepo.FindByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByPost 返回某个帖子下的全部评论。
func (s *commentService) ListByPost(postID uint) ([]model.Comment, error) {
	return s.commentRepo.FindByPost(postID)
}

// DeleteComment 删除一条评论，评论作者或所在帖子的作者有权操作。
func (s *commentService) DeleteComment(commentID, userID uint) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.AuthorID != userID {
		post, err := s.postRepo.FindByID(comment.PostID)
		if err != nil || post.AuthorID != userID {
			return ErrAccessDenied
		}
	}

	return s.commentRepo.Delete(commentID)
}
