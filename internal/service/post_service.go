// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"errors"

	"entraide-go/internal/model"
	"entraide-go/internal/repository"
	"entraide-go/pkg/log"

	"gorm.io/gorm"
)

// PostIndexer 抽象了帖子全文索引的维护与查询。
// 生产实现基于 Elasticsearch，见 post_indexer.go。
type PostIndexer interface {
	Index(ctx context.Context, doc model.PostDocument) error
	Remove(ctx context.Context, postID uint) error
	Search(ctx context.Context, query string, size int) ([]model.PostSearchResult, error)
}

// PostService 接口定义了帖子相关的业务操作。
type PostService interface {
	CreatePost(ctx context.Context, authorID uint, title, content string, published bool) (*model.Post, error)
	GetPost(postID uint) (*model.Post, error)
	UpdatePost(ctx context.Context, postID, userID uint, title, content string) (*model.Post, error)
	PublishPost(ctx context.Context, postID, userID uint) (*model.Post, error)
	DeletePost(ctx context.Context, postID, userID uint) error
	ListPublished(page, size int) ([]model.Post, int64, error)
	ListByAuthor(authorID uint) ([]model.Post, error)
	SearchPosts(ctx context.Context, query string, size int) ([]model.PostSearchResult, error)
}

// postService 是 PostService 接口的实现。
type postService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	indexer     PostIndexer
}

// NewPostService 创建一个新的 PostService 实例。
func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, indexer PostIndexer) PostService {
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		indexer:     indexer,
	}
}

// CreatePost 创建一篇帖子并将其写入全文索引。
// 索引失败只记录日志：搜索是辅助能力，不应阻断写入。
func (s *postService) CreatePost(ctx context.Context, authorID uint, title, content string, published bool) (*model.Post, error) {
	if title == "" || content == "" {
		return nil, ErrMissingFields
	}

	post := &model.Post{
		Title:     title,
		Content:   content,
		AuthorID:  authorID,
		Published: published,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	s.reindex(ctx, post)
	return post, nil
}

// GetPost 根据 ID 获取一篇帖子。
func (s *postService) GetPost(postID uint) (*model.Post, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// UpdatePost 更新帖子的标题与正文。只有作者本人可以修改。
func (s *postService) UpdatePost(ctx context.Context, postID, userID uint, title, content string) (*model.Post, error) {
	post, err := s.GetPost(postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, ErrAccessDenied
	}

	if title != "" {
		post.Title = title
	}
	if content != "" {
		post.Content = content
	}
	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}

	s.reindex(ctx, post)
	return post, nil
}

// PublishPost 将帖子标记为已发布。只有作者本人可以发布。
func (s *postService) PublishPost(ctx context.Context, postID, userID uint) (*model.Post, error) {
	post, err := s.GetPost(postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, ErrAccessDenied
	}

	post.Published = true
	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}

	s.reindex(ctx, post)
	return post, nil
}

// DeletePost 删除帖子及其全部评论，并从全文索引中移除。
func (s *postService) DeletePost(ctx context.Context, postID, userID uint) error {
	post, err := s.GetPost(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return ErrAccessDenied
	}

	if err := s.commentRepo.DeleteByPost(postID); err != nil {
		return err
	}
	if err := s.postRepo.Delete(postID); err != nil {
		return err
	}

	if err := s.indexer.Remove(ctx, postID); err != nil {
		log.Warnf("从索引移除帖子失败: postID=%d, error: %v", postID, err)
	}
	return nil
}

// ListPublished 分页返回已发布的帖子。
func (s *postService) ListPublished(page, size int) ([]model.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	return s.postRepo.FindPublished((page-1)*size, size)
}

// ListByAuthor 返回某个作者的全部帖子（含草稿）。
func (s *postService) ListByAuthor(authorID uint) ([]model.Post, error) {
	return s.postRepo.FindByAuthor(authorID)
}

// SearchPosts 对已发布帖子执行全文检索。
func (s *postService) SearchPosts(ctx context.Context, query string, size int) ([]model.PostSearchResult, error) {
	return s.indexer.Search(ctx, query, size)
}

func (s *postService) reindex(ctx context.Context, post *model.Post) {
	doc := model.PostDocument{
		PostID:    post.ID,
		Title:     post.Title,
		Content:   post.Content,
		AuthorID:  post.AuthorID,
		Published: post.Published,
	}
	if err := s.indexer.Index(ctx, doc); err != nil {
		log.Warnf("索引帖子失败: postID=%d, error: %v", post.ID, err)
	}
}
