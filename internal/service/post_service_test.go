package service

import (
	"context"
	"testing"

	"entraide-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreatePost_IndexesDocument(t *testing.T) {
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	indexer := &fakePostIndexer{}
	postRepo.On("Create", mock.AnythingOfType("*model.Post")).Run(func(args mock.Arguments) {
		args.Get(0).(*model.Post).ID = 1
	}).Return(nil)

	svc := NewPostService(postRepo, commentRepo, indexer)
	post, err := svc.CreatePost(context.Background(), 1, "Titre", "Contenu", true)

	require.NoError(t, err)
	assert.True(t, post.Published)
	require.Len(t, indexer.indexed, 1)
	assert.Equal(t, uint(1), indexer.indexed[0].PostID)
	assert.Equal(t, "Titre", indexer.indexed[0].Title)
}

func TestCreatePost_MissingFields(t *testing.T) {
	svc := NewPostService(new(MockPostRepository), new(MockCommentRepository), &fakePostIndexer{})

	_, err := svc.CreatePost(context.Background(), 1, "", "Contenu", false)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestCreatePost_IndexFailureDoesNotBlock(t *testing.T) {
	postRepo := new(MockPostRepository)
	indexer := &fakePostIndexer{indexErr: assert.AnError}
	postRepo.On("Create", mock.AnythingOfType("*model.Post")).Return(nil)

	svc := NewPostService(postRepo, new(MockCommentRepository), indexer)
	_, err := svc.CreatePost(context.Background(), 1, "Titre", "Contenu", false)

	// 索引失败只记录日志，写入照常成功
	require.NoError(t, err)
}

func TestUpdatePost_OnlyAuthor(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("FindByID", uint(1)).Return(&model.Post{ID: 1, AuthorID: 1, Title: "Titre"}, nil)

	svc := NewPostService(postRepo, new(MockCommentRepository), &fakePostIndexer{})
	_, err := svc.UpdatePost(context.Background(), 1, 2, "Nouveau titre", "")

	assert.ErrorIs(t, err, ErrAccessDenied)
	postRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestDeletePost_CascadesCommentsAndIndex(t *testing.T) {
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	indexer := &fakePostIndexer{}

	postRepo.On("FindByID", uint(1)).Return(&model.Post{ID: 1, AuthorID: 1}, nil)
	commentRepo.On("DeleteByPost", uint(1)).Return(nil)
	postRepo.On("Delete", uint(1)).Return(nil)

	svc := NewPostService(postRepo, commentRepo, indexer)
	err := svc.DeletePost(context.Background(), 1, 1)

	require.NoError(t, err)
	assert.Equal(t, []uint{1}, indexer.removed)
	commentRepo.AssertExpectations(t)
	postRepo.AssertExpectations(t)
}

func TestGetPost_NotFound(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("FindByID", uint(42)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewPostService(postRepo, new(MockCommentRepository), &fakePostIndexer{})
	_, err := svc.GetPost(42)

	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestListPublished_ClampsPagination(t *testing.T) {
	postRepo := new(MockPostRepository)
	// page<1 和 size 超限都被修正为默认值
	postRepo.On("FindPublished", 0, 20).Return([]model.Post{}, int64(0), nil)

	svc := NewPostService(postRepo, new(MockCommentRepository), &fakePostIndexer{})
	_, _, err := svc.ListPublished(0, 500)

	require.NoError(t, err)
	postRepo.AssertExpectations(t)
}
