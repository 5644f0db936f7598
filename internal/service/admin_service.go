// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"

	"entraide-go/internal/model"
	"entraide-go/internal/repository"
)

// UserListResponse 定义了用户列表 API 的响应结构。
type UserListResponse struct {
	Content       []UserDetailResponse `json:"content"`
	TotalElements int64                `json:"totalElements"`
	TotalPages    int                  `json:"totalPages"`
	Size          int                  `json:"size"`
	Number        int                  `json:"number"`
}

// UserDetailResponse 定义了用户列表项的详细结构。
type UserDetailResponse struct {
	UserID         uint            `json:"userId"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Role           string          `json:"role"`
	QuestionsAsked int             `json:"questionsAsked"`
	QuestionsLimit int             `json:"questionsLimit"`
	CreatedAt      model.LocalTime `json:"createdAt"`
}

// AdminService 接口定义了所有管理员相关的业务操作。
type AdminService interface {
	ListUsers(page, size int) (*UserListResponse, error)
	GetTransactionStats() (*model.TransactionStats, error)
	// ClearAllConversations 清空全部问答日志，返回删除的行数。
	ClearAllConversations(ctx context.Context) (int64, error)
}

// adminService 是 AdminService 接口的实现。
type adminService struct {
	userRepo            repository.UserRepository
	transactionRepo     repository.TransactionRepository
	conversationService ConversationService
}

// NewAdminService 创建一个新的 AdminService 实例。
func NewAdminService(userRepo repository.UserRepository, transactionRepo repository.TransactionRepository, conversationService ConversationService) AdminService {
	return &adminService{
		userRepo:            userRepo,
		transactionRepo:     transactionRepo,
		conversationService: conversationService,
	}
}

// ListUsers 以分页的形式返回用户列表
func (s *adminService) ListUsers(page, size int) (*UserListResponse, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	offset := (page - 1) * size
	users, total, err := s.userRepo.FindWithPagination(offset, size)
	if err != nil {
		return nil, err
	}

	userResponses := make([]UserDetailResponse, 0, len(users))
	for _, u := range users {
		userResponses = append(userResponses, UserDetailResponse{
			UserID:         u.ID,
			Name:           u.Name,
			Email:          u.Email,
			Role:           u.Role,
			QuestionsAsked: u.QuestionsAsked,
			QuestionsLimit: u.QuestionsLimit,
			CreatedAt:      model.LocalTime(u.CreatedAt),
		})
	}

	totalPages := 0
	if total > 0 && size > 0 {
		totalPages = (int(total) + size - 1) / size
	}

	return &UserListResponse{
		Content:       userResponses,
		TotalElements: total,
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
	}, nil
}

// GetTransactionStats 返回已完成交易的聚合统计。
func (s *adminService) GetTransactionStats() (*model.TransactionStats, error) {
	return s.transactionRepo.GetStats()
}

// ClearAllConversations 清空所有用户的问答日志。
func (s *adminService) ClearAllConversations(ctx context.Context) (int64, error) {
	return s.conversationService.ClearHistory(ctx, nil)
}
