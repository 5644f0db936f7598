// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"

	"entraide-go/internal/model"
	"entraide-go/internal/repository"
	"entraide-go/pkg/events"
	"entraide-go/pkg/kafka"
	"entraide-go/pkg/log"
)

// 未指定 limit 时返回的最大记录数。
const defaultConversationLimit = 50

// ConversationService 定义了问答日志的业务操作。
type ConversationService interface {
	// SaveConversation 无条件追加一条记录，只校验必填文本字段。
	SaveConversation(userID *uint, message, response, agentName string) (*model.Conversation, error)
	// GetConversations 返回最近的 limit 条记录（默认 50，最新在前），
	// userID 非空时只返回该用户的记录。
	GetConversations(userID *uint, limit int) ([]model.Conversation, error)
	// ClearHistory 删除匹配范围内的全部记录并返回删除数量。
	ClearHistory(ctx context.Context, userID *uint) (int64, error)
}

// conversationService 是 ConversationService 接口的实现。
type conversationService struct {
	conversationRepo repository.ConversationRepository
	chatContextRepo  repository.ChatContextRepository
}

// NewConversationService 创建一个新的 ConversationService 实例。
func NewConversationService(conversationRepo repository.ConversationRepository, chatContextRepo repository.ChatContextRepository) ConversationService {
	return &conversationService{
		conversationRepo: conversationRepo,
		chatContextRepo:  chatContextRepo,
	}
}

// SaveConversation 追加一条问答记录。
func (s *conversationService) SaveConversation(userID *uint, message, response, agentName string) (*model.Conversation, error) {
	if message == "" || response == "" {
		return nil, ErrMissingFields
	}
	if agentName == "" {
		agentName = defaultAgentName
	}

	conversation := &model.Conversation{
		UserID:    userID,
		Message:   message,
		Response:  response,
		AgentName: agentName,
	}
	if err := s.conversationRepo.Create(conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

// GetConversations 返回最近的问答记录。
func (s *conversationService) GetConversations(userID *uint, limit int) ([]model.Conversation, error) {
	if limit <= 0 {
		limit = defaultConversationLimit
	}
	return s.conversationRepo.FindRecent(userID, limit)
}

// ClearHistory 批量删除问答记录。
// 针对单个用户清空时，同时丢弃其 Redis 滚动上下文。
func (s *conversationService) ClearHistory(ctx context.Context, userID *uint) (int64, error) {
	deleted, err := s.conversationRepo.DeleteByUser(userID)
	if err != nil {
		return 0, err
	}

	if userID != nil {
		if err := s.chatContextRepo.Clear(ctx, *userID); err != nil {
			log.Warnf("清除用户滚动上下文失败: userID=%d, error: %v", *userID, err)
		}
	}

	kafka.PublishActivity(events.ActivityEvent{Type: events.TypeConversationCleared, UserID: userID})
	return deleted, nil
}
