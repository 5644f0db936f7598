// Package repository 提供了数据访问层的实现。
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entraide-go/internal/model"

	"github.com/go-redis/redis/v8"
)

// 滚动上下文的保留参数：多轮对话只携带最近的消息。
const (
	contextMaxMessages = 20
	contextTTL         = 7 * 24 * time.Hour
)

// ChatContextRepository 定义了多轮对话滚动上下文的操作接口。
// 上下文是易失数据，存放在 Redis 中，过期自动清理。
type ChatContextRepository interface {
	GetHistory(ctx context.Context, userID uint) ([]model.ChatMessage, error)
	AppendExchange(ctx context.Context, userID uint, question, answer string) error
	Clear(ctx context.Context, userID uint) error
}

type redisChatContextRepository struct {
	redisClient *redis.Client
}

// NewChatContextRepository 创建一个新的 ChatContextRepository 实例。
func NewChatContextRepository(redisClient *redis.Client) ChatContextRepository {
	return &redisChatContextRepository{redisClient: redisClient}
}

func contextKey(userID uint) string {
	return fmt.Sprintf("chatctx:user:%d", userID)
}

// GetHistory 从 Redis 获取用户的滚动对话上下文。
func (r *redisChatContextRepository) GetHistory(ctx context.Context, userID uint) ([]model.ChatMessage, error) {
	jsonData, err := r.redisClient.Get(ctx, contextKey(userID)).Result()
	if err == redis.Nil {
		return []model.ChatMessage{}, nil // 尚无历史
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chat context: %w", err)
	}
	var messages []model.ChatMessage
	if err := json.Unmarshal([]byte(jsonData), &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat context: %w", err)
	}
	return messages, nil
}

// AppendExchange 将一轮问答追加到上下文，只保留最近 contextMaxMessages 条。
func (r *redisChatContextRepository) AppendExchange(ctx context.Context, userID uint, question, answer string) error {
	messages, err := r.GetHistory(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	messages = append(messages,
		model.ChatMessage{Role: "user", Content: question, Timestamp: now},
		model.ChatMessage{Role: "assistant", Content: answer, Timestamp: now},
	)
	if len(messages) > contextMaxMessages {
		messages = messages[len(messages)-contextMaxMessages:]
	}

	jsonData, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal chat context: %w", err)
	}
	if err := r.redisClient.Set(ctx, contextKey(userID), jsonData, contextTTL).Err(); err != nil {
		return fmt.Errorf("failed to set chat context: %w", err)
	}
	return nil
}

// Clear 删除用户的滚动上下文。
func (r *redisChatContextRepository) Clear(ctx context.Context, userID uint) error {
	return r.redisClient.Del(ctx, contextKey(userID)).Err()
}
