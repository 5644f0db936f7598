// Package service 包含了应用的业务逻辑层。
package service

import (
	"errors"
	"fmt"

	"entraide-go/internal/repository"

	"gorm.io/gorm"
)

// QuotaCheck 是一次配额预检的结果。
// 用户不存在时返回拒绝哨兵而不是错误，调用方据此直接展示原因。
type QuotaCheck struct {
	CanAsk    bool   `json:"canAsk"`
	Remaining int    `json:"remaining"`
	Reason    string `json:"reason,omitempty"`
}

// QuotaStats 是用户当前的配额计数。
type QuotaStats struct {
	QuestionsAsked int `json:"questionsAsked"`
	QuestionsLimit int `json:"questionsLimit"`
	Remaining      int `json:"remaining"`
}

// QuotaService 接口定义了 AI 提问配额的全部业务操作。
// 计数器的修改全部下沉到仓储层的原子 SQL，服务层不做读改写。
type QuotaService interface {
	CanAskQuestion(userID uint) (*QuotaCheck, error)
	IncrementQuestionCount(userID uint) (*QuotaStats, error)
	// ConsumeQuestion 原子地检查并消费一次提问额度，聊天链路使用它
	// 而不是"先检查后递增"，并发下限额不会被突破。
	ConsumeQuestion(userID uint) (*QuotaStats, error)
	ResetQuestionCount(userID uint) error
	GetUserStats(userID uint) (*QuotaStats, error)
}

// quotaService 是 QuotaService 接口的实现。
type quotaService struct {
	userRepo repository.UserRepository
}

// NewQuotaService 创建一个新的 QuotaService 实例。
func NewQuotaService(userRepo repository.UserRepository) QuotaService {
	return &quotaService{userRepo: userRepo}
}

// CanAskQuestion 返回用户当前是否还能提问。
// 这是一个无副作用的读操作，结果在返回瞬间即可能过时；
// 真正的配额保证由 ConsumeQuestion 承担。
func (s *quotaService) CanAskQuestion(userID uint) (*QuotaCheck, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &QuotaCheck{CanAsk: false, Reason: ErrUserNotFound.Error()}, nil
		}
		return nil, err
	}

	remaining := user.QuestionsLimit - user.QuestionsAsked
	if remaining < 0 {
		remaining = 0
	}
	if user.QuestionsAsked < user.QuestionsLimit {
		return &QuotaCheck{CanAsk: true, Remaining: remaining}, nil
	}
	return &QuotaCheck{
		CanAsk:    false,
		Remaining: 0,
		Reason:    fmt.Sprintf("Limite de questions atteinte (%d/%d)", user.QuestionsAsked, user.QuestionsLimit),
	}, nil
}

// IncrementQuestionCount 无条件将计数 +1 并返回更新后的计数。
func (s *quotaService) IncrementQuestionCount(userID uint) (*QuotaStats, error) {
	user, err := s.userRepo.IncrementQuestions(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return statsFor(user.QuestionsAsked, user.QuestionsLimit), nil
}

// ConsumeQuestion 消费一次提问额度。
// 失败时区分两种情况：用户不存在返回 ErrUserNotFound，
// 配额耗尽返回包含当前计数的 ErrQuotaExceeded。
func (s *quotaService) ConsumeQuestion(userID uint) (*QuotaStats, error) {
	ok, err := s.userRepo.ConsumeQuestion(userID)
	if err != nil {
		return nil, err
	}
	if ok {
		user, err := s.userRepo.FindByID(userID)
		if err != nil {
			return nil, err
		}
		return statsFor(user.QuestionsAsked, user.QuestionsLimit), nil
	}

	// 未消费成功：要么用户不存在，要么配额已满
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return nil, fmt.Errorf("%w (%d/%d)", ErrQuotaExceeded, user.QuestionsAsked, user.QuestionsLimit)
}

// ResetQuestionCount 将用户的提问计数归零，与之前的值无关。
func (s *quotaService) ResetQuestionCount(userID uint) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.ResetQuestions(userID)
}

// GetUserStats 返回用户的配额计数。
func (s *quotaService) GetUserStats(userID uint) (*QuotaStats, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return statsFor(user.QuestionsAsked, user.QuestionsLimit), nil
}

func statsFor(asked, limit int) *QuotaStats {
	remaining := limit - asked
	if remaining < 0 {
		remaining = 0
	}
	return &QuotaStats{QuestionsAsked: asked, QuestionsLimit: limit, Remaining: remaining}
}
