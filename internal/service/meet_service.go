// Package service 包含了应用的业务逻辑层。
package service

import (
	"errors"
	"time"

	"entraide-go/internal/model"
	"entraide-go/internal/repository"
	"entraide-go/pkg/events"
	"entraide-go/pkg/kafka"
	"entraide-go/pkg/log"

	"gorm.io/gorm"
)

// MeetSessionView 是活动会话列表中的单项：会话本身加上
// 需求/服务摘要与对方用户摘要。关联记录缺失时对应字段为 nil，
// 读取侧的连接容忍悬空引用，不会因此失败。
type MeetSessionView struct {
	ID          uint                      `json:"id"`
	Status      string                    `json:"status"`
	StartedAt   time.Time                 `json:"startedAt"`
	EndedAt     *time.Time                `json:"endedAt"`
	Request     *model.MeetRequestSummary `json:"request"`
	Offer       *model.MeetOfferSummary   `json:"offer"`
	Counterpart *model.UserSummary        `json:"counterpart"`
	IsCreator   bool                      `json:"isCreator"`
}

// MeetSessionDetail 是单个会话的完整连接视图。
type MeetSessionDetail struct {
	ID        uint               `json:"id"`
	Status    string             `json:"status"`
	StartedAt time.Time          `json:"startedAt"`
	EndedAt   *time.Time         `json:"endedAt"`
	Request   *model.MeetRequest `json:"request"`
	Offer     *model.MeetOffer   `json:"offer"`
	Demandeur *model.UserSummary `json:"demandeur"`
	Offreur   *model.UserSummary `json:"offreur"`
}

// MeetService 接口定义了会面会话的业务操作。
type MeetService interface {
	GetUserActiveMeetSessions(userID uint) ([]MeetSessionView, error)
	// GetMeetSession 返回完整连接视图；会话不存在时返回 (nil, nil)。
	GetMeetSession(sessionID uint) (*MeetSessionDetail, error)
	// EndMeetSession 将会话置为 completed 并记录结束时间。
	// 对已结束的会话重复调用不报错。
	EndMeetSession(sessionID uint) (*model.MeetSession, error)
}

// meetService 是 MeetService 接口的实现。
type meetService struct {
	meetRepo repository.MeetRepository
	userRepo repository.UserRepository
}

// NewMeetService 创建一个新的 MeetService 实例。
func NewMeetService(meetRepo repository.MeetRepository, userRepo repository.UserRepository) MeetService {
	return &meetService{
		meetRepo: meetRepo,
		userRepo: userRepo,
	}
}

// GetUserActiveMeetSessions 返回用户参与的全部进行中会话的富化视图。
func (s *meetService) GetUserActiveMeetSessions(userID uint) ([]MeetSessionView, error) {
	sessions, err := s.meetRepo.FindActiveSessionsByUser(userID)
	if err != nil {
		return nil, err
	}

	views := make([]MeetSessionView, 0, len(sessions))
	for _, session := range sessions {
		isCreator := session.DemandeurID == userID

		counterpartID := session.OffreurID
		if !isCreator {
			counterpartID = session.DemandeurID
		}

		views = append(views, MeetSessionView{
			ID:          session.ID,
			Status:      session.Status,
			StartedAt:   session.StartedAt,
			EndedAt:     session.EndedAt,
			Request:     s.lookupRequest(session.RequestID).Summary(),
			Offer:       s.lookupOffer(session.OfferID).Summary(),
			Counterpart: s.lookupUser(counterpartID).Summary(),
			IsCreator:   isCreator,
		})
	}
	return views, nil
}

// GetMeetSession 返回单个会话的完整连接视图。
func (s *meetService) GetMeetSession(sessionID uint) (*MeetSessionDetail, error) {
	session, err := s.meetRepo.FindSessionByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &MeetSessionDetail{
		ID:        session.ID,
		Status:    session.Status,
		StartedAt: session.StartedAt,
		EndedAt:   session.EndedAt,
		Request:   s.lookupRequest(session.RequestID),
		Offer:     s.lookupOffer(session.OfferID),
		Demandeur: s.lookupUser(session.DemandeurID).Summary(),
		Offreur:   s.lookupUser(session.OffreurID).Summary(),
	}, nil
}

// EndMeetSession 结束一个会话。没有幂等保护：对已结束的会话
// 再次调用会刷新结束时间，状态保持 completed。
func (s *meetService) EndMeetSession(sessionID uint) (*model.MeetSession, error) {
	if err := s.meetRepo.EndSession(sessionID, time.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("Session non trouvée")
		}
		return nil, err
	}

	session, err := s.meetRepo.FindSessionByID(sessionID)
	if err != nil {
		return nil, err
	}

	uid := session.DemandeurID
	kafka.PublishActivity(events.ActivityEvent{Type: events.TypeMeetSessionEnded, UserID: &uid})
	return session, nil
}

// lookup 系列方法将"未找到"折叠为 nil，其余错误记录日志后同样返回 nil，
// 保证富化视图在引用悬空时依然可用。

func (s *meetService) lookupRequest(requestID uint) *model.MeetRequest {
	request, err := s.meetRepo.FindRequestByID(requestID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warnf("查询会话关联需求失败: requestID=%d, error: %v", requestID, err)
		}
		return nil
	}
	return request
}

func (s *meetService) lookupOffer(offerID uint) *model.MeetOffer {
	offer, err := s.meetRepo.FindOfferByID(offerID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warnf("查询会话关联服务失败: offerID=%d, error: %v", offerID, err)
		}
		return nil
	}
	return offer
}

func (s *meetService) lookupUser(userID uint) *model.User {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warnf("查询会话参与者失败: userID=%d, error: %v", userID, err)
		}
		return nil
	}
	return user
}
