package service

import (
	"testing"

	"entraide-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetUserActiveMeetSessions_Enriched(t *testing.T) {
	meetRepo := new(MockMeetRepository)
	userRepo := new(MockUserRepository)

	sessions := []model.MeetSession{
		{ID: 10, DemandeurID: 1, OffreurID: 2, RequestID: 100, OfferID: 200, Status: model.MeetSessionActive},
	}
	meetRepo.On("FindActiveSessionsByUser", uint(1)).Return(sessions, nil)
	meetRepo.On("FindRequestByID", uint(100)).Return(&model.MeetRequest{ID: 100, Title: "Cours de guitare", Category: "musique"}, nil)
	meetRepo.On("FindOfferByID", uint(200)).Return(&model.MeetOffer{ID: 200, Title: "Professeur de guitare", Category: "musique"}, nil)
	userRepo.On("FindByID", uint(2)).Return(&model.User{ID: 2, Name: "Marie", Email: "marie@example.com"}, nil)

	svc := NewMeetService(meetRepo, userRepo)
	views, err := svc.GetUserActiveMeetSessions(1)

	require.NoError(t, err)
	require.Len(t, views, 1)
	view := views[0]
	assert.True(t, view.IsCreator)
	require.NotNil(t, view.Request)
	assert.Equal(t, "Cours de guitare", view.Request.Title)
	require.NotNil(t, view.Offer)
	assert.Equal(t, uint(200), view.Offer.ID)
	require.NotNil(t, view.Counterpart)
	assert.Equal(t, "Marie", view.Counterpart.Name)
}

func TestGetUserActiveMeetSessions_DanglingReferences(t *testing.T) {
	meetRepo := new(MockMeetRepository)
	userRepo := new(MockUserRepository)

	sessions := []model.MeetSession{
		{ID: 10, DemandeurID: 3, OffreurID: 1, RequestID: 100, OfferID: 200, Status: model.MeetSessionActive},
	}
	meetRepo.On("FindActiveSessionsByUser", uint(1)).Return(sessions, nil)
	// 关联记录全部缺失：视图字段为 nil，不报错
	meetRepo.On("FindRequestByID", uint(100)).Return(nil, gorm.ErrRecordNotFound)
	meetRepo.On("FindOfferByID", uint(200)).Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByID", uint(3)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewMeetService(meetRepo, userRepo)
	views, err := svc.GetUserActiveMeetSessions(1)

	require.NoError(t, err)
	require.Len(t, views, 1)
	view := views[0]
	assert.False(t, view.IsCreator)
	assert.Nil(t, view.Request)
	assert.Nil(t, view.Offer)
	assert.Nil(t, view.Counterpart)
}

func TestGetUserActiveMeetSessions_CounterpartSelection(t *testing.T) {
	meetRepo := new(MockMeetRepository)
	userRepo := new(MockUserRepository)

	// 用户 1 是 offreur：对方应当是 demandeur（用户 5）
	sessions := []model.MeetSession{
		{ID: 11, DemandeurID: 5, OffreurID: 1, RequestID: 100, OfferID: 200, Status: model.MeetSessionActive},
	}
	meetRepo.On("FindActiveSessionsByUser", uint(1)).Return(sessions, nil)
	meetRepo.On("FindRequestByID", uint(100)).Return(&model.MeetRequest{ID: 100}, nil)
	meetRepo.On("FindOfferByID", uint(200)).Return(&model.MeetOffer{ID: 200}, nil)
	userRepo.On("FindByID", uint(5)).Return(&model.User{ID: 5, Name: "Paul"}, nil)

	svc := NewMeetService(meetRepo, userRepo)
	views, err := svc.GetUserActiveMeetSessions(1)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].IsCreator)
	require.NotNil(t, views[0].Counterpart)
	assert.Equal(t, uint(5), views[0].Counterpart.ID)
}

func TestGetMeetSession_NotFound(t *testing.T) {
	meetRepo := new(MockMeetRepository)
	userRepo := new(MockUserRepository)
	meetRepo.On("FindSessionByID", uint(42)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewMeetService(meetRepo, userRepo)
	detail, err := svc.GetMeetSession(42)

	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestEndMeetSession(t *testing.T) {
	meetRepo := new(MockMeetRepository)
	userRepo := new(MockUserRepository)

	meetRepo.On("EndSession", uint(10), mock.AnythingOfType("time.Time")).Return(nil)
	meetRepo.On("FindSessionByID", uint(10)).Return(&model.MeetSession{
		ID: 10, DemandeurID: 1, OffreurID: 2, Status: model.MeetSessionCompleted,
	}, nil)

	svc := NewMeetService(meetRepo, userRepo)
	session, err := svc.EndMeetSession(10)

	require.NoError(t, err)
	assert.Equal(t, model.MeetSessionCompleted, session.Status)
	meetRepo.AssertExpectations(t)
}

func TestEndMeetSession_NotFound(t *testing.T) {
	meetRepo := new(MockMeetRepository)
	userRepo := new(MockUserRepository)
	meetRepo.On("EndSession", uint(42), mock.AnythingOfType("time.Time")).Return(gorm.ErrRecordNotFound)

	svc := NewMeetService(meetRepo, userRepo)
	_, err := svc.EndMeetSession(42)

	assert.Error(t, err)
}
