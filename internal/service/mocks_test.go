package service

import (
	"context"
	"time"

	"entraide-go/internal/model"
	"entraide-go/pkg/llm"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository 是 UserRepository 的 testify mock。
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(userID uint) (*model.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindWithPagination(offset, limit int) ([]model.User, int64, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) IncrementQuestions(userID uint) (*model.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ConsumeQuestion(userID uint) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ResetQuestions(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockMeetRepository 是 MeetRepository 的 testify mock。
type MockMeetRepository struct {
	mock.Mock
}

func (m *MockMeetRepository) FindSessionByID(sessionID uint) (*model.MeetSession, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MeetSession), args.Error(1)
}

func (m *MockMeetRepository) FindActiveSessionsByUser(userID uint) ([]model.MeetSession, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MeetSession), args.Error(1)
}

func (m *MockMeetRepository) EndSession(sessionID uint, endedAt time.Time) error {
	args := m.Called(sessionID, endedAt)
	return args.Error(0)
}

func (m *MockMeetRepository) FindRequestByID(requestID uint) (*model.MeetRequest, error) {
	args := m.Called(requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MeetRequest), args.Error(1)
}

func (m *MockMeetRepository) FindOfferByID(offerID uint) (*model.MeetOffer, error) {
	args := m.Called(offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MeetOffer), args.Error(1)
}

// MockConversationRepository 是 ConversationRepository 的 testify mock。
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) Create(conversation *model.Conversation) error {
	args := m.Called(conversation)
	return args.Error(0)
}

func (m *MockConversationRepository) FindRecent(userID *uint, limit int) ([]model.Conversation, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Conversation), args.Error(1)
}

func (m *MockConversationRepository) DeleteByUser(userID *uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockChatContextRepository 是 ChatContextRepository 的 testify mock。
type MockChatContextRepository struct {
	mock.Mock
}

func (m *MockChatContextRepository) GetHistory(ctx context.Context, userID uint) ([]model.ChatMessage, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChatMessage), args.Error(1)
}

func (m *MockChatContextRepository) AppendExchange(ctx context.Context, userID uint, question, answer string) error {
	args := m.Called(ctx, userID, question, answer)
	return args.Error(0)
}

func (m *MockChatContextRepository) Clear(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// fakeLLMClient 是 llm.Client 的测试替身，记录收到的消息。
type fakeLLMClient struct {
	response  string
	modelName string
	err       error
	calls     int
	messages  []llm.Message
}

func (f *fakeLLMClient) ChatCompletion(_ context.Context, messages []llm.Message) (string, string, error) {
	f.calls++
	f.messages = messages
	if f.err != nil {
		return "", "", f.err
	}
	return f.response, f.modelName, nil
}

// MockPostRepository 是 PostRepository 的 testify mock。
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(postID uint) (*model.Post, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) Update(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(postID uint) error {
	args := m.Called(postID)
	return args.Error(0)
}

func (m *MockPostRepository) FindPublished(offset, limit int) ([]model.Post, int64, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) FindByAuthor(authorID uint) ([]model.Post, error) {
	args := m.Called(authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

// MockCommentRepository 是 CommentRepository 的 testify mock。
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(commentID uint) (*model.Comment, error) {
	args := m.Called(commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindByPost(postID uint) ([]model.Comment, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(commentID uint) error {
	args := m.Called(commentID)
	return args.Error(0)
}

func (m *MockCommentRepository) DeleteByPost(postID uint) error {
	args := m.Called(postID)
	return args.Error(0)
}

// fakePostIndexer 是 PostIndexer 的测试替身，在内存中跟踪索引内容。
type fakePostIndexer struct {
	indexed  []model.PostDocument
	removed  []uint
	indexErr error
}

func (f *fakePostIndexer) Index(_ context.Context, doc model.PostDocument) error {
	if f.indexErr != nil {
		return f.indexErr
	}
	f.indexed = append(f.indexed, doc)
	return nil
}

func (f *fakePostIndexer) Remove(_ context.Context, postID uint) error {
	f.removed = append(f.removed, postID)
	return nil
}

func (f *fakePostIndexer) Search(_ context.Context, _ string, _ int) ([]model.PostSearchResult, error) {
	return []model.PostSearchResult{}, nil
}
