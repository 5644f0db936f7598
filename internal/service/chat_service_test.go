package service

import (
	"context"
	"testing"

	"entraide-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newChatFixture 组装一个带可控依赖的 ChatService。
func newChatFixture(llmClient *fakeLLMClient) (ChatService, *MockUserRepository, *MockConversationRepository, *MockChatContextRepository) {
	userRepo := new(MockUserRepository)
	conversationRepo := new(MockConversationRepository)
	chatContextRepo := new(MockChatContextRepository)

	quotaSvc := NewQuotaService(userRepo)
	conversationSvc := NewConversationService(conversationRepo, chatContextRepo)
	chatSvc := NewChatService(llmClient, quotaSvc, conversationSvc, chatContextRepo)
	return chatSvc, userRepo, conversationRepo, chatContextRepo
}

func TestChat_Success(t *testing.T) {
	llmClient := &fakeLLMClient{response: "Bonjour !", modelName: "gpt-4o-mini"}
	svc, userRepo, conversationRepo, chatContextRepo := newChatFixture(llmClient)

	user := &model.User{ID: 1, QuestionsAsked: 0, QuestionsLimit: 2}
	userRepo.On("ConsumeQuestion", uint(1)).Return(true, nil)
	userRepo.On("FindByID", uint(1)).Return(&model.User{ID: 1, QuestionsAsked: 1, QuestionsLimit: 2}, nil)
	chatContextRepo.On("GetHistory", mock.Anything, uint(1)).Return([]model.ChatMessage{
		{Role: "user", Content: "Salut"},
		{Role: "assistant", Content: "Salut, comment puis-je aider ?"},
	}, nil)
	conversationRepo.On("Create", mock.AnythingOfType("*model.Conversation")).Return(nil)
	chatContextRepo.On("AppendExchange", mock.Anything, uint(1), "Comment ça va ?", "Bonjour !").Return(nil)

	result, err := svc.Chat(context.Background(), user, "Comment ça va ?", "conseiller")

	require.NoError(t, err)
	assert.Equal(t, "Bonjour !", result.Response)
	assert.Equal(t, "gpt-4o-mini", result.Model)
	assert.Equal(t, "conseiller", result.Agent)

	// 消息装配：system + 2 条历史 + 当前问题
	require.Len(t, llmClient.messages, 4)
	assert.Equal(t, "system", llmClient.messages[0].Role)
	assert.Equal(t, agentPrompts["conseiller"], llmClient.messages[0].Content)
	assert.Equal(t, "Comment ça va ?", llmClient.messages[3].Content)

	conversationRepo.AssertExpectations(t)
	chatContextRepo.AssertExpectations(t)
}

func TestChat_UnknownAgentFallsBack(t *testing.T) {
	llmClient := &fakeLLMClient{response: "ok", modelName: "gpt-4o-mini"}
	svc, userRepo, conversationRepo, chatContextRepo := newChatFixture(llmClient)

	user := &model.User{ID: 1}
	userRepo.On("ConsumeQuestion", uint(1)).Return(true, nil)
	userRepo.On("FindByID", uint(1)).Return(&model.User{ID: 1, QuestionsAsked: 1, QuestionsLimit: 2}, nil)
	chatContextRepo.On("GetHistory", mock.Anything, uint(1)).Return([]model.ChatMessage{}, nil)
	conversationRepo.On("Create", mock.AnythingOfType("*model.Conversation")).Return(nil)
	chatContextRepo.On("AppendExchange", mock.Anything, uint(1), "question", "ok").Return(nil)

	result, err := svc.Chat(context.Background(), user, "question", "inconnu")

	require.NoError(t, err)
	assert.Equal(t, defaultAgentName, result.Agent)
	assert.Equal(t, defaultAgentPrompt, llmClient.messages[0].Content)
}

func TestChat_QuotaExceededBlocksLLM(t *testing.T) {
	llmClient := &fakeLLMClient{response: "ne devrait pas être appelé"}
	svc, userRepo, _, _ := newChatFixture(llmClient)

	user := &model.User{ID: 1, QuestionsAsked: 2, QuestionsLimit: 2}
	userRepo.On("ConsumeQuestion", uint(1)).Return(false, nil)
	userRepo.On("FindByID", uint(1)).Return(&model.User{ID: 1, QuestionsAsked: 2, QuestionsLimit: 2}, nil)

	_, err := svc.Chat(context.Background(), user, "encore une question", "conseiller")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Contains(t, err.Error(), "2/2")
	// 配额耗尽时绝不触达 LLM
	assert.Equal(t, 0, llmClient.calls)
}

func TestChat_EmptyPrompt(t *testing.T) {
	llmClient := &fakeLLMClient{}
	svc, _, _, _ := newChatFixture(llmClient)

	_, err := svc.Chat(context.Background(), &model.User{ID: 1}, "", "conseiller")

	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Equal(t, 0, llmClient.calls)
}

func TestChat_LLMErrorPropagates(t *testing.T) {
	llmClient := &fakeLLMClient{err: assert.AnError}
	svc, userRepo, _, chatContextRepo := newChatFixture(llmClient)

	user := &model.User{ID: 1}
	userRepo.On("ConsumeQuestion", uint(1)).Return(true, nil)
	userRepo.On("FindByID", uint(1)).Return(&model.User{ID: 1, QuestionsAsked: 1, QuestionsLimit: 2}, nil)
	chatContextRepo.On("GetHistory", mock.Anything, uint(1)).Return([]model.ChatMessage{}, nil)

	_, err := svc.Chat(context.Background(), user, "question", "")

	assert.ErrorIs(t, err, assert.AnError)
	// 调用失败时不应写入问答记录
	chatContextRepo.AssertNotCalled(t, "AppendExchange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAgentPrompts_FiveNamedAgents(t *testing.T) {
	expected := []string{"conseiller", "correcteur", "traducteur", "moderateur", "coach"}
	assert.Len(t, agentPrompts, len(expected))
	for _, name := range expected {
		assert.Contains(t, agentPrompts, name)
	}
	// 默认 agent 不在命名列表里，通过回退路径选择
	assert.NotContains(t, agentPrompts, defaultAgentName)
}
