// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"

	"entraide-go/internal/model"
	"entraide-go/internal/repository"
	"entraide-go/pkg/events"
	"entraide-go/pkg/kafka"
	"entraide-go/pkg/llm"
	"entraide-go/pkg/log"
)

// defaultAgentName 是未指定或未知 agent 时的回退。
const defaultAgentName = "assistant"

// defaultAgentPrompt 是回退 agent 的 system 提示词。
const defaultAgentPrompt = "Tu es un assistant bienveillant de la plateforme Entraide. Réponds de façon claire et concise, en français."

// agentPrompts 按 agent 名称选择 system 提示词。
// 所有 agent 共用同一个模型，差异仅在提示词（风格选择器）。
var agentPrompts = map[string]string{
	"conseiller": "Tu es un conseiller d'orientation de la plateforme Entraide. Aide l'utilisateur à formuler sa demande d'aide et à trouver la bonne catégorie de service.",
	"correcteur": "Tu es un correcteur attentif. Corrige l'orthographe et la grammaire du texte fourni sans en changer le sens, puis liste brièvement les corrections.",
	"traducteur": "Tu es un traducteur professionnel. Traduis le texte fourni en conservant le ton et les nuances. Si la langue cible n'est pas précisée, traduis vers le français.",
	"moderateur": "Tu es un modérateur de communauté. Évalue si le contenu fourni respecte une charte de bienveillance et explique calmement tout problème détecté.",
	"coach":      "Tu es un coach de préparation aux entretiens. Pose des questions pertinentes et donne des retours constructifs et encourageants.",
}

// ChatResult 是一次 AI 问答的返回结果。
type ChatResult struct {
	Response string `json:"response"`
	Model    string `json:"model"`
	Agent    string `json:"agent"`
}

// ChatService 定义了 AI 问答中继的接口。
type ChatService interface {
	// Chat 消费一次提问配额，携带用户的滚动上下文调用 LLM，
	// 并将这轮问答写入持久日志。配额耗尽时返回 ErrQuotaExceeded。
	Chat(ctx context.Context, user *model.User, prompt, agentName string) (*ChatResult, error)
}

// chatService 是 ChatService 接口的实现。
type chatService struct {
	llmClient           llm.Client
	quotaService        QuotaService
	conversationService ConversationService
	chatContextRepo     repository.ChatContextRepository
}

// NewChatService 创建一个新的 ChatService 实例。
func NewChatService(llmClient llm.Client, quotaService QuotaService, conversationService ConversationService, chatContextRepo repository.ChatContextRepository) ChatService {
	return &chatService{
		llmClient:           llmClient,
		quotaService:        quotaService,
		conversationService: conversationService,
		chatContextRepo:     chatContextRepo,
	}
}

// Chat 协调配额消费、上下文装配与 LLM 调用。
func (s *chatService) Chat(ctx context.Context, user *model.User, prompt, agentName string) (*ChatResult, error) {
	if prompt == "" {
		return nil, ErrMissingFields
	}

	agent := agentName
	systemPrompt, ok := agentPrompts[agent]
	if !ok {
		agent = defaultAgentName
		systemPrompt = defaultAgentPrompt
	}

	// 1. 原子消费一次提问额度；失败即拒绝，不触达 LLM
	if _, err := s.quotaService.ConsumeQuestion(user.ID); err != nil {
		return nil, err
	}

	// 2. 装配消息：system 提示 + 滚动上下文 + 当前问题
	history, err := s.chatContextRepo.GetHistory(ctx, user.ID)
	if err != nil {
		log.Warnf("加载滚动上下文失败: userID=%d, error: %v", user.ID, err)
		history = []model.ChatMessage{}
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	for _, m := range history {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: prompt})

	// 3. 同步调用 LLM，失败直接上抛（不重试）
	content, modelName, err := s.llmClient.ChatCompletion(ctx, messages)
	if err != nil {
		return nil, err
	}

	// 4. 落库与上下文更新。使用后台上下文：即使请求被取消，
	// 已经生成的回答也应当被记录。
	uid := user.ID
	if _, err := s.conversationService.SaveConversation(&uid, prompt, content, agent); err != nil {
		log.Errorf("保存问答记录失败: userID=%d, error: %v", uid, err)
	}
	if err := s.chatContextRepo.AppendExchange(context.Background(), uid, prompt, content); err != nil {
		log.Errorf("更新滚动上下文失败: userID=%d, error: %v", uid, err)
	}

	kafka.PublishActivity(events.ActivityEvent{Type: events.TypeQuestionAsked, UserID: &uid, Detail: agent})

	return &ChatResult{Response: content, Model: modelName, Agent: agent}, nil
}
