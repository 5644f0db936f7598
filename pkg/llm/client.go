// Package llm 提供了调用大语言模型聊天补全接口的客户端。
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"entraide-go/internal/config"
)

// Message 表示一条角色消息。
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client 定义了 LLM 客户端的接口。
type Client interface {
	// ChatCompletion 发起一次同步的聊天补全调用，
	// 返回首个 choice 的文本内容以及实际使用的模型名。
	ChatCompletion(ctx context.Context, messages []Message) (content string, model string, err error)
}

type openAIClient struct {
	cfg    config.LLMConfig
	client *http.Client
}

// NewClient 根据配置创建一个 OpenAI 兼容的 LLM 客户端。
func NewClient(cfg config.LLMConfig) Client {
	return &openAIClient{
		cfg:    cfg,
		client: &http.Client{},
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ChatCompletion 调用 /chat/completions 接口并返回首个补全结果。
// 不做重试，也不做流式传输：失败立即上抛给调用方。
func (c *openAIClient) ChatCompletion(ctx context.Context, messages []Message) (string, string, error) {
	reqBody := chatRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: c.cfg.Generation.Temperature,
		MaxTokens:   c.cfg.Generation.MaxTokens,
	}
	if reqBody.Temperature == 0 {
		reqBody.Temperature = 0.7
	}
	if reqBody.MaxTokens == 0 {
		reqBody.MaxTokens = 1000
	}

	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(reqBytes))
	if err != nil {
		return "", "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to call chat api: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to read chat api response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("chat api returned non-200 status: %s, body: %s", resp.Status, string(bodyBytes))
	}

	var parsed chatResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", "", fmt.Errorf("failed to unmarshal chat api response: %w", err)
	}
	if parsed.Error != nil {
		return "", "", fmt.Errorf("chat api error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", "", fmt.Errorf("chat api returned no choices")
	}

	model := parsed.Model
	if model == "" {
		model = c.cfg.Model
	}
	return parsed.Choices[0].Message.Content, model, nil
}
