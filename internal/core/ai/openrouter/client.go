package openrouter

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"recipe-extractor/internal/infrastructure/config"
	"recipe-extractor/internal/pkg/common"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// Client OpenRouter API 客戶端
// 精煉與高階翻譯共用同一個 client，每次抽取最多呼叫一次
type Client struct {
	cfg     *config.Config
	client  *resty.Client
	baseURL string
}

// Message 消息結構
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request 表示 API 請求
type Request struct {
	Model       string    `json:"model,omitempty"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	Stream      bool      `json:"stream,omitempty"`
}

// Response OpenRouter 響應結構
type Response struct {
	ID      string    `json:"id"`
	Choices []Choice  `json:"choices"`
	Usage   UsageInfo `json:"usage"`
}

// Choice 選擇結構
type Choice struct {
	Message Message `json:"message"`
}

// UsageInfo 使用量信息
type UsageInfo struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// apiError API 錯誤響應
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// NewClient 創建新的 OpenRouter 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+cfg.OpenRouter.APIKey).
		SetHeader("X-Title", "Recipe Extractor").
		SetRetryCount(0)

	return &Client{
		cfg:     cfg,
		client:  client,
		baseURL: defaultBaseURL,
	}
}

// SetBaseURL 覆寫 API 位址（測試用）
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// Complete 送出單次補全請求並取回文字內容
// 不做自動重試：失敗一次就交由呼叫端的降級策略處理
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := &Request{
		Model: c.cfg.OpenRouter.Model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   c.cfg.OpenRouter.MaxTokens,
		Temperature: 0.2,
	}

	start := time.Now()
	var out Response
	var apiErr apiError
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&apiErr).
		Post(c.baseURL + "/chat/completions")
	if err != nil {
		common.LogError("模型請求失敗",
			zap.Error(err),
			zap.String("model", req.Model),
		)
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode() != 200 {
		common.LogError("模型回應狀態異常",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", req.Model),
			zap.String("api_error", apiErr.Error.Message),
		)
		return "", fmt.Errorf("model API error (status %d): %s", resp.StatusCode(), apiErr.Error.Message)
	}

	if len(out.Choices) == 0 {
		return "", fmt.Errorf("empty choices in response")
	}
	content := out.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty content in response")
	}

	common.LogInfo("模型補全成功",
		zap.String("model", req.Model),
		zap.Int("content_length", len(content)),
		zap.Int("total_tokens", out.Usage.TotalTokens),
		zap.Duration("耗時", time.Since(start)),
	)
	return content, nil
}
