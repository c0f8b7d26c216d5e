package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/LouYuanbo1/recruitagent/internal/config"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino/components/model"
)

type ollamaLLM struct {
	model *ollama.ChatModel
}

// Settings 连接对话模型所需的参数
type Settings struct {
	BaseURL string
	Model   string
	// Key 非空时以Bearer方式携带,用于需要鉴权的代理
	Key     string
	Timeout time.Duration
}

// InitLLM 使用llm配置段连接本地ollama,用于对话助手
func InitLLM(ctx context.Context, cfg *config.Config) (LLM, error) {
	return NewOllamaLLM(ctx, Settings{
		BaseURL: fmt.Sprintf("%s:%d", cfg.LLM.Host, cfg.LLM.Port),
		Model:   cfg.LLM.Model,
	})
}

// InitAPILLM 使用api配置段,用于简历评估;base_url或model为空时回退到llm配置段
func InitAPILLM(ctx context.Context, cfg *config.Config) (LLM, error) {
	s := Settings{
		BaseURL: cfg.API.BaseURL,
		Model:   cfg.API.Model,
		Key:     cfg.API.Key,
		Timeout: 3 * time.Minute,
	}
	if s.BaseURL == "" {
		s.BaseURL = fmt.Sprintf("%s:%d", cfg.LLM.Host, cfg.LLM.Port)
	}
	if s.Model == "" {
		s.Model = cfg.LLM.Model
	}
	return NewOllamaLLM(ctx, s)
}

func NewOllamaLLM(ctx context.Context, s Settings) (LLM, error) {
	client := &http.Client{Timeout: s.Timeout}
	if s.Key != "" {
		client.Transport = bearer{key: s.Key, next: http.DefaultTransport}
	}
	m, err := ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
		BaseURL:    s.BaseURL,
		Model:      s.Model,
		HTTPClient: client,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化对话模型失败: %w", err)
	}
	return &ollamaLLM{model: m}, nil
}

func (l *ollamaLLM) Model() model.BaseChatModel {
	return l.model
}

type bearer struct {
	key  string
	next http.RoundTripper
}

func (b bearer) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.key)
	return b.next.RoundTrip(req)
}
