// Package evaluate 使用对话模型评估简历是否符合招聘要求
package evaluate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/LouYuanbo1/recruitagent/internal/config"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"
)

var (
	ErrEmptyResume   = errors.New("简历内容为空")
	ErrEmptyResponse = errors.New("模型没有返回内容")
	ErrBadResponse   = errors.New("无法解析模型返回的JSON")
)

type Resume struct {
	FileName string
	Content  string
}

// APISettings 单次评估使用的模型参数,Model为空时使用模型默认值
type APISettings struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

func SettingsFromConfig(cfg *config.Config) APISettings {
	return APISettings{
		Model:       cfg.API.Model,
		MaxTokens:   cfg.API.MaxTokens,
		Temperature: cfg.API.Temperature,
	}
}

type Evaluation struct {
	Result          bool   `json:"result"`
	Name            string `json:"name"`
	Age             string `json:"age"`
	Experience      string `json:"experience"`
	Education       string `json:"education"`
	School          string `json:"school"`
	Stability       string `json:"stability"`
	TechSkills      string `json:"techSkills"`
	IndustryExp     string `json:"industryExp"`
	IsJavaDeveloper bool   `json:"isJavaDeveloper"`
	Summary         string `json:"summary"`
}

type parsedResume struct {
	Name    string   `json:"name"`
	Age     float64  `json:"age"`
	Schools []string `json:"schools"`
	Content string   `json:"content"`
}

type Evaluator struct {
	model  model.BaseChatModel
	logger *zap.Logger
}

func InitEvaluator(m model.BaseChatModel, logger *zap.Logger) *Evaluator {
	return &Evaluator{model: m, logger: logger}
}

// Evaluate 先把简历整理为结构化内容,再按招聘标准评估
func (e *Evaluator) Evaluate(ctx context.Context, resume Resume, settings APISettings) (*Evaluation, error) {
	if strings.TrimSpace(resume.Content) == "" {
		return nil, ErrEmptyResume
	}
	opts := settings.options()

	var parsed parsedResume
	err := e.generateJSON(ctx, &parsed, []*schema.Message{
		schema.SystemMessage(parsePrompt),
		schema.UserMessage("请阅读这份简历并按要求返回内容。\n\n" + resume.Content),
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("解析简历失败: %w", err)
	}
	e.logger.Debug("简历解析完成", zap.String("file", resume.FileName), zap.String("name", parsed.Name), zap.Strings("schools", parsed.Schools))

	content := parsed.Content
	if strings.TrimSpace(content) == "" {
		content = resume.Content
	}
	var ev Evaluation
	err = e.generateJSON(ctx, &ev, []*schema.Message{
		schema.SystemMessage(evaluationPrompt),
		schema.UserMessage("详细和严格的评估下面这份简历的内容:\n" + content),
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("评估简历失败: %w", err)
	}
	ev.Name = parsed.Name
	e.logger.Info("简历评估完成", zap.String("file", resume.FileName), zap.String("name", ev.Name), zap.Bool("result", ev.Result))
	return &ev, nil
}

func (e *Evaluator) generateJSON(ctx context.Context, out any, msgs []*schema.Message, opts ...model.Option) error {
	resp, err := e.model.Generate(ctx, msgs, opts...)
	if err != nil {
		return err
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return ErrEmptyResponse
	}
	raw, ok := extractJSON(resp.Content)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBadResponse, resp.Content)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

func (s APISettings) options() []model.Option {
	var opts []model.Option
	if s.Model != "" {
		opts = append(opts, model.WithModel(s.Model))
	}
	if s.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(s.MaxTokens))
	}
	opts = append(opts, model.WithTemperature(float32(s.Temperature)))
	return opts
}

// extractJSON 截取回复中第一个'{'到最后一个'}'之间的内容,模型常把JSON包在代码块里
func extractJSON(content string) (string, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return "", false
	}
	return content[start : end+1], true
}
