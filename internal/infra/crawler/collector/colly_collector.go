package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/LouYuanbo1/recruitagent/internal/config"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

type collyProbe struct {
	colly  *colly.Collector
	url    string
	logger *zap.Logger
}

func InitCollyProbe(cfg *config.Config, logger *zap.Logger) LoginProbe {
	opts := []colly.CollectorOption{
		colly.UserAgent(cfg.Colly.UserAgent),
		colly.AllowURLRevisit(),
	}
	if cfg.Colly.IgnoreRobotsTxt {
		opts = append(opts, colly.IgnoreRobotsTxt())
	}
	c := colly.NewCollector(opts...)
	// cookie由调用方按标签页提供
	c.DisableCookies()
	if cfg.Colly.TimeoutSeconds > 0 {
		c.SetRequestTimeout(time.Duration(cfg.Colly.TimeoutSeconds) * time.Second)
	}
	logger.Debug("InitCollyProbe", zap.String("url", cfg.Boss.LoginStateURL), zap.Int("timeout", cfg.Colly.TimeoutSeconds))
	return &collyProbe{
		colly:  c,
		url:    cfg.Boss.LoginStateURL,
		logger: logger,
	}
}

func (p *collyProbe) Check(ctx context.Context, cookies []*http.Cookie) (VipState, error) {
	if err := ctx.Err(); err != nil {
		return VipState{}, err
	}
	// Clone不复制回调
	c := p.colly.Clone()
	header := cookieHeader(cookies)

	var (
		state   VipState
		respErr error
	)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "application/json, text/plain, */*")
		if header != "" {
			r.Headers.Set("Cookie", header)
		}
		if ctx.Err() != nil {
			r.Abort()
		}
	})
	c.OnResponse(func(r *colly.Response) {
		if err := json.Unmarshal(r.Body, &state); err != nil {
			respErr = fmt.Errorf("解析登录状态失败: %w", err)
		}
	})
	c.OnError(func(r *colly.Response, err error) {
		respErr = fmt.Errorf("请求登录状态失败(状态码 %d): %w", r.StatusCode, err)
	})

	if err := c.Visit(p.url); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return VipState{}, ctxErr
		}
		return VipState{}, fmt.Errorf("访问URL失败: %w", err)
	}
	if respErr != nil {
		return VipState{}, respErr
	}
	p.logger.Debug("登录状态", zap.Int("code", state.Code), zap.String("message", state.Message))
	return state, nil
}

func cookieHeader(cookies []*http.Cookie) string {
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}
