// Package host 管理浏览器标签页,并为每个标签页维护一个页面引擎
package host

import (
	"context"
	"fmt"
	"sync"

	"github.com/LouYuanbo1/recruitagent/internal/config"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/chrome"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/collector"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/types"
	"github.com/LouYuanbo1/recruitagent/internal/protocol"
	"github.com/LouYuanbo1/recruitagent/internal/service/recruit"
	"go.uber.org/zap"
)

type Host struct {
	crawler    chrome.ChromeCrawler
	probe      collector.LoginProbe
	loginURL   string
	logger     *zap.Logger
	engineOpts []recruit.Option

	mu      sync.Mutex
	engines map[string]recruit.Engine
}

func InitHost(crawler chrome.ChromeCrawler, probe collector.LoginProbe, cfg *config.Config, logger *zap.Logger, engineOpts ...recruit.Option) *Host {
	return &Host{
		crawler:    crawler,
		probe:      probe,
		loginURL:   cfg.Boss.LoginStateURL,
		logger:     logger,
		engineOpts: engineOpts,
		engines:    make(map[string]recruit.Engine),
	}
}

// QueryTabs 返回URL匹配pattern的标签页,pattern为空时返回全部
func (h *Host) QueryTabs(ctx context.Context, pattern string) ([]types.Tab, error) {
	tabs, err := h.crawler.Tabs(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]types.Tab, 0, len(tabs))
	for _, tab := range tabs {
		if MatchPattern(pattern, tab.URL) {
			matched = append(matched, tab)
		}
	}
	return matched, nil
}

func (h *Host) CreateTab(ctx context.Context, url string) (types.Tab, error) {
	return h.crawler.CreateTab(ctx, url)
}

// UpdateTab 导航到url(非空时)并按需激活标签页
// 导航后页面重新加载,该标签页的引擎与会话随之重建
func (h *Host) UpdateTab(ctx context.Context, tabID, url string, active bool) (types.Tab, error) {
	if url != "" {
		if err := h.crawler.Navigate(ctx, tabID, url); err != nil {
			return types.Tab{}, err
		}
		h.mu.Lock()
		delete(h.engines, tabID)
		h.mu.Unlock()
	}
	if active {
		if err := h.crawler.Activate(ctx, tabID); err != nil {
			return types.Tab{}, err
		}
	}
	tabs, err := h.crawler.Tabs(ctx)
	if err != nil {
		return types.Tab{}, err
	}
	for _, tab := range tabs {
		if tab.ID == tabID {
			tab.Active = active
			return tab, nil
		}
	}
	return types.Tab{ID: tabID, URL: url, Active: active}, nil
}

// SendMessage 将请求交给标签页的引擎执行
func (h *Host) SendMessage(ctx context.Context, tabID string, req protocol.Request) (protocol.Response, error) {
	engine, err := h.engine(tabID)
	if err != nil {
		return protocol.Response{}, err
	}
	h.logger.Debug("收到请求", zap.String("tab", tabID), zap.String("action", string(req.Action)))
	return protocol.Dispatch(ctx, engine, req), nil
}

func (h *Host) engine(tabID string) (recruit.Engine, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.engines[tabID]; ok {
		return e, nil
	}
	doc, err := h.crawler.Document(tabID)
	if err != nil {
		return nil, fmt.Errorf("获取标签页文档失败: %w", err)
	}
	login := &tabLogin{host: h, tabID: tabID}
	e := recruit.InitEngine(doc, login, h.logger.With(zap.String("tab", tabID)), h.engineOpts...)
	h.engines[tabID] = e
	return e, nil
}

func (h *Host) Close() {
	h.crawler.Close()
}

// tabLogin 使用标签页的cookie探测登录状态
type tabLogin struct {
	host  *Host
	tabID string
}

func (l *tabLogin) CheckLogin(ctx context.Context) (recruit.LoginStatus, error) {
	cookies, err := l.host.crawler.Cookies(ctx, l.tabID, l.host.loginURL)
	if err != nil {
		return recruit.LoginStatus{}, err
	}
	state, err := l.host.probe.Check(ctx, cookies)
	if err != nil {
		return recruit.LoginStatus{}, err
	}
	status := recruit.LoginStatus{IsLoggedIn: state.LoggedIn(), Data: state.ZpData}
	if !status.IsLoggedIn {
		status.Error = state.Message
	}
	return status, nil
}
