package chrome

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/LouYuanbo1/recruitagent/internal/config"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/dom"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/types"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"go.uber.org/zap"
)

type rodCrawler struct {
	browser *rod.Browser
	// owned 浏览器由本进程启动,Close时一并关闭
	owned   bool
	stealth bool
	logger  *zap.Logger

	mu    sync.Mutex
	pages map[string]*rod.Page
}

// InitRodCrawler 启动(或连接已有的)浏览器
// 配置了rod.control_url时连接该浏览器,否则按配置启动新的浏览器进程
func InitRodCrawler(cfg *config.Config, logger *zap.Logger) (ChromeCrawler, error) {
	var (
		controlURL string
		err        error
	)
	if cfg.Rod.ControlURL != "" {
		controlURL, err = launcher.ResolveURL(cfg.Rod.ControlURL)
		if err != nil {
			return nil, fmt.Errorf("解析浏览器调试地址失败: %w", err)
		}
	} else {
		controlURL, err = newLauncher(cfg).Launch()
		if err != nil {
			return nil, fmt.Errorf("启动浏览器失败: %w", err)
		}
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("连接浏览器失败: %w", err)
	}
	logger.Info("浏览器已连接", zap.String("controlURL", controlURL), zap.Bool("stealth", cfg.Rod.Stealth))
	return &rodCrawler{
		browser: browser,
		owned:   cfg.Rod.ControlURL == "",
		stealth: cfg.Rod.Stealth,
		logger:  logger,
		pages:   make(map[string]*rod.Page),
	}, nil
}

func newLauncher(cfg *config.Config) *launcher.Launcher {
	l := launcher.New().
		Headless(cfg.Rod.Headless).
		Leakless(cfg.Rod.Leakless).
		NoSandbox(cfg.Rod.NoSandbox)
	if cfg.Rod.Bin != "" {
		l = l.Bin(cfg.Rod.Bin)
	}
	if cfg.Rod.UserDataDir != "" {
		// 保留登录态
		l = l.UserDataDir(cfg.Rod.UserDataDir)
	}
	if cfg.Rod.DisableBlinkFeatures != "" {
		l = l.Set("disable-blink-features", cfg.Rod.DisableBlinkFeatures)
	}
	if cfg.Rod.Incognito {
		l = l.Set("incognito")
	}
	if cfg.Rod.DisableDevShmUsage {
		l = l.Set("disable-dev-shm-usage")
	}
	if cfg.Rod.UserAgent != "" {
		l = l.Set("user-agent", cfg.Rod.UserAgent)
	}
	return l
}

func (rc *rodCrawler) Close() {
	if !rc.owned {
		return
	}
	if err := rc.browser.Close(); err != nil {
		rc.logger.Warn("关闭浏览器失败", zap.Error(err))
	}
}

func (rc *rodCrawler) Tabs(ctx context.Context) ([]types.Tab, error) {
	pages, err := rc.browser.Context(ctx).Pages()
	if err != nil {
		return nil, fmt.Errorf("获取标签页失败: %w", err)
	}
	tabs := make([]types.Tab, 0, len(pages))
	for _, p := range pages {
		tab, err := rc.remember(p)
		if err != nil {
			rc.logger.Debug("读取标签页信息失败", zap.Error(err))
			continue
		}
		tabs = append(tabs, tab)
	}
	return tabs, nil
}

func (rc *rodCrawler) CreateTab(ctx context.Context, url string) (types.Tab, error) {
	var (
		p   *rod.Page
		err error
	)
	if rc.stealth {
		p, err = stealth.Page(rc.browser)
		if err == nil {
			err = p.Context(ctx).Navigate(url)
		}
	} else {
		p, err = rc.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
	}
	if err != nil {
		return types.Tab{}, fmt.Errorf("创建标签页失败: %w", err)
	}
	if err := p.Context(ctx).WaitLoad(); err != nil {
		return types.Tab{}, fmt.Errorf("等待页面加载失败: %w", err)
	}
	tab, err := rc.remember(p)
	if err != nil {
		return types.Tab{}, err
	}
	tab.Active = true
	rc.logger.Info("已创建标签页", zap.String("tab", tab.ID), zap.String("url", url))
	return tab, nil
}

func (rc *rodCrawler) remember(p *rod.Page) (types.Tab, error) {
	info, err := p.Info()
	if err != nil {
		return types.Tab{}, err
	}
	id := string(p.TargetID)
	rc.mu.Lock()
	rc.pages[id] = p
	rc.mu.Unlock()
	return types.Tab{ID: id, URL: info.URL, Title: info.Title}, nil
}

func (rc *rodCrawler) page(tabID string) (*rod.Page, error) {
	rc.mu.Lock()
	p, ok := rc.pages[tabID]
	rc.mu.Unlock()
	if ok {
		return p, nil
	}
	p, err := rc.browser.PageFromTarget(proto.TargetTargetID(tabID))
	if err != nil {
		return nil, fmt.Errorf("未找到标签页 %s: %w", tabID, err)
	}
	rc.mu.Lock()
	rc.pages[tabID] = p
	rc.mu.Unlock()
	return p, nil
}

func (rc *rodCrawler) Navigate(ctx context.Context, tabID, url string) error {
	p, err := rc.page(tabID)
	if err != nil {
		return err
	}
	p = p.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("导航失败: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("等待页面加载失败: %w", err)
	}
	rc.logger.Info("导航成功", zap.String("tab", tabID), zap.String("url", url))
	return nil
}

func (rc *rodCrawler) Activate(ctx context.Context, tabID string) error {
	p, err := rc.page(tabID)
	if err != nil {
		return err
	}
	if _, err := p.Context(ctx).Activate(); err != nil {
		return fmt.Errorf("激活标签页失败: %w", err)
	}
	return nil
}

func (rc *rodCrawler) Document(tabID string) (dom.Document, error) {
	p, err := rc.page(tabID)
	if err != nil {
		return nil, err
	}
	return &rodDocument{page: p}, nil
}

func (rc *rodCrawler) Cookies(ctx context.Context, tabID string, urls ...string) ([]*http.Cookie, error) {
	p, err := rc.page(tabID)
	if err != nil {
		return nil, err
	}
	cookies, err := p.Context(ctx).Cookies(urls)
	if err != nil {
		return nil, fmt.Errorf("读取cookie失败: %w", err)
	}
	out := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HttpOnly: c.HTTPOnly,
		})
	}
	return out, nil
}
