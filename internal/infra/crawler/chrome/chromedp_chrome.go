package chrome

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/LouYuanbo1/recruitagent/internal/config"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/dom"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/types"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

type chromedpTab struct {
	ctx    context.Context
	cancel context.CancelFunc
}

type chromedpCrawler struct {
	allocCtxFuc   context.CancelFunc
	browserCtx    context.Context
	browserCtxFuc context.CancelFunc
	timeoutCtxFuc context.CancelFunc
	logger        *zap.Logger

	mu   sync.Mutex
	tabs map[target.ID]*chromedpTab
}

// InitChromedpCrawler 启动浏览器,浏览器的生命周期受chromedp.life_time限制
func InitChromedpCrawler(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ChromeCrawler, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Chromedp.Headless),
		chromedp.Flag("incognito", cfg.Chromedp.Incognito),
		chromedp.Flag("disable-dev-shm-usage", cfg.Chromedp.DisableDevShmUsage),
		chromedp.Flag("no-sandbox", cfg.Chromedp.NoSandbox),
	)
	if cfg.Chromedp.DisableBlinkFeatures != "" {
		opts = append(opts, chromedp.Flag("disable-blink-features", cfg.Chromedp.DisableBlinkFeatures))
	}
	if cfg.Chromedp.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(cfg.Chromedp.UserDataDir))
	}
	if cfg.Chromedp.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.Chromedp.UserAgent))
	}

	timeoutCtx, cancelTimeout := context.WithTimeout(ctx, time.Duration(cfg.Chromedp.LifeTime)*time.Second)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(timeoutCtx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	cc := &chromedpCrawler{
		allocCtxFuc:   cancelAlloc,
		browserCtx:    browserCtx,
		browserCtxFuc: cancelBrowser,
		timeoutCtxFuc: cancelTimeout,
		logger:        logger,
		tabs:          make(map[target.ID]*chromedpTab),
	}
	// 第一次Run启动浏览器并打开初始标签页
	if err := chromedp.Run(browserCtx); err != nil {
		cc.Close()
		return nil, fmt.Errorf("启动浏览器失败: %w", err)
	}
	first := chromedp.FromContext(browserCtx).Target.TargetID
	cc.tabs[first] = &chromedpTab{ctx: browserCtx, cancel: func() {}}
	logger.Info("浏览器已启动", zap.Int("lifeTime", cfg.Chromedp.LifeTime))
	return cc, nil
}

func (cc *chromedpCrawler) Close() {
	cc.mu.Lock()
	for _, t := range cc.tabs {
		t.cancel()
	}
	cc.mu.Unlock()
	cc.browserCtxFuc()
	cc.allocCtxFuc()
	cc.timeoutCtxFuc()
}

func (cc *chromedpCrawler) Tabs(ctx context.Context) ([]types.Tab, error) {
	infos, err := chromedp.Targets(cc.browserCtx)
	if err != nil {
		return nil, fmt.Errorf("获取标签页失败: %w", err)
	}
	tabs := make([]types.Tab, 0, len(infos))
	for _, info := range infos {
		if info.Type != "page" {
			continue
		}
		tabs = append(tabs, types.Tab{ID: string(info.TargetID), URL: info.URL, Title: info.Title})
	}
	return tabs, nil
}

func (cc *chromedpCrawler) CreateTab(ctx context.Context, url string) (types.Tab, error) {
	tabCtx, cancel := chromedp.NewContext(cc.browserCtx)
	if err := cc.run(ctx, tabCtx, network.Enable(), chromedp.Navigate(url)); err != nil {
		cancel()
		return types.Tab{}, fmt.Errorf("创建标签页失败: %w", err)
	}
	id := chromedp.FromContext(tabCtx).Target.TargetID
	cc.mu.Lock()
	cc.tabs[id] = &chromedpTab{ctx: tabCtx, cancel: cancel}
	cc.mu.Unlock()
	cc.logger.Info("已创建标签页", zap.String("tab", string(id)), zap.String("url", url))
	return types.Tab{ID: string(id), URL: url, Active: true}, nil
}

func (cc *chromedpCrawler) tab(tabID string) *chromedpTab {
	id := target.ID(tabID)
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if t, ok := cc.tabs[id]; ok {
		return t
	}
	tabCtx, cancel := chromedp.NewContext(cc.browserCtx, chromedp.WithTargetID(id))
	t := &chromedpTab{ctx: tabCtx, cancel: cancel}
	cc.tabs[id] = t
	return t
}

// run 在标签页上下文中执行actions,调用方ctx取消时中止
func (cc *chromedpCrawler) run(ctx, tabCtx context.Context, actions ...chromedp.Action) error {
	done := make(chan error, 1)
	go func() { done <- chromedp.Run(tabCtx, actions...) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (cc *chromedpCrawler) Navigate(ctx context.Context, tabID, url string) error {
	if err := cc.run(ctx, cc.tab(tabID).ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("导航失败: %w", err)
	}
	cc.logger.Info("导航成功", zap.String("tab", tabID), zap.String("url", url))
	return nil
}

func (cc *chromedpCrawler) Activate(ctx context.Context, tabID string) error {
	if err := cc.run(ctx, cc.tab(tabID).ctx, page.BringToFront()); err != nil {
		return fmt.Errorf("激活标签页失败: %w", err)
	}
	return nil
}

func (cc *chromedpCrawler) Document(tabID string) (dom.Document, error) {
	return &chromedpDocument{ctx: cc.tab(tabID).ctx}, nil
}

func (cc *chromedpCrawler) Cookies(ctx context.Context, tabID string, urls ...string) ([]*http.Cookie, error) {
	var cookies []*network.Cookie
	err := cc.run(ctx, cc.tab(tabID).ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		cookies, err = network.GetCookies().WithURLs(urls).Do(ctx)
		return err
	}))
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
