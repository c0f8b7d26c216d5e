package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LouYuanbo1/recruitagent/internal/config"
	"github.com/LouYuanbo1/recruitagent/internal/domain/entity"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/types"
	"github.com/LouYuanbo1/recruitagent/internal/protocol"
	"github.com/LouYuanbo1/recruitagent/internal/service/recruit"
	"github.com/LouYuanbo1/recruitagent/internal/service/recruit/param"
	"go.uber.org/zap"
)

var ErrNotLoggedIn = errors.New("未登录BOSS直聘")

// Runtime 控制端依赖的标签页运行时,本地为host.Host,远程为ws.Client
type Runtime interface {
	QueryTabs(ctx context.Context, pattern string) ([]types.Tab, error)
	CreateTab(ctx context.Context, url string) (types.Tab, error)
	UpdateTab(ctx context.Context, tabID, url string, active bool) (types.Tab, error)
	protocol.Messenger
}

// RunReport 一次批量操作的结果
type RunReport struct {
	TabID     string          `json:"tabId"`
	Session   int64           `json:"session"`
	Outcome   recruit.Outcome `json:"outcome"`
	Geeks     []entity.Geek   `json:"geeks"`
	Processed int             `json:"processed"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Stopped   bool            `json:"stopped"`
}

type Controller struct {
	runtime   Runtime
	messenger protocol.Messenger
	seq       *Sequencer
	pacer     recruit.Pacer
	boss      bossPages
	logger    *zap.Logger
}

type bossPages struct {
	home, recommend, chat string
	tabPattern            string
	loadWait              param.Delay
}

// InitController 组装控制端,所有发往引擎的请求都经过单请求在途保护
func InitController(runtime Runtime, cfg *config.Config, recorder Recorder, pacer recruit.Pacer, logger *zap.Logger) *Controller {
	messenger := protocol.NewGuard(runtime)
	wait := time.Duration(cfg.Boss.LoadWaitSeconds) * time.Second
	return &Controller{
		runtime:   runtime,
		messenger: messenger,
		seq:       NewSequencer(messenger, pacer, recorder, logger),
		pacer:     pacer,
		boss: bossPages{
			home:       cfg.Boss.HomeURL,
			recommend:  cfg.Boss.RecommendURL,
			chat:       cfg.Boss.ChatURL,
			tabPattern: cfg.Boss.TabURLPattern,
			loadWait:   param.Delay{Min: wait, Max: wait},
		},
		logger: logger,
	}
}

// Stop 在下一个实体之前停止当前批量操作
func (c *Controller) Stop() {
	c.seq.Stop()
}

// EnsureTab 返回已打开的BOSS直聘标签页,没有时打开首页
func (c *Controller) EnsureTab(ctx context.Context) (types.Tab, error) {
	tabs, err := c.runtime.QueryTabs(ctx, c.boss.tabPattern)
	if err != nil {
		return types.Tab{}, fmt.Errorf("查询标签页失败: %w", err)
	}
	if len(tabs) > 0 {
		return tabs[0], nil
	}
	c.logger.Info("未找到BOSS直聘标签页,打开首页", zap.String("url", c.boss.home))
	tab, err := c.runtime.CreateTab(ctx, c.boss.home)
	if err != nil {
		return types.Tab{}, fmt.Errorf("打开首页失败: %w", err)
	}
	if err := c.pacer.Pause(ctx, c.boss.loadWait); err != nil {
		return types.Tab{}, err
	}
	return tab, nil
}

// CheckLogin 未登录时返回ErrNotLoggedIn
func (c *Controller) CheckLogin(ctx context.Context, tabID string) error {
	resp, err := c.messenger.SendMessage(ctx, tabID, protocol.Request{Action: protocol.CheckLoginStatus})
	if err != nil {
		return fmt.Errorf("检查登录状态失败: %w", err)
	}
	if !resp.IsLoggedIn {
		if resp.Error != "" {
			return fmt.Errorf("%w: %s", ErrNotLoggedIn, resp.Error)
		}
		return ErrNotLoggedIn
	}
	return nil
}

// openPage 复用已经停留在url的标签页,否则在tab中导航到url并等待加载,最后激活标签页
func (c *Controller) openPage(ctx context.Context, tab types.Tab, url string) (types.Tab, error) {
	tabs, err := c.runtime.QueryTabs(ctx, url+"*")
	if err != nil {
		return types.Tab{}, fmt.Errorf("查询标签页失败: %w", err)
	}
	if len(tabs) > 0 {
		tab = tabs[0]
	} else {
		c.logger.Info("导航到页面", zap.String("tab", tab.ID), zap.String("url", url))
		if tab, err = c.runtime.UpdateTab(ctx, tab.ID, url, false); err != nil {
			return types.Tab{}, fmt.Errorf("导航失败: %w", err)
		}
		if err := c.pacer.Pause(ctx, c.boss.loadWait); err != nil {
			return types.Tab{}, err
		}
	}
	if tab, err = c.runtime.UpdateTab(ctx, tab.ID, "", true); err != nil {
		return types.Tab{}, fmt.Errorf("激活标签页失败: %w", err)
	}
	return tab, nil
}

func (c *Controller) prepare(ctx context.Context, url string) (types.Tab, error) {
	tab, err := c.EnsureTab(ctx)
	if err != nil {
		return types.Tab{}, err
	}
	if err := c.CheckLogin(ctx, tab.ID); err != nil {
		return types.Tab{}, err
	}
	return c.openPage(ctx, tab, url)
}

// RunGreeting 打开推荐页,按关键字筛选候选人并逐个打招呼
func (c *Controller) RunGreeting(ctx context.Context, filterKeywords string, onUpdate func([]entity.Geek)) (RunReport, error) {
	c.seq.Reset()
	tab, err := c.prepare(ctx, c.boss.recommend)
	if err != nil {
		return RunReport{}, err
	}
	resp, err := c.messenger.SendMessage(ctx, tab.ID, protocol.Request{Action: protocol.FilterGeeks, FilterKeywords: filterKeywords})
	if err != nil {
		return RunReport{}, fmt.Errorf("筛选候选人失败: %w", err)
	}
	if resp.Error != "" {
		return RunReport{}, fmt.Errorf("筛选候选人失败: %s", resp.Error)
	}
	report := RunReport{TabID: tab.ID, Session: resp.Session, Outcome: resp.Outcome}
	c.logger.Info("筛选出候选人", zap.Int("count", len(resp.Geeks)), zap.String("outcome", string(resp.Outcome)))
	if onUpdate != nil {
		onUpdate(entity.Clone(resp.Geeks))
	}
	if c.seq.stopped(ctx) {
		c.logger.Info("筛选期间已停止,不再打招呼")
		report.Geeks = entity.Clone(resp.Geeks)
		report.Stopped = true
		return report, nil
	}

	run := c.seq.greet(ctx, tab.ID, resp.Session, resp.Geeks, onUpdate)
	report.Geeks = run.geeks
	report.Processed = run.processed
	report.Stopped = run.stopped
	for _, g := range run.geeks {
		switch g.Status {
		case entity.StatusGreeted:
			report.Succeeded++
		case entity.StatusFailed:
			report.Failed++
		}
	}
	return report, nil
}

// RunResumeDownload 打开沟通页,筛选有新消息的用户并逐个执行简历流程
func (c *Controller) RunResumeDownload(ctx context.Context, filterKeywords string, onUpdate func([]entity.Geek)) (RunReport, error) {
	c.seq.Reset()
	tab, err := c.prepare(ctx, c.boss.chat)
	if err != nil {
		return RunReport{}, err
	}
	resp, err := c.messenger.SendMessage(ctx, tab.ID, protocol.Request{Action: protocol.FilterChatUsers, FilterKeywords: filterKeywords})
	if err != nil {
		return RunReport{}, fmt.Errorf("筛选聊天用户失败: %w", err)
	}
	if resp.Error != "" {
		return RunReport{}, fmt.Errorf("筛选聊天用户失败: %s", resp.Error)
	}
	c.logger.Info("筛选出聊天用户", zap.Int("count", len(resp.Users)))
	if onUpdate != nil {
		onUpdate(entity.Clone(resp.Users))
	}
	if c.seq.stopped(ctx) {
		c.logger.Info("筛选期间已停止,不再下载简历")
		return RunReport{
			TabID:   tab.ID,
			Session: resp.Session,
			Outcome: resp.Outcome,
			Geeks:   entity.Clone(resp.Users),
			Stopped: true,
		}, nil
	}

	summary := c.seq.DownloadResumes(ctx, tab.ID, resp.Session, resp.Users, onUpdate)
	return RunReport{
		TabID:     tab.ID,
		Session:   resp.Session,
		Outcome:   resp.Outcome,
		Geeks:     summary.Users,
		Processed: summary.Succeeded + summary.Failed,
		Succeeded: summary.Succeeded,
		Failed:    summary.Failed,
		Stopped:   summary.Stopped,
	}, nil
}
