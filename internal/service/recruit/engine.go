package recruit

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/LouYuanbo1/recruitagent/internal/domain/entity"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/dom"
	"github.com/LouYuanbo1/recruitagent/internal/service/recruit/param"
	"go.uber.org/zap"
)

// Engine 运行在单个标签页上的自动化引擎,负责全部DOM读写
type Engine interface {
	CheckLoginStatus(ctx context.Context) LoginStatus
	FilterGeeks(ctx context.Context, filterKeywords string) (DiscoveryResult, error)
	FilterChatUsers(ctx context.Context, filterKeywords string) (DiscoveryResult, error)
	DoGreeting(ctx context.Context, sessionID int64, index int) (entity.Geek, error)
	DoDownloadResume(ctx context.Context, sessionID int64, index int) (ResumeReport, error)
}

// LoginStatus 登录检测结果
type LoginStatus struct {
	IsLoggedIn bool            `json:"isLoggedIn"`
	Data       json.RawMessage `json:"data,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// LoginChecker 使用标签页的cookie查询登录状态
type LoginChecker interface {
	CheckLogin(ctx context.Context) (LoginStatus, error)
}

type engine struct {
	// mu 串行化所有处理函数,保护session
	mu      sync.Mutex
	doc     dom.Document
	login   LoginChecker
	pacer   Pacer
	pacing  param.Pacing
	logger  *zap.Logger
	nextID  int64
	session DiscoverySession
}

type Option func(*engine)

func WithPacer(p Pacer) Option {
	return func(e *engine) { e.pacer = p }
}

func WithPacing(p param.Pacing) Option {
	return func(e *engine) { e.pacing = p }
}

func InitEngine(doc dom.Document, login LoginChecker, logger *zap.Logger, opts ...Option) Engine {
	e := &engine{
		doc:    doc,
		login:  login,
		pacer:  InitRandomPacer(),
		pacing: param.DefaultPacing(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *engine) CheckLoginStatus(ctx context.Context) LoginStatus {
	status, err := e.login.CheckLogin(ctx)
	if err != nil {
		e.logger.Warn("检查登录状态失败", zap.Error(err))
		return LoginStatus{IsLoggedIn: false, Error: err.Error()}
	}
	e.logger.Info("登录状态", zap.Bool("isLoggedIn", status.IsLoggedIn))
	return status
}

// replaceSession 丢弃旧会话,生成新一代会话
func (e *engine) replaceSession(kind SessionKind) *DiscoverySession {
	e.nextID++
	e.session = DiscoverySession{ID: e.nextID, Kind: kind}
	return &e.session
}

func (e *engine) result(outcome Outcome) DiscoveryResult {
	geeks := entity.Clone(e.session.Geeks)
	if geeks == nil {
		geeks = []entity.Geek{}
	}
	return DiscoveryResult{
		Session: e.session.ID,
		Kind:    e.session.Kind,
		Outcome: outcome,
		Geeks:   geeks,
	}
}
