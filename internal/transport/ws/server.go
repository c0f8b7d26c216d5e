package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/types"
	"github.com/LouYuanbo1/recruitagent/internal/protocol"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const readLimit = 8 << 20

type Server struct {
	backend Backend
	path    string
	logger  *zap.Logger
}

func NewServer(backend Backend, path string, logger *zap.Logger) *Server {
	return &Server{backend: backend, path: path, logger: logger}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get(s.path, s.serveWS)
	return r
}

// serveWS 按顺序处理同一连接上的请求
func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket握手失败", zap.Error(err))
		return
	}
	defer conn.CloseNow()
	conn.SetReadLimit(readLimit)
	s.logger.Info("控制端已连接", zap.String("remote", r.RemoteAddr))

	ctx := r.Context()
	for {
		var env Envelope
		if err := wsjson.Read(ctx, conn, &env); err != nil {
			if status := websocket.CloseStatus(err); status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				s.logger.Info("控制端已断开", zap.String("remote", r.RemoteAddr))
			} else if !errors.Is(err, context.Canceled) {
				s.logger.Warn("读取请求失败", zap.Error(err))
			}
			return
		}
		reply := s.handle(ctx, env)
		if err := wsjson.Write(ctx, conn, reply); err != nil {
			s.logger.Warn("写入应答失败", zap.Uint64("id", env.ID), zap.Error(err))
			return
		}
	}
}

func (s *Server) handle(ctx context.Context, env Envelope) Reply {
	reply := Reply{ID: env.ID}
	var err error
	switch env.Op {
	case OpQueryTabs:
		reply.Tabs, err = s.backend.QueryTabs(ctx, env.Pattern)
	case OpCreateTab:
		var tab types.Tab
		tab, err = s.backend.CreateTab(ctx, env.URL)
		reply.Tab = &tab
	case OpUpdateTab:
		var tab types.Tab
		tab, err = s.backend.UpdateTab(ctx, env.TabID, env.URL, env.Active)
		reply.Tab = &tab
	case OpSendMessage:
		if env.Message == nil {
			err = errors.New("缺少message")
			break
		}
		var resp protocol.Response
		resp, err = s.backend.SendMessage(ctx, env.TabID, *env.Message)
		reply.Response = &resp
	default:
		err = fmt.Errorf("未知的操作: %q", env.Op)
	}
	if err != nil {
		s.logger.Warn("处理请求失败", zap.String("op", string(env.Op)), zap.Error(err))
		return Reply{ID: env.ID, Error: err.Error()}
	}
	return reply
}
