package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/LouYuanbo1/recruitagent/internal/domain/model"
	"github.com/LouYuanbo1/recruitagent/internal/host"
	"github.com/LouYuanbo1/recruitagent/internal/infra/embedding"
	"github.com/LouYuanbo1/recruitagent/internal/infra/persistence/es"
	"github.com/LouYuanbo1/recruitagent/internal/service/controller"
	"github.com/LouYuanbo1/recruitagent/internal/service/ledger"
	"github.com/LouYuanbo1/recruitagent/internal/transport/ws"
	"go.uber.org/zap"
)

// openRuntime 连接远程引擎,或在本进程启动浏览器
func (a *app) openRuntime(ctx context.Context, remote string) (controller.Runtime, func(), error) {
	if remote != "" {
		client, err := ws.Dial(ctx, remote, a.logger)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { _ = client.Close() }, nil
	}
	h, err := host.InitLocalHost(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, nil, err
	}
	return h, h.Close, nil
}

// openLedger 未配置elasticsearch.address时返回nil
func (a *app) openLedger(ctx context.Context) (*ledger.Ledger, error) {
	if a.cfg.Elasticsearch.Address == "" {
		return nil, nil
	}
	client, err := es.InitTypedEsClient[*model.GeekDoc](a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	embedder, err := embedding.InitEmbedder(ctx, a.cfg)
	if err != nil {
		a.logger.Warn("嵌入模型不可用,台账不保存向量", zap.Error(err))
		embedder = nil
	}
	return ledger.InitLedger(ctx, client, embedder, a.logger)
}

// withInterrupt 第一次中断在当前实体完成后停止,第二次中断取消ctx
func withInterrupt(ctx context.Context, onFirst func()) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	sig := make(chan os.Signal, 2)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		select {
		case <-sig:
			onFirst()
		case <-done:
			return
		}
		select {
		case <-sig:
			cancel()
		case <-done:
		}
	}()
	return ctx, func() {
		signal.Stop(sig)
		close(done)
		cancel()
	}
}
