package host

import (
	"context"
	"fmt"

	"github.com/LouYuanbo1/recruitagent/internal/config"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/chrome"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/collector"
	"github.com/LouYuanbo1/recruitagent/internal/service/recruit"
	"go.uber.org/zap"
)

// InitLocalHost 按配置的驱动启动浏览器,组装登录探测与页面引擎
func InitLocalHost(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Host, error) {
	var (
		crawler chrome.ChromeCrawler
		err     error
	)
	switch cfg.Driver {
	case "chromedp":
		crawler, err = chrome.InitChromedpCrawler(ctx, cfg, logger)
	default:
		crawler, err = chrome.InitRodCrawler(cfg, logger)
	}
	if err != nil {
		return nil, fmt.Errorf("启动浏览器失败: %w", err)
	}
	probe := collector.InitCollyProbe(cfg, logger)
	logger.Info("浏览器已启动", zap.String("driver", cfg.Driver))
	return InitHost(crawler, probe, cfg, logger, recruit.WithPacer(recruit.InitRandomPacer())), nil
}
