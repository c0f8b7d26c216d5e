package main

import (
	"context"
	_ "embed"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LouYuanbo1/recruitagent/internal/config"
	"github.com/LouYuanbo1/recruitagent/internal/host"
	"github.com/LouYuanbo1/recruitagent/internal/logging"
	"github.com/LouYuanbo1/recruitagent/internal/transport/ws"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:embed appconfig/appconfig.json
var appConfig []byte

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		listen     string
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:          "engine",
		Short:        "启动浏览器,并通过websocket向recruit --remote提供标签页与页面引擎",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.ParseConfigFile(configPath, appConfig)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Server.Address = listen
			}
			logger, err := logging.New(verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "配置文件路径,默认使用内置配置")
	cmd.Flags().StringVar(&listen, "listen", "", "监听地址,覆盖server.address")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	h, err := host.InitLocalHost(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer h.Close()

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           ws.NewServer(h, cfg.Server.Path, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("引擎已启动", zap.String("address", cfg.Server.Address), zap.String("path", cfg.Server.Path))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("正在关闭引擎")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
