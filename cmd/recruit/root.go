package main

import (
	_ "embed"

	"github.com/LouYuanbo1/recruitagent/internal/config"
	"github.com/LouYuanbo1/recruitagent/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// 内置的默认配置,--config可以指定其他文件
//
//go:embed appconfig/appconfig.json
var appConfig []byte

type options struct {
	configPath string
	remote     string
	verbose    bool
}

type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func (o *options) load() (*app, error) {
	cfg, err := config.ParseConfigFile(o.configPath, appConfig)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(o.verbose)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger}, nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:          "recruit",
		Short:        "BOSS直聘招聘助手: 批量打招呼、下载简历、评估简历",
		SilenceUsage: true,
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "配置文件路径,默认使用内置配置")
	flags.StringVar(&opts.remote, "remote", "", "引擎的websocket地址(如 ws://127.0.0.1:8686/engine),为空时在本进程启动浏览器")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "输出调试日志")

	rootCmd.AddCommand(
		newGreetCmd(opts),
		newResumesCmd(opts),
		newEvaluateCmd(opts),
		newChatCmd(opts),
	)
	return rootCmd
}
