package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/LouYuanbo1/recruitagent/internal/domain/model"
	"github.com/LouYuanbo1/recruitagent/internal/infra/embedding"
	"github.com/LouYuanbo1/recruitagent/internal/infra/llm"
	"github.com/LouYuanbo1/recruitagent/internal/infra/persistence/es"
	"github.com/LouYuanbo1/recruitagent/internal/service/agent"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNoLedger = errors.New("未配置elasticsearch.address,对话助手需要台账")

func newChatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [问题]",
		Short: "招聘助手对话,以\"查询模式\"或\"搜索模式\"开头时检索台账中的候选人",
		Long:  "不带参数时进入交互模式,输入exit或EOF退出。",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()
			if a.cfg.Elasticsearch.Address == "" {
				return errNoLedger
			}

			ctx := cmd.Context()
			client, err := es.InitTypedEsClient[*model.GeekDoc](a.cfg, a.logger)
			if err != nil {
				return err
			}
			if count, err := client.CountDocs(ctx); err == nil {
				a.logger.Info("台账记录数", zap.Int64("count", count))
			}
			embedder, err := embedding.InitEmbedder(ctx, a.cfg)
			if err != nil {
				return err
			}
			chatModel, err := llm.InitLLM(ctx, a.cfg)
			if err != nil {
				return err
			}
			svc, err := agent.InitAgentService(ctx, chatModel, client, embedder, agent.DefaultParam(), a.logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				return svc.Stream(ctx, strings.Join(args, " "), out)
			}
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				query := strings.TrimSpace(scanner.Text())
				if query == "" {
					continue
				}
				if query == "exit" {
					return nil
				}
				if err := svc.Stream(ctx, query, out); err != nil {
					a.logger.Warn("对话失败", zap.Error(err))
				}
			}
		},
	}
}
