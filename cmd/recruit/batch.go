package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/LouYuanbo1/recruitagent/internal/domain/entity"
	"github.com/LouYuanbo1/recruitagent/internal/service/controller"
	"github.com/LouYuanbo1/recruitagent/internal/service/recruit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type batchFunc func(c *controller.Controller, ctx context.Context, keywords string, onUpdate func([]entity.Geek)) (controller.RunReport, error)

type batchFlags struct {
	keywords string
	asJSON   bool
}

func (f *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.keywords, "keywords", "k", "", "筛选关键字,逗号分隔,默认使用配置中的boss.filter_keywords")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "以JSON输出结果")
}

func newGreetCmd(opts *options) *cobra.Command {
	flags := &batchFlags{}
	cmd := &cobra.Command{
		Use:   "greet",
		Short: "在推荐页按关键字筛选候选人并逐个打招呼",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, opts, flags, (*controller.Controller).RunGreeting)
		},
	}
	flags.register(cmd)
	return cmd
}

func newResumesCmd(opts *options) *cobra.Command {
	flags := &batchFlags{}
	cmd := &cobra.Command{
		Use:   "resumes",
		Short: "在沟通页处理有新消息的用户: 同意或索要简历并下载",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, opts, flags, (*controller.Controller).RunResumeDownload)
		},
	}
	flags.register(cmd)
	return cmd
}

func runBatch(cmd *cobra.Command, opts *options, flags *batchFlags, run batchFunc) error {
	a, err := opts.load()
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	keywords := flags.keywords
	if keywords == "" {
		keywords = a.cfg.Boss.FilterKeywords
	}

	ctx := cmd.Context()
	runtime, closeRuntime, err := a.openRuntime(ctx, opts.remote)
	if err != nil {
		return err
	}
	defer closeRuntime()

	var recorder controller.Recorder
	l, err := a.openLedger(ctx)
	if err != nil {
		a.logger.Warn("台账不可用,本次不记录", zap.Error(err))
	} else if l != nil {
		recorder = l
	}

	ctrl := controller.InitController(runtime, a.cfg, recorder, recruit.InitRandomPacer(), a.logger)
	ctx, release := withInterrupt(ctx, func() {
		a.logger.Info("收到中断信号,处理完当前实体后停止,再次中断立即退出")
		ctrl.Stop()
	})
	defer release()

	report, err := run(ctrl, ctx, keywords, progress(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	return writeReport(cmd.OutOrStdout(), report, flags.asJSON)
}

// progress 每处理完一个实体输出一行进度
func progress(w io.Writer) func([]entity.Geek) {
	return func(geeks []entity.Geek) {
		done := 0
		for _, g := range geeks {
			switch g.Status {
			case entity.StatusGreeted, entity.StatusDisabled, entity.StatusFailed,
				entity.StatusResumeDownloaded, entity.StatusDownloadFailed:
				done++
			}
		}
		fmt.Fprintf(w, "进度 %d/%d\n", done, len(geeks))
	}
}

func writeReport(w io.Writer, report controller.RunReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	if report.Outcome == recruit.NoScrollRoot {
		fmt.Fprintln(w, "页面中没有找到列表,未发现任何实体")
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "序号\t姓名\t状态\t匹配关键字")
	for i, g := range report.Geeks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, g.Name, g.Status, g.MatchedKeywords)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	suffix := ""
	if report.Stopped {
		suffix = ",已提前停止"
	}
	_, err := fmt.Fprintf(w, "共%d个,已处理%d个,成功%d个,失败%d个%s\n",
		len(report.Geeks), report.Processed, report.Succeeded, report.Failed, suffix)
	return err
}
