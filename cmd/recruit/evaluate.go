package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/LouYuanbo1/recruitagent/internal/infra/llm"
	"github.com/LouYuanbo1/recruitagent/internal/service/evaluate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type evaluateFlags struct {
	outDir string
	asJSON bool
}

type evaluateResult struct {
	File       string               `json:"file"`
	Target     string               `json:"target,omitempty"`
	Evaluation *evaluate.Evaluation `json:"evaluation,omitempty"`
	Error      string               `json:"error,omitempty"`
}

func newEvaluateCmd(opts *options) *cobra.Command {
	flags := &evaluateFlags{}
	cmd := &cobra.Command{
		Use:   "evaluate <简历文件>...",
		Short: "使用对话模型评估简历,并复制到 符合要求/不符合要求 目录",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			m, err := llm.InitAPILLM(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			evaluator := evaluate.InitEvaluator(m.Model(), a.logger)
			settings := evaluate.SettingsFromConfig(a.cfg)

			results := make([]evaluateResult, 0, len(args))
			failed := 0
			for _, path := range args {
				res := evaluateResult{File: path}
				if err := evaluateOne(cmd, evaluator, settings, flags.outDir, &res); err != nil {
					a.logger.Warn("评估简历失败", zap.String("file", path), zap.Error(err))
					res.Error = err.Error()
					failed++
				}
				results = append(results, res)
			}
			if err := writeEvaluations(cmd.OutOrStdout(), results, flags.asJSON); err != nil {
				return err
			}
			if failed == len(args) {
				return fmt.Errorf("%d份简历全部评估失败", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&flags.outDir, "out", "o", ".", "分类输出目录")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "以JSON输出结果")
	return cmd
}

func evaluateOne(cmd *cobra.Command, e *evaluate.Evaluator, settings evaluate.APISettings, outDir string, res *evaluateResult) error {
	resume, err := evaluate.LoadResume(res.File)
	if err != nil {
		return err
	}
	ev, err := e.Evaluate(cmd.Context(), resume, settings)
	if err != nil {
		return err
	}
	res.Evaluation = ev
	res.Target, err = evaluate.Sort(res.File, outDir, ev)
	return err
}

func writeEvaluations(w io.Writer, results []evaluateResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(w, "%s: 评估失败: %s\n", r.File, r.Error)
			continue
		}
		verdict := evaluate.FailedDir
		if r.Evaluation.Result {
			verdict = evaluate.PassedDir
		}
		fmt.Fprintf(w, "%s: %s %s -> %s\n  %s\n", r.File, r.Evaluation.Name, verdict, r.Target, r.Evaluation.Summary)
	}
	return nil
}
