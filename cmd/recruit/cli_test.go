package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/LouYuanbo1/recruitagent/internal/domain/entity"
	"github.com/LouYuanbo1/recruitagent/internal/service/controller"
	"github.com/LouYuanbo1/recruitagent/internal/service/evaluate"
	"github.com/LouYuanbo1/recruitagent/internal/service/recruit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestEmbeddedConfigParses(t *testing.T) {
	a, err := (&options{}).load()
	require.NoError(t, err)
	assert.Equal(t, "rod", a.cfg.Driver)
	assert.Equal(t, "Java", a.cfg.Boss.FilterKeywords)
	assert.Empty(t, a.cfg.Elasticsearch.Address)
}

func TestEvaluateRequiresFile(t *testing.T) {
	_, _, err := executeCLI(t, "evaluate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestChatRequiresLedger(t *testing.T) {
	_, _, err := executeCLI(t, "chat", "你好")
	assert.ErrorIs(t, err, errNoLedger)
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := executeCLI(t, "greet", "--config", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "读取配置文件失败")
}

func TestConfigFileSelectsDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"driver": "selenium"}`), 0o644))
	_, _, err := executeCLI(t, "resumes", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selenium")
}

func TestWriteReport(t *testing.T) {
	report := controller.RunReport{
		TabID:   "T1",
		Session: 3,
		Outcome: recruit.Collected,
		Geeks: []entity.Geek{
			{Name: "张三", Status: entity.StatusGreeted, MatchedKeywords: "java"},
			{Name: "李四", Status: entity.StatusPending, MatchedKeywords: "后端"},
		},
		Processed: 1,
		Succeeded: 1,
		Stopped:   true,
	}

	var text bytes.Buffer
	require.NoError(t, writeReport(&text, report, false))
	assert.Contains(t, text.String(), "张三")
	assert.Contains(t, text.String(), "greeted")
	assert.Contains(t, text.String(), "共2个,已处理1个,成功1个,失败0个,已提前停止")

	var js bytes.Buffer
	require.NoError(t, writeReport(&js, report, true))
	var decoded controller.RunReport
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, report, decoded)
}

func TestWriteReportNoScrollRoot(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeReport(&out, controller.RunReport{Outcome: recruit.NoScrollRoot}, false))
	assert.Contains(t, out.String(), "没有找到列表")
}

func TestProgress(t *testing.T) {
	var out bytes.Buffer
	progress(&out)([]entity.Geek{
		{Status: entity.StatusGreeted},
		{Status: entity.StatusFailed},
		{Status: entity.StatusPending},
	})
	assert.Equal(t, "进度 2/3\n", out.String())
}

func TestWriteEvaluations(t *testing.T) {
	results := []evaluateResult{
		{File: "a.txt", Target: "out/符合要求/a.txt", Evaluation: &evaluate.Evaluation{Result: true, Name: "张三", Summary: "匹配"}},
		{File: "b.txt", Error: "读取简历失败"},
	}
	var out bytes.Buffer
	require.NoError(t, writeEvaluations(&out, results, false))
	assert.Contains(t, out.String(), "a.txt: 张三 符合要求 -> out/符合要求/a.txt")
	assert.Contains(t, out.String(), "b.txt: 评估失败: 读取简历失败")
}
