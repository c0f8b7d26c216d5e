package evaluate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedModel 按顺序返回预设的回复
type scriptedModel struct {
	replies []string
	err     error
	calls   [][]*schema.Message
	opts    []*model.Options
}

func (m *scriptedModel) Generate(_ context.Context, msgs []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.calls = append(m.calls, msgs)
	m.opts = append(m.opts, model.GetCommonOptions(nil, opts...))
	if m.err != nil {
		return nil, m.err
	}
	if len(m.replies) == 0 {
		return schema.AssistantMessage("", nil), nil
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return schema.AssistantMessage(reply, nil), nil
}

func (m *scriptedModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not supported")
}

const parsedReply = "```json\n{\"name\":\"李四\",\"age\":27,\"schools\":[\"浙江大学\"],\"content\":\"# 李四\\n精通Java\"}\n```"

const evalReply = `{"result":true,"age":"符合,27岁","experience":"符合,3年","education":"符合,硕士","school":"符合,985","stability":"符合","techSkills":"符合,精通Java","industryExp":"电商","isJavaDeveloper":true,"summary":"整体匹配"}`

func TestEvaluate(t *testing.T) {
	m := &scriptedModel{replies: []string{parsedReply, evalReply}}
	e := InitEvaluator(m, zap.NewNop())

	ev, err := e.Evaluate(context.Background(), Resume{FileName: "lisi.txt", Content: "李四 简历"}, APISettings{Model: "qwen", MaxTokens: 2000, Temperature: 0.3})
	require.NoError(t, err)

	assert.True(t, ev.Result)
	assert.Equal(t, "李四", ev.Name)
	assert.True(t, ev.IsJavaDeveloper)
	assert.Equal(t, "整体匹配", ev.Summary)

	require.Len(t, m.calls, 2)
	assert.Contains(t, m.calls[0][1].Content, "李四 简历")
	assert.Contains(t, m.calls[1][1].Content, "精通Java", "第二步使用整理后的内容")
	opts := m.opts[1]
	require.NotNil(t, opts.Model)
	assert.Equal(t, "qwen", *opts.Model)
	require.NotNil(t, opts.MaxTokens)
	assert.Equal(t, 2000, *opts.MaxTokens)
	require.NotNil(t, opts.Temperature)
	assert.InDelta(t, 0.3, *opts.Temperature, 1e-6)
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name    string
		model   *scriptedModel
		content string
		wantErr error
	}{
		{name: "空简历", model: &scriptedModel{}, content: "  ", wantErr: ErrEmptyResume},
		{name: "空回复", model: &scriptedModel{replies: []string{""}}, content: "x", wantErr: ErrEmptyResponse},
		{name: "非JSON", model: &scriptedModel{replies: []string{"无法处理"}}, content: "x", wantErr: ErrBadResponse},
		{name: "评估步骤JSON损坏", model: &scriptedModel{replies: []string{parsedReply, `{"result": tru}`}}, content: "x", wantErr: ErrBadResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := InitEvaluator(tt.model, zap.NewNop())
			_, err := e.Evaluate(context.Background(), Resume{Content: tt.content}, APISettings{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEvaluateModelError(t *testing.T) {
	boom := errors.New("connection refused")
	e := InitEvaluator(&scriptedModel{err: boom}, zap.NewNop())
	_, err := e.Evaluate(context.Background(), Resume{Content: "x"}, APISettings{})
	assert.ErrorIs(t, err, boom)
}

func TestSort(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "zhangsan.txt")
	require.NoError(t, os.WriteFile(src, []byte("张三"), 0o644))

	resume, err := LoadResume(src)
	require.NoError(t, err)
	assert.Equal(t, "zhangsan.txt", resume.FileName)

	out := filepath.Join(dir, "out")
	tests := []struct {
		result bool
		want   string
	}{
		{true, filepath.Join(out, PassedDir, "zhangsan.txt")},
		{false, filepath.Join(out, FailedDir, "zhangsan.txt")},
	}
	for _, tt := range tests {
		dst, err := Sort(src, out, &Evaluation{Result: tt.result})
		require.NoError(t, err)
		assert.Equal(t, tt.want, dst)
		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "张三", string(data))
	}
	assert.FileExists(t, src)
}
