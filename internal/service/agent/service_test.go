package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/LouYuanbo1/recruitagent/internal/domain/model"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type echoModel struct {
	seen []*schema.Message
}

func (m *echoModel) Generate(_ context.Context, msgs []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	m.seen = msgs
	return schema.AssistantMessage("好的", nil), nil
}

func (m *echoModel) Stream(context.Context, []*schema.Message, ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not supported")
}

type fakeLLM struct{ m *echoModel }

func (f fakeLLM) Model() einomodel.BaseChatModel { return f.m }

type fakeEmbedder struct{ texts []string }

func (f *fakeEmbedder) BatchSize() int { return 1 }

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.texts = append(f.texts, texts...)
	return [][]float32{{0.1, 0.2}}, nil
}

type fakeClient struct {
	k, candidates int
	docs          []*model.GeekDoc
}

func (f *fakeClient) CreateIndexWithMapping(context.Context) error { return nil }

func (f *fakeClient) BulkIndexDocsWithID(context.Context, []*model.GeekDoc) error { return nil }

func (f *fakeClient) CountDocs(context.Context) (int64, error) { return int64(len(f.docs)), nil }

func (f *fakeClient) KnnSearch(_ context.Context, _ []float32, k, numCandidates int) ([]*model.GeekDoc, error) {
	f.k, f.candidates = k, numCandidates
	return f.docs, nil
}

func TestIsSearchMode(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"查询模式 有哪些Java候选人", true},
		{"搜索模式:张三", true},
		{"帮我写一段打招呼的话", false},
		{"请用查询模式", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isSearchMode(tt.query), tt.query)
	}
}

func TestBranchCondition(t *testing.T) {
	next, err := BranchCondition(context.Background(), map[string]any{keyIsSearchMode: true})
	require.NoError(t, err)
	assert.Equal(t, nodeRetriever, next)

	next, err = BranchCondition(context.Background(), map[string]any{keyIsSearchMode: false})
	require.NoError(t, err)
	assert.Equal(t, nodeChat, next)

	_, err = BranchCondition(context.Background(), map[string]any{})
	assert.Error(t, err)
}

func TestInvoke(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		wantEmbedded  []string
		wantInContext string
	}{
		{
			name:          "搜索模式检索台账",
			query:         "搜索模式:会Java的候选人",
			wantEmbedded:  []string{"会Java的候选人"},
			wantInContext: "张三",
		},
		{
			name:  "普通对话不检索",
			query: "你好",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &echoModel{}
			emb := &fakeEmbedder{}
			client := &fakeClient{docs: []*model.GeekDoc{{ID: "1", Kind: "candidates", Name: "张三", Content: "Java developer", Status: "greeted"}}}

			svc, err := InitAgentService[*model.GeekDoc](context.Background(), fakeLLM{m}, client, emb, DefaultParam(), zap.NewNop())
			require.NoError(t, err)

			answer, err := svc.Invoke(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, "好的", answer)
			assert.Equal(t, tt.wantEmbedded, emb.texts)

			require.Len(t, m.seen, 2)
			assert.Equal(t, tt.query, m.seen[1].Content)
			if tt.wantInContext != "" {
				assert.Contains(t, m.seen[0].Content, tt.wantInContext)
				assert.Equal(t, 5, client.k)
				assert.Equal(t, 100, client.candidates)
			}
		})
	}
}
