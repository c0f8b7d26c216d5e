package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/LouYuanbo1/recruitagent/internal/domain/model"
	"github.com/cloudwego/eino/compose"
)

const (
	nodeIntent    = "intentDetection"
	nodeRetriever = "retriever"
	nodeSearch    = "searchModePrompt"
	nodeChat      = "chatModePrompt"
	nodeLLM       = "llm"

	keyQuery         = "query"
	keyIsSearchMode  = "isSearchMode"
	keyReferenceDocs = "referenceDocs"
	keyFinalResponse = "finalResponse"
)

// 以这些前缀开头的问题先从台账检索相似记录
var searchPrefixes = []string{"查询模式", "搜索模式"}

func isSearchMode(query string) bool {
	for _, p := range searchPrefixes {
		if strings.HasPrefix(query, p) {
			return true
		}
	}
	return false
}

// IntentDetection 根据前缀判断是否进入检索
func IntentDetection() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state map[string]any) (map[string]any, error) {
		query, ok := state[keyQuery].(string)
		if !ok {
			return nil, errors.New("state中缺少query")
		}
		state[keyIsSearchMode] = isSearchMode(query)
		return state, nil
	})
}

func BranchCondition(ctx context.Context, state map[string]any) (string, error) {
	searchMode, ok := state[keyIsSearchMode].(bool)
	if !ok {
		return "", errors.New("state中缺少isSearchMode")
	}
	if searchMode {
		return nodeRetriever, nil
	}
	return nodeChat, nil
}

// Retriever 对去掉前缀的问题做向量化,在台账中做kNN检索
func Retriever[D model.Document]() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state map[string]any) (map[string]any, error) {
		query, ok := state[keyQuery].(string)
		if !ok {
			return nil, errors.New("state中缺少query")
		}
		for _, p := range searchPrefixes {
			query = strings.TrimPrefix(query, p)
		}
		query = strings.TrimLeft(query, " :：,，")

		err := compose.ProcessState(ctx, func(ctx context.Context, s *State[D]) error {
			vectors, err := s.Embedder.Embed(ctx, []string{query})
			if err != nil {
				return fmt.Errorf("问题向量化失败: %w", err)
			}
			if len(vectors) == 0 {
				return errors.New("嵌入模型没有返回向量")
			}
			docs, err := s.Client.KnnSearch(ctx, vectors[0], s.K, s.NumCandidates)
			if err != nil {
				return err
			}
			var b strings.Builder
			b.WriteString("参考文档(JSON格式):\n\n")
			for i, doc := range docs {
				data, err := json.Marshal(doc)
				if err != nil {
					continue
				}
				fmt.Fprintf(&b, "文档%d:\n%s\n\n", i+1, data)
			}
			state[keyReferenceDocs] = b.String()
			return nil
		})
		if err != nil {
			return nil, err
		}
		return state, nil
	})
}
