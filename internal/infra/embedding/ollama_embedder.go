package embedding

import (
	"context"
	"fmt"

	"github.com/LouYuanbo1/recruitagent/internal/config"
	"github.com/cloudwego/eino-ext/components/embedding/ollama"
)

type ollamaEmbedder struct {
	model     *ollama.Embedder
	batchSize int
}

// InitEmbedder 初始化ollama嵌入模型
func InitEmbedder(ctx context.Context, cfg *config.Config) (Embedder, error) {
	model, err := ollama.NewEmbedder(ctx, &ollama.EmbeddingConfig{
		Model:   cfg.Embedder.Model,
		BaseURL: fmt.Sprintf("%s:%d", cfg.Embedder.Host, cfg.Embedder.Port),
	})
	if err != nil {
		return nil, fmt.Errorf("初始化嵌入模型失败: %w", err)
	}
	batchSize := cfg.Embedder.BatchSize
	if batchSize <= 0 {
		batchSize = 1
	}
	return &ollamaEmbedder{model: model, batchSize: batchSize}, nil
}

func (e *ollamaEmbedder) BatchSize() int {
	return e.batchSize
}

// Embed EmbedStrings返回float64向量,这里转换为索引使用的float32
func (e *ollamaEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	vectors, err := e.model.EmbedStrings(ctx, texts)
	if err != nil {
		return nil, err
	}
	out := make([][]float32, 0, len(vectors))
	for _, v := range vectors {
		f32 := make([]float32, len(v))
		for i, f := range v {
			f32[i] = float32(f)
		}
		out = append(out, f32)
	}
	return out, nil
}
