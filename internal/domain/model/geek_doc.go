package model

import (
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v9/typedapi/types"
)

const (
	GeekIndex = "boss_geeks"
	// 与ollama嵌入模型(nomic-embed-text)的输出维度一致
	GeekEmbeddingDims = 768
)

// GeekDoc 台账中的一条处理记录
type GeekDoc struct {
	ID              string    `json:"id"`
	Kind            string    `json:"kind"`
	Name            string    `json:"name"`
	Content         string    `json:"content"`
	MatchedKeywords string    `json:"matched_keywords,omitempty"`
	Status          string    `json:"status"`
	MessageCount    int       `json:"message_count,omitempty"`
	ProcessedAt     time.Time `json:"processed_at"`
	Embedding       []float32 `json:"embedding,omitempty"`
}

func (d *GeekDoc) GetID() string {
	return d.ID
}

func (d *GeekDoc) GetIndex() string {
	return GeekIndex
}

func (d *GeekDoc) GetTypeMapping() *types.TypeMapping {
	embedding := types.NewDenseVectorProperty()
	dims := GeekEmbeddingDims
	embedding.Dims = &dims
	return &types.TypeMapping{
		Properties: map[string]types.Property{
			"id":               types.NewKeywordProperty(),
			"kind":             types.NewKeywordProperty(),
			"name":             types.NewKeywordProperty(),
			"content":          types.NewTextProperty(),
			"matched_keywords": types.NewKeywordProperty(),
			"status":           types.NewKeywordProperty(),
			"message_count":    types.NewIntegerNumberProperty(),
			"processed_at":     types.NewDateProperty(),
			"embedding":        embedding,
		},
	}
}

// GetEmbeddingString 用于生成向量的文本
func (d *GeekDoc) GetEmbeddingString() string {
	var b strings.Builder
	b.WriteString(d.Name)
	b.WriteString("\n")
	b.WriteString(d.Content)
	if d.MatchedKeywords != "" {
		b.WriteString("\n关键字: ")
		b.WriteString(d.MatchedKeywords)
	}
	return b.String()
}

func (d *GeekDoc) SetEmbedding(embedding []float32) {
	d.Embedding = embedding
}

func (d *GeekDoc) GetEmbedding() []float32 {
	return d.Embedding
}
