package es

import (
	"context"

	"github.com/LouYuanbo1/recruitagent/internal/domain/model"
)

// TypedEsClient 按文档类型D操作单个索引,索引名与映射由D提供
type TypedEsClient[D model.Document] interface {
	CreateIndexWithMapping(ctx context.Context) error
	BulkIndexDocsWithID(ctx context.Context, docs []D) error
	CountDocs(ctx context.Context) (int64, error)
	// KnnSearch 在向量字段上做近似kNN检索,返回的文档不含向量
	KnnSearch(ctx context.Context, vector []float32, k, numCandidates int) ([]D, error)
}
