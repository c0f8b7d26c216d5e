// Package ledger 把处理过的候选人与聊天用户写入Elasticsearch台账
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/LouYuanbo1/recruitagent/internal/domain/entity"
	"github.com/LouYuanbo1/recruitagent/internal/domain/model"
	"github.com/LouYuanbo1/recruitagent/internal/infra/embedding"
	"github.com/LouYuanbo1/recruitagent/internal/infra/persistence/es"
	"github.com/LouYuanbo1/recruitagent/internal/service/recruit"
	"go.uber.org/zap"
)

type Ledger struct {
	client   es.TypedEsClient[*model.GeekDoc]
	embedder embedding.Embedder
	timeout  time.Duration
	logger   *zap.Logger
}

// InitLedger 确保索引存在,embedder为nil时文档不带向量
func InitLedger(ctx context.Context, client es.TypedEsClient[*model.GeekDoc], embedder embedding.Embedder, logger *zap.Logger) (*Ledger, error) {
	if err := client.CreateIndexWithMapping(ctx); err != nil {
		return nil, fmt.Errorf("初始化台账索引失败: %w", err)
	}
	return &Ledger{client: client, embedder: embedder, timeout: 20 * time.Second, logger: logger}, nil
}

// Record 向量化后批量写入,向量化失败时仍写入文档
func (l *Ledger) Record(ctx context.Context, kind recruit.SessionKind, geeks ...entity.Geek) error {
	if len(geeks) == 0 {
		return nil
	}
	items := make([]*entity.Geek, len(geeks))
	for i := range geeks {
		items[i] = &geeks[i]
	}
	docs := toDocuments[*entity.Geek, *model.GeekDoc](items)
	for _, doc := range docs {
		doc.Kind = string(kind)
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	l.embedDocs(ctx, docs)
	if err := l.client.BulkIndexDocsWithID(ctx, docs); err != nil {
		return fmt.Errorf("写入台账失败: %w", err)
	}
	return nil
}

// Count 台账中的记录数
func (l *Ledger) Count(ctx context.Context) (int64, error) {
	return l.client.CountDocs(ctx)
}

func (l *Ledger) embedDocs(ctx context.Context, docs []*model.GeekDoc) {
	if l.embedder == nil {
		return
	}
	batch := max(l.embedder.BatchSize(), 1)
	for i := 0; i < len(docs); i += batch {
		end := min(i+batch, len(docs))
		texts := make([]string, 0, end-i)
		for _, doc := range docs[i:end] {
			texts = append(texts, doc.GetEmbeddingString())
		}
		vectors, err := l.embedder.Embed(ctx, texts)
		if err != nil {
			l.logger.Warn("向量化失败", zap.Int("from", i), zap.Int("to", end), zap.Error(err))
			continue
		}
		for j := range vectors {
			if i+j < end {
				docs[i+j].SetEmbedding(vectors[j])
			}
		}
	}
}

func toDocuments[C entity.Crawlable[D], D model.Document](items []C) []D {
	docs := make([]D, 0, len(items))
	for _, item := range items {
		docs = append(docs, item.ToDocument())
	}
	return docs
}
