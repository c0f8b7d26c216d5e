package es

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/LouYuanbo1/recruitagent/internal/config"
	"github.com/LouYuanbo1/recruitagent/internal/domain/model"
	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esutil"
	"github.com/elastic/go-elasticsearch/v9/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v9/typedapi/types"
	"go.uber.org/zap"
)

const embeddingField = "embedding"

type typedEsClient[D model.Document] struct {
	client *elasticsearch.TypedClient
	// 只用于读取索引名与映射
	schemaDoc D
	logger    *zap.Logger
}

func InitTypedEsClient[D model.Document](cfg *config.Config, logger *zap.Logger) (TypedEsClient[D], error) {
	typedClient, err := elasticsearch.NewTypedClient(elasticsearch.Config{
		Username:  cfg.Elasticsearch.Username,
		Password:  cfg.Elasticsearch.Password,
		Addresses: []string{cfg.Elasticsearch.Address},
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 30 * time.Second,
			IdleConnTimeout:       90 * time.Second,
			// 跳过TLS验证(仅在开发环境中使用)
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("初始化Elasticsearch客户端失败: %w", err)
	}
	return &typedEsClient[D]{client: typedClient, logger: logger}, nil
}

func (tec *typedEsClient[D]) CreateIndexWithMapping(ctx context.Context) error {
	index := tec.schemaDoc.GetIndex()
	exists, err := tec.client.Indices.Exists(index).Do(ctx)
	if err != nil {
		return fmt.Errorf("检查索引是否存在失败: %w", err)
	}
	if exists {
		tec.logger.Debug("索引已存在,跳过创建", zap.String("index", index))
		return nil
	}
	req := tec.client.Indices.Create(index)
	if mapping := tec.schemaDoc.GetTypeMapping(); mapping != nil {
		req = req.Mappings(mapping)
	}
	if _, err := req.Do(ctx); err != nil {
		return fmt.Errorf("创建索引失败: %w", err)
	}
	tec.logger.Info("已创建索引", zap.String("index", index))
	return nil
}

func (tec *typedEsClient[D]) BulkIndexDocsWithID(ctx context.Context, docs []D) error {
	if len(docs) == 0 {
		return nil
	}
	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         tec.schemaDoc.GetIndex(),
		Client:        tec.client,
		NumWorkers:    2,
		FlushBytes:    5 * 1024 * 1024,
		FlushInterval: 30 * time.Second,
		OnError: func(ctx context.Context, err error) {
			tec.logger.Warn("批量索引出错", zap.Error(err))
		},
	})
	if err != nil {
		return fmt.Errorf("创建批量索引器失败: %w", err)
	}

	for _, doc := range docs {
		data, err := json.Marshal(doc)
		if err != nil {
			tec.logger.Warn("序列化文档失败", zap.String("id", doc.GetID()), zap.Error(err))
			continue
		}
		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.GetID(),
			Body:       bytes.NewReader(data),
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				reason := res.Error.Reason
				if err != nil {
					reason = err.Error()
				}
				tec.logger.Warn("索引文档失败", zap.String("id", item.DocumentID), zap.String("reason", reason))
			},
		})
		if err != nil {
			tec.logger.Warn("添加文档到批量索引器失败", zap.String("id", doc.GetID()), zap.Error(err))
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("关闭批量索引器失败: %w", err)
	}
	stats := bi.Stats()
	tec.logger.Debug("批量索引完成", zap.Uint64("indexed", stats.NumIndexed), zap.Uint64("failed", stats.NumFailed))
	if stats.NumFailed > 0 {
		return fmt.Errorf("%d个文档索引失败", stats.NumFailed)
	}
	return nil
}

func (tec *typedEsClient[D]) CountDocs(ctx context.Context) (int64, error) {
	resp, err := tec.client.Count().Index(tec.schemaDoc.GetIndex()).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("统计文档数量失败: %w", err)
	}
	return resp.Count, nil
}

func (tec *typedEsClient[D]) KnnSearch(ctx context.Context, vector []float32, k, numCandidates int) ([]D, error) {
	resp, err := tec.client.Search().
		Index(tec.schemaDoc.GetIndex()).
		Request(&search.Request{
			Knn: []types.KnnSearch{
				{
					Field:         embeddingField,
					QueryVector:   vector,
					K:             &k,
					NumCandidates: &numCandidates,
				},
			},
		}).
		Size(k).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("向量检索失败: %w", err)
	}

	results := make([]D, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var doc D
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			tec.logger.Warn("解析检索结果失败", zap.Error(err))
			continue
		}
		doc.SetEmbedding(nil)
		results = append(results, doc)
	}
	return results, nil
}
