// Package agent 基于台账的招聘助手对话
package agent

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/LouYuanbo1/recruitagent/internal/domain/model"
	"github.com/LouYuanbo1/recruitagent/internal/infra/embedding"
	"github.com/LouYuanbo1/recruitagent/internal/infra/llm"
	"github.com/LouYuanbo1/recruitagent/internal/infra/persistence/es"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"
)

var ErrNoResponse = errors.New("模型没有给出回复")

// State 图运行时的局部状态
type State[D model.Document] struct {
	Client        es.TypedEsClient[D]
	Embedder      embedding.Embedder
	K             int
	NumCandidates int
}

type AgentService interface {
	// Stream 把回复逐段写入w
	Stream(ctx context.Context, query string, w io.Writer) error
	Invoke(ctx context.Context, query string) (string, error)
}

type agentService struct {
	graph  compose.Runnable[map[string]any, map[string]any]
	logger *zap.Logger
}

func InitAgentService[D model.Document](
	ctx context.Context,
	llm llm.LLM,
	client es.TypedEsClient[D],
	embedder embedding.Embedder,
	param *Param,
	logger *zap.Logger,
) (AgentService, error) {
	graph, err := initAgentGraph(ctx, llm, client, embedder, param)
	if err != nil {
		return nil, fmt.Errorf("创建流程图失败: %w", err)
	}
	return &agentService{graph: graph, logger: logger}, nil
}

// initAgentGraph START -> intentDetection -> (retriever -> searchModePrompt | chatModePrompt) -> llm -> END
func initAgentGraph[D model.Document](
	ctx context.Context,
	llm llm.LLM,
	client es.TypedEsClient[D],
	embedder embedding.Embedder,
	param *Param,
) (compose.Runnable[map[string]any, map[string]any], error) {
	genState := func(ctx context.Context) *State[D] {
		return &State[D]{
			Client:        client,
			Embedder:      embedder,
			K:             param.K,
			NumCandidates: param.NumCandidates,
		}
	}
	graph := compose.NewGraph[map[string]any, map[string]any](compose.WithGenLocalState(genState))

	if err := graph.AddLambdaNode(nodeIntent, IntentDetection()); err != nil {
		return nil, err
	}
	if err := graph.AddLambdaNode(nodeRetriever, Retriever[D]()); err != nil {
		return nil, err
	}
	if err := graph.AddChatTemplateNode(nodeSearch, param.Prompt[PromptSearchMode]); err != nil {
		return nil, err
	}
	if err := graph.AddChatTemplateNode(nodeChat, param.Prompt[PromptChatMode]); err != nil {
		return nil, err
	}
	if err := graph.AddChatModelNode(nodeLLM, llm.Model(), compose.WithOutputKey(keyFinalResponse)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge(compose.START, nodeIntent); err != nil {
		return nil, err
	}
	err := graph.AddBranch(nodeIntent, compose.NewGraphBranch(BranchCondition, map[string]bool{
		nodeRetriever: true,
		nodeChat:      true,
	}))
	if err != nil {
		return nil, err
	}
	for _, edge := range [][2]string{
		{nodeRetriever, nodeSearch},
		{nodeSearch, nodeLLM},
		{nodeChat, nodeLLM},
		{nodeLLM, compose.END},
	} {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, err
		}
	}
	return graph.Compile(ctx)
}

func (as *agentService) Invoke(ctx context.Context, query string) (string, error) {
	result, err := as.graph.Invoke(ctx, map[string]any{keyQuery: query})
	if err != nil {
		return "", fmt.Errorf("执行流程图失败: %w", err)
	}
	msg, ok := result[keyFinalResponse].(*schema.Message)
	if !ok || msg == nil {
		return "", ErrNoResponse
	}
	return msg.Content, nil
}

func (as *agentService) Stream(ctx context.Context, query string, w io.Writer) error {
	reader, err := as.graph.Stream(ctx, map[string]any{keyQuery: query})
	if err != nil {
		return fmt.Errorf("执行流程图失败: %w", err)
	}
	defer reader.Close()
	for {
		chunk, err := reader.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			as.logger.Warn("接收回复失败", zap.Error(err))
			return err
		}
		if msg, ok := chunk[keyFinalResponse].(*schema.Message); ok {
			if _, err := io.WriteString(w, msg.Content); err != nil {
				return err
			}
		}
	}
	_, err = io.WriteString(w, "\n")
	return err
}
