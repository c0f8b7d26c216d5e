// Package ws 通过websocket暴露标签页运行时,使控制端可以在另一个进程中驱动引擎
package ws

import (
	"context"

	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/types"
	"github.com/LouYuanbo1/recruitagent/internal/protocol"
)

type Op string

const (
	OpSendMessage Op = "sendMessage"
	OpQueryTabs   Op = "queryTabs"
	OpCreateTab   Op = "createTab"
	OpUpdateTab   Op = "updateTab"
)

// Envelope 客户端发往服务端的一帧
type Envelope struct {
	ID      uint64            `json:"id"`
	Op      Op                `json:"op"`
	TabID   string            `json:"tabId,omitempty"`
	URL     string            `json:"url,omitempty"`
	Pattern string            `json:"pattern,omitempty"`
	Active  bool              `json:"active,omitempty"`
	Message *protocol.Request `json:"message,omitempty"`
}

// Reply 服务端对Envelope的应答,ID与请求相同
type Reply struct {
	ID       uint64             `json:"id"`
	Tabs     []types.Tab        `json:"tabs,omitempty"`
	Tab      *types.Tab         `json:"tab,omitempty"`
	Response *protocol.Response `json:"response,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// Backend 服务端背后的标签页运行时
type Backend interface {
	QueryTabs(ctx context.Context, pattern string) ([]types.Tab, error)
	CreateTab(ctx context.Context, url string) (types.Tab, error)
	UpdateTab(ctx context.Context, tabID, url string, active bool) (types.Tab, error)
	protocol.Messenger
}
