package ws

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/types"
	"github.com/LouYuanbo1/recruitagent/internal/protocol"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"
)

var (
	// ErrRemote 服务端处理请求失败
	ErrRemote = errors.New("远程运行时返回错误")
	ErrClosed = errors.New("连接已关闭")
)

// Client 远程标签页运行时,方法集与host.Host相同
type Client struct {
	conn   *websocket.Conn
	logger *zap.Logger
	nextID atomic.Uint64

	mu      sync.Mutex
	pending map[uint64]chan Reply
	done    chan struct{}
	err     error
}

func Dial(ctx context.Context, url string, logger *zap.Logger) (*Client, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("连接引擎失败: %w", err)
	}
	conn.SetReadLimit(readLimit)
	c := &Client{
		conn:    conn,
		logger:  logger,
		pending: make(map[uint64]chan Reply),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	logger.Info("已连接引擎", zap.String("url", url))
	return c, nil
}

func (c *Client) readLoop() {
	defer close(c.done)
	for {
		var reply Reply
		if err := wsjson.Read(context.Background(), c.conn, &reply); err != nil {
			c.mu.Lock()
			c.err = err
			c.mu.Unlock()
			return
		}
		c.mu.Lock()
		ch, ok := c.pending[reply.ID]
		delete(c.pending, reply.ID)
		c.mu.Unlock()
		if !ok {
			c.logger.Warn("收到未知应答", zap.Uint64("id", reply.ID))
			continue
		}
		ch <- reply
	}
}

func (c *Client) call(ctx context.Context, env Envelope) (Reply, error) {
	env.ID = c.nextID.Add(1)
	ch := make(chan Reply, 1)

	c.mu.Lock()
	if c.err != nil {
		c.mu.Unlock()
		return Reply{}, fmt.Errorf("%w: %v", ErrClosed, c.err)
	}
	c.pending[env.ID] = ch
	c.mu.Unlock()

	forget := func() {
		c.mu.Lock()
		delete(c.pending, env.ID)
		c.mu.Unlock()
	}
	if err := wsjson.Write(ctx, c.conn, env); err != nil {
		forget()
		return Reply{}, fmt.Errorf("发送请求失败: %w", err)
	}

	select {
	case reply := <-ch:
		if reply.Error != "" {
			return reply, fmt.Errorf("%w: %s", ErrRemote, reply.Error)
		}
		return reply, nil
	case <-c.done:
		return Reply{}, ErrClosed
	case <-ctx.Done():
		forget()
		return Reply{}, ctx.Err()
	}
}

func (c *Client) QueryTabs(ctx context.Context, pattern string) ([]types.Tab, error) {
	reply, err := c.call(ctx, Envelope{Op: OpQueryTabs, Pattern: pattern})
	if err != nil {
		return nil, err
	}
	return reply.Tabs, nil
}

func (c *Client) CreateTab(ctx context.Context, url string) (types.Tab, error) {
	reply, err := c.call(ctx, Envelope{Op: OpCreateTab, URL: url})
	if err != nil {
		return types.Tab{}, err
	}
	if reply.Tab == nil {
		return types.Tab{}, fmt.Errorf("%w: 应答缺少tab", ErrRemote)
	}
	return *reply.Tab, nil
}

func (c *Client) UpdateTab(ctx context.Context, tabID, url string, active bool) (types.Tab, error) {
	reply, err := c.call(ctx, Envelope{Op: OpUpdateTab, TabID: tabID, URL: url, Active: active})
	if err != nil {
		return types.Tab{}, err
	}
	if reply.Tab == nil {
		return types.Tab{}, fmt.Errorf("%w: 应答缺少tab", ErrRemote)
	}
	return *reply.Tab, nil
}

func (c *Client) SendMessage(ctx context.Context, tabID string, req protocol.Request) (protocol.Response, error) {
	reply, err := c.call(ctx, Envelope{Op: OpSendMessage, TabID: tabID, Message: &req})
	if err != nil {
		return protocol.Response{}, err
	}
	if reply.Response == nil {
		return protocol.Response{}, fmt.Errorf("%w: 应答缺少response", ErrRemote)
	}
	return *reply.Response, nil
}

func (c *Client) Close() error {
	err := c.conn.Close(websocket.StatusNormalClosure, "")
	<-c.done
	return err
}
