package chrome

import (
	"context"
	"net/http"

	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/dom"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/types"
)

// ChromeCrawler 通过DevTools协议控制的浏览器,管理标签页并为每个标签页提供DOM访问
type ChromeCrawler interface {
	Tabs(ctx context.Context) ([]types.Tab, error)
	CreateTab(ctx context.Context, url string) (types.Tab, error)
	// Navigate 在标签页中打开url并等待加载完成
	Navigate(ctx context.Context, tabID, url string) error
	Activate(ctx context.Context, tabID string) error
	// Document 返回标签页顶层文档,跨导航保持有效
	Document(tabID string) (dom.Document, error)
	Cookies(ctx context.Context, tabID string, urls ...string) ([]*http.Cookie, error)
	Close()
}
