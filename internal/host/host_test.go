package host

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/LouYuanbo1/recruitagent/internal/config"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/collector"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/dom"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/dom/domtest"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/types"
	"github.com/LouYuanbo1/recruitagent/internal/protocol"
	"github.com/LouYuanbo1/recruitagent/internal/service/recruit"
	"github.com/LouYuanbo1/recruitagent/internal/service/recruit/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCrawler struct {
	mu        sync.Mutex
	tabs      []types.Tab
	docs      map[string]*domtest.Document
	navigated []string
	activated []string
	cookieFor []string
	closed    bool
}

func (f *fakeCrawler) Tabs(context.Context) ([]types.Tab, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.Tab(nil), f.tabs...), nil
}

func (f *fakeCrawler) CreateTab(_ context.Context, url string) (types.Tab, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tab := types.Tab{ID: fmt.Sprintf("T%d", len(f.tabs)+1), URL: url, Active: true}
	f.tabs = append(f.tabs, tab)
	return tab, nil
}

func (f *fakeCrawler) Navigate(_ context.Context, tabID, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tabs {
		if f.tabs[i].ID == tabID {
			f.tabs[i].URL = url
			f.navigated = append(f.navigated, tabID+" "+url)
			return nil
		}
	}
	return errors.New("no such tab")
}

func (f *fakeCrawler) Activate(_ context.Context, tabID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activated = append(f.activated, tabID)
	return nil
}

func (f *fakeCrawler) Document(tabID string) (dom.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[tabID]
	if !ok {
		return nil, errors.New("no document")
	}
	return doc, nil
}

func (f *fakeCrawler) Cookies(_ context.Context, tabID string, urls ...string) ([]*http.Cookie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cookieFor = append(f.cookieFor, urls...)
	return []*http.Cookie{{Name: "wt2", Value: tabID}}, nil
}

func (f *fakeCrawler) Close() { f.closed = true }

type fakeProbe struct{}

func (fakeProbe) Check(_ context.Context, cookies []*http.Cookie) (collector.VipState, error) {
	if len(cookies) == 1 && cookies[0].Value == "T1" {
		return collector.VipState{Code: 0, ZpData: []byte(`{"vip":true}`)}, nil
	}
	return collector.VipState{Code: 7, Message: "当前登录状态已失效"}, nil
}

type noPause struct{}

func (noPause) Pause(ctx context.Context, _ param.Delay) error { return ctx.Err() }

const recommendHTML = `<html><body><iframe name="recommendFrame"></iframe></body></html>`

func newTestHost(t *testing.T) (*Host, *fakeCrawler) {
	t.Helper()
	frame := domtest.NewDocument(`<div class="candidate-card-wrap"><span class="name">张三</span>Java` +
		`<button class="btn btn-greet">打招呼</button></div><span class="nomore">没有更多了</span>`)
	crawler := &fakeCrawler{
		tabs: []types.Tab{
			{ID: "T1", URL: "https://www.zhipin.com/web/chat/recommend"},
			{ID: "T2", URL: "https://example.com/"},
		},
		docs: map[string]*domtest.Document{
			"T1": domtest.NewDocument(recommendHTML).WithFrame(param.RecommendFrame, frame),
			"T2": domtest.NewDocument(`<html></html>`),
		},
	}
	cfg, err := config.ParseConfig([]byte(`{}`))
	require.NoError(t, err)
	return InitHost(crawler, fakeProbe{}, cfg, zap.NewNop(), recruit.WithPacer(noPause{})), crawler
}

func TestHostQueryTabs(t *testing.T) {
	h, _ := newTestHost(t)

	tabs, err := h.QueryTabs(context.Background(), "*://*.zhipin.com/*")
	require.NoError(t, err)
	require.Len(t, tabs, 1)
	assert.Equal(t, "T1", tabs[0].ID)

	all, err := h.QueryTabs(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestHostRoutesMessagesPerTab(t *testing.T) {
	h, crawler := newTestHost(t)
	ctx := context.Background()

	resp, err := h.SendMessage(ctx, "T1", protocol.Request{Action: protocol.FilterGeeks, FilterKeywords: "java"})
	require.NoError(t, err)
	require.Len(t, resp.Geeks, 1)
	assert.Equal(t, recruit.Collected, resp.Outcome)

	resp, err = h.SendMessage(ctx, "T2", protocol.Request{Action: protocol.FilterGeeks, FilterKeywords: "java"})
	require.NoError(t, err)
	assert.Equal(t, recruit.NoScrollRoot, resp.Outcome)

	resp, err = h.SendMessage(ctx, "T1", protocol.At(protocol.DoGreeting, 0, 0))
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, "greeted", resp.Geek.Status)

	// 导航后引擎重建,旧会话不再可用
	_, err = h.UpdateTab(ctx, "T1", "https://www.zhipin.com/web/chat/recommend", true)
	require.NoError(t, err)
	resp, err = h.SendMessage(ctx, "T1", protocol.At(protocol.DoGreeting, 0, 0))
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, recruit.ErrIndexOutOfRange.Error())
	assert.Equal(t, []string{"T1"}, crawler.activated)

	_, err = h.SendMessage(ctx, "T9", protocol.Request{Action: protocol.CheckLoginStatus})
	assert.Error(t, err)
}

func TestHostLoginCheckUsesTabCookies(t *testing.T) {
	h, crawler := newTestHost(t)
	ctx := context.Background()

	resp, err := h.SendMessage(ctx, "T1", protocol.Request{Action: protocol.CheckLoginStatus})
	require.NoError(t, err)
	assert.True(t, resp.IsLoggedIn)
	assert.JSONEq(t, `{"vip":true}`, string(resp.Data))

	resp, err = h.SendMessage(ctx, "T2", protocol.Request{Action: protocol.CheckLoginStatus})
	require.NoError(t, err)
	assert.False(t, resp.IsLoggedIn)
	assert.Equal(t, "当前登录状态已失效", resp.Error)
	assert.Equal(t, []string{
		"https://www.zhipin.com/wapi/zpblock/vip/state",
		"https://www.zhipin.com/wapi/zpblock/vip/state",
	}, crawler.cookieFor)
}

func TestHostCreateAndClose(t *testing.T) {
	h, crawler := newTestHost(t)
	tab, err := h.CreateTab(context.Background(), "https://www.zhipin.com/")
	require.NoError(t, err)
	assert.Equal(t, "T3", tab.ID)
	h.Close()
	assert.True(t, crawler.closed)
}
