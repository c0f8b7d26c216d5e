package chrome

import (
	"context"
	"fmt"

	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/dom"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
)

// chromedpDocument frame为nil时表示顶层文档,否则表示该iframe节点的内容文档
type chromedpDocument struct {
	ctx   context.Context
	frame *cdp.Node
}

func (d *chromedpDocument) queryOptions() []chromedp.QueryOption {
	opts := []chromedp.QueryOption{chromedp.ByQueryAll, chromedp.AtLeast(0)}
	if d.frame != nil {
		opts = append(opts, chromedp.FromNode(d.frame))
	}
	return opts
}

func queryNodes(ctx context.Context, selector string, opts []chromedp.QueryOption) ([]*cdp.Node, error) {
	var nodes []*cdp.Node
	if err := chromedp.Run(ctx, chromedp.Nodes(selector, &nodes, opts...)); err != nil {
		return nil, err
	}
	return nodes, nil
}

func (d *chromedpDocument) wrap(nodes []*cdp.Node) []dom.Element {
	out := make([]dom.Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &chromedpElement{ctx: d.ctx, node: n})
	}
	return out
}

func (d *chromedpDocument) QueryAll(selector string) ([]dom.Element, error) {
	nodes, err := queryNodes(d.ctx, selector, d.queryOptions())
	if err != nil {
		return nil, err
	}
	return d.wrap(nodes), nil
}

func (d *chromedpDocument) Query(selector string) (dom.Element, bool, error) {
	els, err := d.QueryAll(selector)
	if err != nil || len(els) == 0 {
		return nil, false, err
	}
	return els[0], true, nil
}

func (d *chromedpDocument) Frame(selector string) (dom.Document, bool, error) {
	el, found, err := d.Query(selector)
	if err != nil || !found {
		return nil, false, err
	}
	node := el.(*chromedpElement).node
	var accessible bool
	if err := callOn(d.ctx, node, `function() { return !!(this.contentDocument && this.contentWindow) }`, &accessible); err != nil {
		return nil, false, err
	}
	if !accessible {
		return nil, false, nil
	}
	return &chromedpDocument{ctx: d.ctx, frame: node}, true, nil
}

func (d *chromedpDocument) ScrollToBottom() (int, error) {
	var height int
	if d.frame == nil {
		err := chromedp.Run(d.ctx, chromedp.Evaluate(`(() => {
			const h = document.documentElement.scrollHeight || document.body.scrollHeight;
			window.scrollTo({top: h, behavior: 'smooth'});
			return h;
		})()`, &height))
		if err != nil {
			return 0, fmt.Errorf("滚动到底部失败: %w", err)
		}
		return height, nil
	}
	err := callOn(d.ctx, d.frame, `function() {
		const doc = this.contentDocument;
		const h = doc.documentElement.scrollHeight || doc.body.scrollHeight;
		this.contentWindow.scrollTo({top: h, behavior: 'smooth'});
		return h;
	}`, &height)
	if err != nil {
		return 0, fmt.Errorf("滚动iframe到底部失败: %w", err)
	}
	return height, nil
}

// callOn 以node为this调用函数,结果按值反序列化到res
func callOn(ctx context.Context, node *cdp.Node, fn string, res any, args ...any) error {
	return chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		return chromedp.CallFunctionOnNode(ctx, node, fn, res, args...)
	}))
}

type chromedpElement struct {
	ctx  context.Context
	node *cdp.Node
}

func (e *chromedpElement) QueryAll(selector string) ([]dom.Element, error) {
	nodes, err := queryNodes(e.ctx, selector, []chromedp.QueryOption{
		chromedp.ByQueryAll, chromedp.AtLeast(0), chromedp.FromNode(e.node),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dom.Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &chromedpElement{ctx: e.ctx, node: n})
	}
	return out, nil
}

func (e *chromedpElement) Query(selector string) (dom.Element, bool, error) {
	els, err := e.QueryAll(selector)
	if err != nil || len(els) == 0 {
		return nil, false, err
	}
	return els[0], true, nil
}

func (e *chromedpElement) Text() (string, error) {
	var text string
	err := callOn(e.ctx, e.node, `function() { return this.textContent || '' }`, &text)
	return text, err
}

func (e *chromedpElement) Attribute(name string) (string, bool, error) {
	var res struct {
		Value string `json:"value"`
		OK    bool   `json:"ok"`
	}
	err := callOn(e.ctx, e.node, `function(n) { const v = this.getAttribute(n); return {value: v || '', ok: v !== null} }`, &res, name)
	return res.Value, res.OK, err
}

func (e *chromedpElement) HasClass(name string) (bool, error) {
	var has bool
	err := callOn(e.ctx, e.node, `function(c) { return this.classList.contains(c) }`, &has, name)
	return has, err
}

func (e *chromedpElement) Disabled() (bool, error) {
	var disabled bool
	err := callOn(e.ctx, e.node, `function() { return !!this.disabled }`, &disabled)
	return disabled, err
}

func (e *chromedpElement) IsButton() (bool, error) {
	var isButton bool
	err := callOn(e.ctx, e.node, `function() { return this instanceof HTMLButtonElement }`, &isButton)
	return isButton, err
}

func (e *chromedpElement) Click() error {
	return callOn(e.ctx, e.node, `function() { this.click() }`, nil)
}

func (e *chromedpElement) Focus() error {
	return callOn(e.ctx, e.node, `function() { this.focus() }`, nil)
}

func (e *chromedpElement) ScrollIntoCenter() error {
	return callOn(e.ctx, e.node, `function() { this.scrollIntoView({behavior: 'smooth', block: 'center'}) }`, nil)
}
