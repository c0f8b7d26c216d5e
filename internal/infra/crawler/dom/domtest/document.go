// Package domtest 提供基于goquery的内存文档,用于在测试中替代真实浏览器
package domtest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/dom"
	"github.com/PuerkitoBio/goquery"
)

// Document 内存文档
//
// 构造时可以传入多份HTML快照,每次ScrollToBottom推进到下一份(停留在最后一份),
// 以此模拟滚动触发的懒加载。
type Document struct {
	mu        sync.Mutex
	snapshots []string
	current   int
	doc       *goquery.Document
	frames    map[string]*Document
	onClick   map[string]func(d *Document)
	textErrs  map[string]error
	clicks    []string
	focused   []string
	centered  []string
	scrolls   int
}

// NewDocument 使用一份或多份HTML快照创建文档,HTML无法解析时panic
func NewDocument(html string, more ...string) *Document {
	d := &Document{
		snapshots: append([]string{html}, more...),
		frames:    make(map[string]*Document),
		onClick:   make(map[string]func(d *Document)),
		textErrs:  make(map[string]error),
	}
	d.doc = mustParse(html)
	return d
}

func mustParse(html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		panic(fmt.Sprintf("domtest: 解析HTML失败: %v", err))
	}
	return doc
}

// WithFrame 注册selector对应iframe的内容文档,selector本身仍需在当前HTML中存在
func (d *Document) WithFrame(selector string, frame *Document) *Document {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames[selector] = frame
	return d
}

// OnClick 点击id为id的元素时执行fn,fn通常调用SetHTML模拟页面变化
func (d *Document) OnClick(id string, fn func(d *Document)) *Document {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onClick[id] = fn
	return d
}

// FailText 使匹配selector的元素读取文本时返回err,用于模拟节点在读取途中失效
func (d *Document) FailText(selector string, err error) *Document {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.textErrs[selector] = err
	return d
}

// SetHTML 替换当前文档内容
func (d *Document) SetHTML(html string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.doc = mustParse(html)
}

// SetAttr 为当前文档中匹配selector的元素设置属性,已有句柄同样可见
func (d *Document) SetAttr(selector, name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.doc.Find(selector).SetAttr(name, value)
}

// Clicks 按顺序返回被点击元素的标签(#id,没有id时为裁剪后的文本)
func (d *Document) Clicks() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.clicks...)
}

func (d *Document) Focused() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.focused...)
}

func (d *Document) Centered() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.centered...)
}

// Scrolls 返回ScrollToBottom被调用的次数
func (d *Document) Scrolls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrolls
}

func (d *Document) QueryAll(selector string) ([]dom.Element, error) {
	d.mu.Lock()
	sel := d.doc.Find(selector)
	d.mu.Unlock()
	return wrap(d, sel), nil
}

func (d *Document) Query(selector string) (dom.Element, bool, error) {
	d.mu.Lock()
	sel := d.doc.Find(selector).First()
	d.mu.Unlock()
	if sel.Length() == 0 {
		return nil, false, nil
	}
	return &Element{owner: d, sel: sel}, true, nil
}

func (d *Document) Frame(selector string) (dom.Document, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.doc.Find(selector).Length() == 0 {
		return nil, false, nil
	}
	frame, ok := d.frames[selector]
	if !ok {
		return nil, false, nil
	}
	return frame, true, nil
}

func (d *Document) ScrollToBottom() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scrolls++
	if d.current < len(d.snapshots)-1 {
		d.current++
		d.doc = mustParse(d.snapshots[d.current])
	}
	return len(d.snapshots[d.current]), nil
}

func (d *Document) record(list *[]string, label string) {
	d.mu.Lock()
	*list = append(*list, label)
	d.mu.Unlock()
}

func wrap(owner *Document, sel *goquery.Selection) []dom.Element {
	els := make([]dom.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		els = append(els, &Element{owner: owner, sel: s})
	})
	return els
}

// Element 指向某份快照中的单个节点,快照被替换后旧句柄仍可读取与点击
type Element struct {
	owner *Document
	sel   *goquery.Selection
}

func (e *Element) QueryAll(selector string) ([]dom.Element, error) {
	return wrap(e.owner, e.sel.Find(selector)), nil
}

func (e *Element) Query(selector string) (dom.Element, bool, error) {
	sel := e.sel.Find(selector).First()
	if sel.Length() == 0 {
		return nil, false, nil
	}
	return &Element{owner: e.owner, sel: sel}, true, nil
}

func (e *Element) Text() (string, error) {
	e.owner.mu.Lock()
	defer e.owner.mu.Unlock()
	for selector, err := range e.owner.textErrs {
		if e.sel.Is(selector) {
			return "", err
		}
	}
	return e.sel.Text(), nil
}

func (e *Element) Attribute(name string) (string, bool, error) {
	v, ok := e.sel.Attr(name)
	return v, ok, nil
}

func (e *Element) HasClass(name string) (bool, error) {
	return e.sel.HasClass(name), nil
}

func (e *Element) Disabled() (bool, error) {
	_, ok := e.sel.Attr("disabled")
	return ok, nil
}

func (e *Element) IsButton() (bool, error) {
	return goquery.NodeName(e.sel) == "button", nil
}

func (e *Element) Click() error {
	id, hasID := e.sel.Attr("id")
	e.owner.record(&e.owner.clicks, e.label())
	if !hasID {
		return nil
	}
	e.owner.mu.Lock()
	fn := e.owner.onClick[id]
	e.owner.mu.Unlock()
	if fn != nil {
		fn(e.owner)
	}
	return nil
}

func (e *Element) Focus() error {
	e.owner.record(&e.owner.focused, e.label())
	return nil
}

func (e *Element) ScrollIntoCenter() error {
	e.owner.record(&e.owner.centered, e.label())
	return nil
}

func (e *Element) label() string {
	if id, ok := e.sel.Attr("id"); ok && id != "" {
		return "#" + id
	}
	return strings.TrimSpace(e.sel.Text())
}
