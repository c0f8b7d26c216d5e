package chrome

import (
	"fmt"

	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/dom"
	"github.com/go-rod/rod"
)

const scrollToBottomJS = `() => {
	const h = document.documentElement.scrollHeight || document.body.scrollHeight;
	window.scrollTo({top: h, behavior: 'smooth'});
	return h;
}`

const scrollIntoCenterJS = `() => this.scrollIntoView({behavior: 'smooth', block: 'center'})`

type rodDocument struct {
	page *rod.Page
}

func (d *rodDocument) QueryAll(selector string) ([]dom.Element, error) {
	els, err := d.page.Elements(selector)
	if err != nil {
		return nil, err
	}
	return wrapRod(els), nil
}

func (d *rodDocument) Query(selector string) (dom.Element, bool, error) {
	has, el, err := d.page.Has(selector)
	if err != nil || !has {
		return nil, false, err
	}
	return &rodElement{el: el}, true, nil
}

// Frame iframe不可访问(如跨域)时视为不存在
func (d *rodDocument) Frame(selector string) (dom.Document, bool, error) {
	has, el, err := d.page.Has(selector)
	if err != nil || !has {
		return nil, false, err
	}
	frame, err := el.Frame()
	if err != nil {
		return nil, false, nil
	}
	return &rodDocument{page: frame}, true, nil
}

func (d *rodDocument) ScrollToBottom() (int, error) {
	res, err := d.page.Eval(scrollToBottomJS)
	if err != nil {
		return 0, fmt.Errorf("滚动到底部失败: %w", err)
	}
	return res.Value.Int(), nil
}

type rodElement struct {
	el *rod.Element
}

func wrapRod(els rod.Elements) []dom.Element {
	out := make([]dom.Element, 0, len(els))
	for _, el := range els {
		out = append(out, &rodElement{el: el})
	}
	return out
}

func (e *rodElement) QueryAll(selector string) ([]dom.Element, error) {
	els, err := e.el.Elements(selector)
	if err != nil {
		return nil, err
	}
	return wrapRod(els), nil
}

func (e *rodElement) Query(selector string) (dom.Element, bool, error) {
	has, el, err := e.el.Has(selector)
	if err != nil || !has {
		return nil, false, err
	}
	return &rodElement{el: el}, true, nil
}

func (e *rodElement) Text() (string, error) {
	res, err := e.el.Eval(`() => this.textContent || ''`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (e *rodElement) Attribute(name string) (string, bool, error) {
	v, err := e.el.Attribute(name)
	if err != nil || v == nil {
		return "", false, err
	}
	return *v, true, nil
}

func (e *rodElement) HasClass(name string) (bool, error) {
	res, err := e.el.Eval(`(c) => this.classList.contains(c)`, name)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

func (e *rodElement) Disabled() (bool, error) {
	res, err := e.el.Eval(`() => !!this.disabled`)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

func (e *rodElement) IsButton() (bool, error) {
	res, err := e.el.Eval(`() => this instanceof HTMLButtonElement`)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

func (e *rodElement) Click() error {
	_, err := e.el.Eval(`() => this.click()`)
	return err
}

func (e *rodElement) Focus() error {
	return e.el.Focus()
}

func (e *rodElement) ScrollIntoCenter() error {
	_, err := e.el.Eval(scrollIntoCenterJS)
	return err
}
