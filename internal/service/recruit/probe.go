package recruit

import (
	"strings"

	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/dom"
)

// trimmedText 读取元素裁剪后的文本
func trimmedText(el dom.Element) (string, error) {
	text, err := el.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// queryText 返回node下第一个selector元素的裁剪文本,不存在时返回空串
func queryText(node dom.Node, selector string) (string, error) {
	el, found, err := node.Query(selector)
	if err != nil || !found {
		return "", err
	}
	return trimmedText(el)
}

// titleOrText 优先使用title属性,否则使用裁剪文本
func titleOrText(node dom.Node, selector string) (string, error) {
	el, found, err := node.Query(selector)
	if err != nil || !found {
		return "", err
	}
	title, ok, err := el.Attribute("title")
	if err != nil {
		return "", err
	}
	if ok && title != "" {
		return title, nil
	}
	return trimmedText(el)
}

// findContaining 返回node下第一个文本包含任一needle的selector元素
func findContaining(node dom.Node, selector string, needles ...string) (dom.Element, bool, error) {
	els, err := node.QueryAll(selector)
	if err != nil {
		return nil, false, err
	}
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			return nil, false, err
		}
		if containsAny(text, needles) {
			return el, true, nil
		}
	}
	return nil, false, nil
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
