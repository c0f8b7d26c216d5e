package dom_test

import (
	"testing"

	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/dom"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/dom/domtest"
)

func TestFakeSatisfiesInterfaces(t *testing.T) {
	var _ dom.Document = domtest.NewDocument("<html><body></body></html>")
	var _ dom.Element = (*domtest.Element)(nil)
}
