// Package dom 定义自动化引擎读写页面所需的最小DOM能力
// rod与chromedp各自实现这组接口,测试使用domtest中基于goquery的内存文档
package dom

// Node 可以在其子树中查找元素的节点
type Node interface {
	// QueryAll 返回所有匹配的元素,不等待,没有匹配时返回空切片
	QueryAll(selector string) ([]Element, error)
	// Query 返回第一个匹配的元素,found为false表示当前不存在
	Query(selector string) (el Element, found bool, err error)
}

// Element 页面中的一个元素句柄
type Element interface {
	Node
	// Text 返回textContent(未裁剪)
	Text() (string, error)
	// Attribute 返回属性值,ok为false表示属性不存在
	Attribute(name string) (value string, ok bool, err error)
	HasClass(name string) (bool, error)
	// Disabled 元素的disabled属性是否为真
	Disabled() (bool, error)
	// IsButton 元素是否为<button>
	IsButton() (bool, error)
	// Click 派发DOM click,与element.click()等价
	Click() error
	Focus() error
	// ScrollIntoCenter 在所在滚动容器内将元素滚动到视口中间
	ScrollIntoCenter() error
}

// Document 一个文档(顶层页面或iframe内容)
type Document interface {
	Node
	// Frame 返回selector指向的iframe的内容文档,iframe或其文档不可访问时found为false
	Frame(selector string) (doc Document, found bool, err error)
	// ScrollToBottom 将文档窗口滚动到底部,返回滚动高度
	ScrollToBottom() (int, error)
}
