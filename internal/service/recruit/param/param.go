package param

import "time"

// Delay 随机等待区间,实际等待时间在[Min, Max]内均匀分布
type Delay struct {
	Min time.Duration `json:"min"`
	Max time.Duration `json:"max"`
}

func Between(minMs, maxMs int) Delay {
	return Delay{Min: time.Duration(minMs) * time.Millisecond, Max: time.Duration(maxMs) * time.Millisecond}
}

// Pacing 引擎各步骤的随机等待设置
type Pacing struct {
	DiscoveryInitial Delay `json:"discovery_initial"`
	ScrollSettle     Delay `json:"scroll_settle"`
	ChatInitial      Delay `json:"chat_initial"`
	ChatFilterSettle Delay `json:"chat_filter_settle"`
	GreetBefore      Delay `json:"greet_before"`
	GreetFocus       Delay `json:"greet_focus"`
	ItemCenter       Delay `json:"item_center"`
	ItemOpen         Delay `json:"item_open"`
	RequestConfirm   Delay `json:"request_confirm"`
	BetweenPhases    Delay `json:"between_phases"`
}

func DefaultPacing() Pacing {
	return Pacing{
		DiscoveryInitial: Between(1000, 2000),
		ScrollSettle:     Between(1500, 2000),
		ChatInitial:      Between(1000, 3000),
		ChatFilterSettle: Between(1000, 2000),
		GreetBefore:      Between(1000, 5000),
		GreetFocus:       Between(300, 1000),
		ItemCenter:       Between(500, 1000),
		ItemOpen:         Between(1000, 2000),
		RequestConfirm:   Between(500, 1000),
		BetweenPhases:    Between(500, 3000),
	}
}

const (
	// MaxCandidates 单次候选人发现最多返回的实体数
	MaxCandidates = 200
	// MaxScrollIterations 单次候选人发现最多的滚动次数
	MaxScrollIterations = 14
)

// 推荐页(iframe内)
const (
	RecommendFrame  = `iframe[name="recommendFrame"]`
	CandidateCard   = "div.candidate-card-wrap"
	CandidateName   = "span.name"
	GreetButton     = "button.btn.btn-greet"
	GreetButtonText = "打招呼"
	NoMore          = "span.nomore"
	NoMoreText      = "没有更多了"
	UnknownName     = "未知"
)

// 沟通页
const (
	ChatFilterBar  = "div.chat-message-filter-left"
	ChatFilterItem = "span"
	UnreadText     = "未读"
	ChatItem       = "div.geek-item"
	ChatBadge      = ".badge-count span"
	ChatName       = ".geek-name"
	ChatJob        = ".source-job"
	ChatMessage    = ".push-text"
	ChatTime       = ".time"
	ChatNamePrefix = "用户"
)

// 简历流程
const (
	MessageItem        = "div.message-item"
	MessageCardTitle   = ".message-card-top-title"
	AcceptButton       = ".message-card-buttons .card-btn:last-child"
	DisabledClass      = "disabled"
	OperateButton      = "span.operate-btn"
	RequestResumeText  = "求简历"
	ExchangeTooltip    = "div.exchange-tooltip"
	ConfirmButton      = "span.boss-btn-primary.boss-btn"
	ConfirmText        = "确定"
	CardButton         = "span.card-btn"
	PreviewResumeText  = "点击预览附件简历"
	AttachmentButtons  = "div.attachment-resume-btns"
	AttachmentPopover  = "div.popover.icon-content.popover-bottom"
	DownloadPopoverIdx = 2
	PopupClose         = "div.boss-popup__close"
)

var (
	// AcceptPromptTexts 对方主动发送附件简历时的提示
	AcceptPromptTexts = []string{"对方想发送加密附件简历给您，您是否同意", "对方想发送附件简历给您，您是否同意"}
	// RequestConfirmTexts 索要简历的二次确认提示
	RequestConfirmTexts = []string{"确定向牛人请求简历", "确定向牛人索取简历"}
)
